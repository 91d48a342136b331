package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
	"github.com/BornToCode265/ADIS/internal/utils"
)

var (
	ErrPhoneTaken   = errors.New("user with this phone number already exists")
	ErrUserNotFound = errors.New("user not found")
)

// RegisterInput is the validated registration payload. Phone arrives
// already normalized by the handler.
type RegisterInput struct {
	Name                 string
	Phone                string
	Password             string
	District             string
	Village              *string
	TraditionalAuthority *string
	Latitude             *float64
	Longitude            *float64
}

// ProfileUpdate carries only the mutable fields; nil means keep.
type ProfileUpdate struct {
	Name                 *string
	Village              *string
	TraditionalAuthority *string
	District             *string
	Latitude             *float64
	Longitude            *float64
}

type UserService interface {
	Register(in RegisterInput) (*models.User, error)
	GetProfile(id int) (*models.User, error)
	UpdateProfile(id int, upd ProfileUpdate) error
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Register(in RegisterInput) (*models.User, error) {
	existing, err := s.repo.GetByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	username, err := s.uniqueUsername(in.Name, in.Phone)
	if err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:                 strings.TrimSpace(in.Name),
		Phone:                in.Phone,
		Username:             username,
		PasswordHash:         hash,
		Village:              in.Village,
		TraditionalAuthority: in.TraditionalAuthority,
		District:             strings.TrimSpace(in.District),
		Latitude:             in.Latitude,
		Longitude:            in.Longitude,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// uniqueUsername derives "<lowercase letters of name><last 4 phone
// digits>" and appends a counter until the result is free.
func (s *userService) uniqueUsername(name, phone string) (string, error) {
	base := deriveUsername(name, phone)
	username := base
	for counter := 1; ; counter++ {
		taken, err := s.repo.UsernameExists(username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = base + strconv.Itoa(counter)
	}
}

func deriveUsername(name, phone string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	digits := utils.NormalizePhone(phone)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return b.String() + digits
}

func (s *userService) GetProfile(id int) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(id int, upd ProfileUpdate) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Village != nil {
		user.Village = upd.Village
	}
	if upd.TraditionalAuthority != nil {
		user.TraditionalAuthority = upd.TraditionalAuthority
	}
	if upd.District != nil {
		user.District = strings.TrimSpace(*upd.District)
	}
	if upd.Latitude != nil {
		user.Latitude = upd.Latitude
	}
	if upd.Longitude != nil {
		user.Longitude = upd.Longitude
	}
	return s.repo.UpdateProfile(user)
}
