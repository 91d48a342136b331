package services

import (
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BornToCode265/ADIS/internal/auth"
	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password. The two cases are never distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	// ErrNotRegistered is surfaced distinctly on the OTP path: the
	// caller has just proven phone possession and registration is the
	// expected next step.
	ErrNotRegistered = errors.New("user not found")
)

type AuthService interface {
	LoginWithPassword(username, password string) (string, *models.User, error)
	LoginWithOTP(phone, code string) (string, *models.User, error)
	// Refresh re-mints a token for an already verified identity with a
	// fresh expiry window. It does not re-check the user row, so an
	// outstanding token for a demoted or removed user keeps refreshing
	// until it expires naturally. Accepted: tokens are stateless and
	// there is no revocation list.
	Refresh(claims *auth.Claims) (string, error)
	TokenFor(user *models.User, withUsername bool) (string, error)
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

type authService struct {
	users repositories.UserRepository
	otp   OTPService
	codec *auth.Codec
}

func NewAuthService(users repositories.UserRepository, otp OTPService, codec *auth.Codec) AuthService {
	return &authService{users: users, otp: otp, codec: codec}
}

func (s *authService) LoginWithPassword(username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		log.Printf("[auth][login] unknown username=%q", username)
		return "", nil, ErrInvalidCredentials
	}
	if !s.CheckPassword(user.PasswordHash, password) {
		log.Printf("[auth][login] password mismatch for userID=%d", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.TokenFor(user, true)
	if err != nil {
		return "", nil, err
	}
	log.Printf("[auth][login] success userID=%d admin=%v", user.ID, user.IsAdmin)
	return token, user, nil
}

func (s *authService) LoginWithOTP(phone, code string) (string, *models.User, error) {
	ok, err := s.otp.Verify(phone, code)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, ErrInvalidOTP
	}

	user, err := s.users.GetByPhone(phone)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		// the code is already consumed at this point; the caller has
		// to request a new one after registering
		return "", nil, ErrNotRegistered
	}

	token, err := s.TokenFor(user, false)
	if err != nil {
		return "", nil, err
	}
	log.Printf("[auth][otp-login] success userID=%d", user.ID)
	return token, user, nil
}

func (s *authService) Refresh(claims *auth.Claims) (string, error) {
	return s.codec.Encode(auth.Claims{
		UserID:   claims.UserID,
		Phone:    claims.Phone,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	})
}

func (s *authService) TokenFor(user *models.User, withUsername bool) (string, error) {
	claims := auth.Claims{
		UserID:  user.ID,
		Phone:   user.Phone,
		IsAdmin: user.IsAdmin,
	}
	if withUsername {
		claims.Username = user.Username
	}
	return s.codec.Encode(claims)
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
