package services

import (
	"strings"
	"time"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/utils"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UsernameExists(username string) (bool, error) {
	u, _ := f.GetByUsername(username)
	return u != nil, nil
}

func (f *fakeUserRepo) UpdateProfile(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetAdmin(userID int, isAdmin bool) error {
	if u, ok := f.users[userID]; ok {
		u.IsAdmin = isAdmin
	}
	return nil
}

func (f *fakeUserRepo) List() ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetStats() (*models.UserStats, error) {
	return &models.UserStats{TotalUsers: len(f.users)}, nil
}

func (f *fakeUserRepo) RecentRegistrations(limit int) ([]*models.User, error) {
	return f.List()
}

func (f *fakeUserRepo) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	return nil, nil
}

// fakeOTPRepo mirrors the one-row-per-code table in memory, including
// the single-winner consume semantics.
type fakeOTPRepo struct {
	rows   []*models.OTPVerification
	nextID int64
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{nextID: 1}
}

func (f *fakeOTPRepo) Create(phone, code string, expiresAt time.Time) (int64, error) {
	row := &models.OTPVerification{
		ID:        f.nextID,
		Phone:     phone,
		OTPCode:   code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	f.nextID++
	f.rows = append(f.rows, row)
	return row.ID, nil
}

func (f *fakeOTPRepo) Consume(phone, code string, now time.Time) (bool, error) {
	var latest *models.OTPVerification
	for _, r := range f.rows {
		if r.Phone != phone || r.OTPCode != code || r.IsUsed || !r.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return false, nil
	}
	latest.IsUsed = true
	return true, nil
}

func (f *fakeOTPRepo) GetLatestByPhone(phone string) (*models.OTPVerification, error) {
	var latest *models.OTPVerification
	for _, r := range f.rows {
		if r.Phone == phone && (latest == nil || r.CreatedAt.After(latest.CreatedAt)) {
			latest = r
		}
	}
	return latest, nil
}

// fakeSMS records outgoing messages instead of hitting the gateway.
type fakeSMS struct {
	sent []string
}

func (f *fakeSMS) SendSMS(to, text string) (*utils.SendSMSResponse, error) {
	f.sent = append(f.sent, text)
	return &utils.SendSMSResponse{}, nil
}

// lastCode pulls the 6-digit code out of the most recent message.
func (f *fakeSMS) lastCode() string {
	if len(f.sent) == 0 {
		return ""
	}
	text := f.sent[len(f.sent)-1]
	for i := 0; i+6 <= len(text); i++ {
		if isDigits(text[i : i+6]) {
			return text[i : i+6]
		}
	}
	return ""
}

func isDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
