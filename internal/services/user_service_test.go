package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BornToCode265/ADIS/internal/auth"
)

func newTestUserService(users *fakeUserRepo) UserService {
	otp := newTestOTPService(newFakeOTPRepo(), &fakeSMS{})
	authSvc := NewAuthService(users, otp, auth.NewCodec("test-secret", time.Hour))
	return NewUserService(users, authSvc)
}

func TestRegisterDerivesUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users)

	u, err := svc.Register(RegisterInput{
		Name:     "Chikondi Banda",
		Phone:    "265888123456",
		Password: "secret123",
		District: "Lilongwe",
	})
	require.NoError(t, err)
	require.Equal(t, "chikondibanda3456", u.Username)
	require.NotEqual(t, "secret123", u.PasswordHash)
	require.False(t, u.IsAdmin)
}

func TestRegisterDisambiguatesUsernames(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users)

	first, err := svc.Register(RegisterInput{
		Name: "Chikondi Banda", Phone: "265111123456", Password: "secret123", District: "Zomba",
	})
	require.NoError(t, err)
	second, err := svc.Register(RegisterInput{
		Name: "Chikondi Banda", Phone: "265222123456", Password: "secret123", District: "Zomba",
	})
	require.NoError(t, err)

	require.Equal(t, "chikondibanda3456", first.Username)
	require.Equal(t, "chikondibanda34561", second.Username)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users)

	_, err := svc.Register(RegisterInput{
		Name: "Chikondi Banda", Phone: "265888123456", Password: "secret123", District: "Lilongwe",
	})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{
		Name: "Another Name", Phone: "265888123456", Password: "other456", District: "Blantyre",
	})
	require.ErrorIs(t, err, ErrPhoneTaken)
}

func TestDeriveUsernameStripsNonLetters(t *testing.T) {
	require.Equal(t, "johnphirijr4321", deriveUsername("John  Phiri Jr.3", "+265-99-4321"))
	require.Equal(t, "1234", deriveUsername("...", "0888881234"))
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestUserService(users)

	u, err := svc.Register(RegisterInput{
		Name: "Chikondi Banda", Phone: "265888123456", Password: "secret123", District: "Lilongwe",
	})
	require.NoError(t, err)

	village := "Mtandire"
	require.NoError(t, svc.UpdateProfile(u.ID, ProfileUpdate{Village: &village}))

	got, err := svc.GetProfile(u.ID)
	require.NoError(t, err)
	require.Equal(t, "Chikondi Banda", got.Name)
	require.Equal(t, "Lilongwe", got.District)
	require.NotNil(t, got.Village)
	require.Equal(t, "Mtandire", *got.Village)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())
	_, err := svc.GetProfile(42)
	require.ErrorIs(t, err, ErrUserNotFound)
}
