package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestOTPService(repo *fakeOTPRepo, sms *fakeSMS) *otpService {
	return &otpService{
		repo:    repo,
		sms:     sms,
		ttl:     5 * time.Minute,
		genCode: generateCode,
		now:     time.Now,
	}
}

func TestGenerateStoresAndSendsCode(t *testing.T) {
	repo := newFakeOTPRepo()
	sms := &fakeSMS{}
	svc := newTestOTPService(repo, sms)

	code, err := svc.Generate("265888123456")
	require.NoError(t, err)
	require.Len(t, code, 6)

	row, err := repo.GetLatestByPhone("265888123456")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, code, row.OTPCode)
	require.False(t, row.IsUsed)

	require.Equal(t, code, sms.lastCode())
}

func TestVerifyConsumesExactlyOnce(t *testing.T) {
	repo := newFakeOTPRepo()
	svc := newTestOTPService(repo, &fakeSMS{})

	code, err := svc.Generate("265888123456")
	require.NoError(t, err)

	ok, err := svc.Verify("265888123456", code)
	require.NoError(t, err)
	require.True(t, ok)

	// replay of the same code must fail
	ok, err = svc.Verify("265888123456", code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyWrongCode(t *testing.T) {
	repo := newFakeOTPRepo()
	svc := newTestOTPService(repo, &fakeSMS{})

	_, err := svc.Generate("265888123456")
	require.NoError(t, err)

	ok, err := svc.Verify("265888123456", "000001")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyExpiredCode(t *testing.T) {
	repo := newFakeOTPRepo()
	svc := newTestOTPService(repo, &fakeSMS{})

	code, err := svc.Generate("265888123456")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }
	ok, err := svc.Verify("265888123456", code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCodeBoundToPhone(t *testing.T) {
	repo := newFakeOTPRepo()
	svc := newTestOTPService(repo, &fakeSMS{})

	code, err := svc.Generate("265888123456")
	require.NoError(t, err)

	ok, err := svc.Verify("265999000000", code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGenerateKeepsOlderCodesValid(t *testing.T) {
	repo := newFakeOTPRepo()
	svc := newTestOTPService(repo, &fakeSMS{})

	first, err := svc.Generate("265888123456")
	require.NoError(t, err)
	second, err := svc.Generate("265888123456")
	require.NoError(t, err)

	if first == second {
		t.Skip("both draws produced the same code")
	}

	ok, err := svc.Verify("265888123456", first)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Verify("265888123456", second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGeneratedCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.True(t, isDigits(code))
	}
}
