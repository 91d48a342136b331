package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/BornToCode265/ADIS/internal/repositories"
	"github.com/BornToCode265/ADIS/internal/utils"
)

// SMSSender is what the OTP service needs from the gateway client.
type SMSSender interface {
	SendSMS(to, text string) (*utils.SendSMSResponse, error)
}

type OTPService interface {
	Generate(phone string) (string, error)
	Verify(phone, code string) (bool, error)
}

type otpService struct {
	repo repositories.OTPRepository
	sms  SMSSender
	ttl  time.Duration

	// overridable in tests
	genCode func() (string, error)
	now     func() time.Time
}

func NewOTPService(repo repositories.OTPRepository, sms SMSSender, ttl time.Duration) OTPService {
	return &otpService{
		repo:    repo,
		sms:     sms,
		ttl:     ttl,
		genCode: generateCode,
		now:     time.Now,
	}
}

// generateCode draws a uniform 6-digit code, leading zeros included.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Generate stores a fresh code and hands it to the SMS gateway. Delivery
// is fire and forget: a gateway failure is logged but the stored code
// stays valid, so a resend reaches the same verification flow.
func (s *otpService) Generate(phone string) (string, error) {
	code, err := s.genCode()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(s.ttl)
	if _, err := s.repo.Create(phone, code, expiresAt); err != nil {
		return "", err
	}

	text := fmt.Sprintf("Your ADIS verification code is: %s. Valid for %d minutes.", code, int(s.ttl.Minutes()))
	if s.sms != nil {
		if _, err := s.sms.SendSMS(phone, text); err != nil {
			log.Printf("[otp][send] sms delivery failed for phone=%s: %v", phone, err)
		}
	}
	return code, nil
}

// Verify consumes the matching code atomically. Expired, already used
// and plain wrong codes all come back as a bare false.
func (s *otpService) Verify(phone, code string) (bool, error) {
	ok, err := s.repo.Consume(phone, code, s.now())
	if err != nil {
		return false, err
	}
	if ok {
		log.Printf("[otp][verify] consumed code for phone=%s", phone)
	}
	return ok, nil
}
