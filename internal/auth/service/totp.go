package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/slimyai/gatehouse/internal/auth/store"
)

var (
	ErrInvalidTOTPCode    = errors.New("invalid TOTP code")
	ErrTOTPAlreadyEnabled = errors.New("TOTP already enabled for this user")
	ErrTOTPNotEnrolled    = errors.New("TOTP not enrolled for this user")
)

type TOTPService struct {
	Store  store.Store
	Issuer string // shown in the authenticator app (e.g. "slimy.ai trader")
}

// TOTPEnrollment is the one-time material returned on enrolment. The secret
// appears here and nowhere else in responses.
type TOTPEnrollment struct {
	Secret string
	URL    string // otpauth:// URL for QR rendering
}

// Enroll generates a TOTP secret for the user and stores it. TOTP is not
// active until VerifyEnrollment confirms the user's authenticator produces
// matching codes.
func (s *TOTPService) Enroll(ctx context.Context, userID string) (TOTPEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user.TOTPEnabled != nil {
		return TOTPEnrollment{}, ErrTOTPAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	return TOTPEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// VerifyEnrollment activates TOTP once the user proves their authenticator
// holds the enrolled secret.
func (s *TOTPService) VerifyEnrollment(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user.TOTPSecret == "" {
		return ErrTOTPNotEnrolled
	}
	if user.TOTPEnabled != nil {
		return ErrTOTPAlreadyEnabled
	}

	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Users().EnableTOTP(ctx, userID)
}

// VerifyCode checks a code against a stored secret during login.
func (s *TOTPService) VerifyCode(secret string, code string) bool {
	if secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}
