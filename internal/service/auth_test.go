package service

import (
	"errors"
	"testing"
)

func TestSignupAndSigninRoundTrip(t *testing.T) {
	store := newFakeStore()
	mail := newFakeMailer()
	svc := newTestService(store, mail)

	user, err := svc.Signup("Alex", "alex@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("signup did not assign an id")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}

	code, ok := mail.verificationCodes["alex@example.com"]
	if !ok || len(code) != codeLength {
		t.Fatalf("verification code not sent, got %q", code)
	}

	// signin before verification must be refused
	if _, err := svc.Signin("alex@example.com", "hunter22"); !errors.Is(err, ErrEmailNotVerified) {
		t.Errorf("signin before verification: err = %v, want ErrEmailNotVerified", err)
	}

	if err := svc.VerifyEmail("alex@example.com", "000000"); err == nil && code != "000000" {
		t.Error("wrong verification code accepted")
	}
	if err := svc.VerifyEmail("alex@example.com", code); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}

	token, err := svc.Signin("alex@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signin failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token subject = %d, want %d", userID, user.ID)
	}

	if _, err := svc.Signin("alex@example.com", "wrong"); err == nil {
		t.Error("signin with wrong password succeeded")
	}
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	store := newFakeStore()
	mail := newFakeMailer()
	svc := newTestService(store, mail)

	if _, err := svc.Signup("Alex", "alex@example.com", "oldpass12"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if err := svc.VerifyEmail("alex@example.com", mail.verificationCodes["alex@example.com"]); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}

	// unknown address must not leak account existence
	if err := svc.RequestPasswordReset("nobody@example.com"); err != nil {
		t.Errorf("reset request for unknown email returned error: %v", err)
	}

	if err := svc.RequestPasswordReset("alex@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	code := mail.resetCodes["alex@example.com"]
	if len(code) != codeLength {
		t.Fatalf("reset code not sent, got %q", code)
	}

	if err := svc.ResetPassword("alex@example.com", "999999", "newpass12"); err == nil && code != "999999" {
		t.Error("wrong reset code accepted")
	}
	if err := svc.ResetPassword("alex@example.com", code, "newpass12"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := svc.Signin("alex@example.com", "newpass12"); err != nil {
		t.Errorf("signin with new password failed: %v", err)
	}
	if _, err := svc.Signin("alex@example.com", "oldpass12"); err == nil {
		t.Error("signin with old password still works")
	}

	// a consumed reset code must not be reusable
	if err := svc.ResetPassword("alex@example.com", code, "thirdpass"); err == nil {
		t.Error("reset code reused")
	}
}

func TestResendCode(t *testing.T) {
	store := newFakeStore()
	mail := newFakeMailer()
	svc := newTestService(store, mail)

	if _, err := svc.Signup("Alex", "alex@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	first := mail.verificationCodes["alex@example.com"]

	if err := svc.ResendCode("alex@example.com"); err != nil {
		t.Fatalf("ResendCode failed: %v", err)
	}
	second := mail.verificationCodes["alex@example.com"]
	if len(second) != codeLength {
		t.Fatalf("resent code malformed: %q", second)
	}

	// the old code must be superseded
	if first != second {
		if err := svc.VerifyEmail("alex@example.com", first); err == nil {
			t.Error("stale verification code accepted")
		}
	}
	if err := svc.VerifyEmail("alex@example.com", second); err != nil {
		t.Errorf("fresh verification code rejected: %v", err)
	}

	if err := svc.ResendCode("alex@example.com"); err == nil {
		t.Error("resend for an already verified email succeeded")
	}
}
