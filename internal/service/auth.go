package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/teenbudget/backend/internal/models"
	"github.com/teenbudget/backend/internal/repository"
)

// ErrEmailNotVerified is returned on signin before email confirmation
var ErrEmailNotVerified = errors.New("email not verified")

// Signup creates a new user with hashed password and emails a verification code
func (s *Service) Signup(name, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:             name,
		Email:            email,
		PasswordHash:     string(hashedPassword),
		VerificationCode: code,
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	// delivery is best effort; the code can be re-requested
	if err := s.mail.SendVerificationCode(user.Email, user.Name, code); err != nil {
		s.log.Warnf("Failed to send verification code to %s: %v", user.Email, err)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// VerifyEmail confirms a signup verification code
func (s *Service) VerifyEmail(email, code string) error {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return fmt.Errorf("invalid email or code")
	}
	if user.EmailVerified {
		return nil
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return fmt.Errorf("invalid email or code")
	}

	if err := s.store.MarkEmailVerified(email); err != nil {
		return err
	}
	s.log.Infof("Email verified: %s", email)
	return nil
}

// ResendCode issues and emails a fresh verification code
func (s *Service) ResendCode(email string) error {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return fmt.Errorf("user not found")
	}
	if user.EmailVerified {
		return fmt.Errorf("email already verified")
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.store.SetVerificationCode(email, code); err != nil {
		return err
	}
	return s.mail.SendVerificationCode(user.Email, user.Name, code)
}

// Signin authenticates a user and returns a JWT token
func (s *Service) Signin(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if !user.EmailVerified {
		return "", ErrEmailNotVerified
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ValidateToken parses a presented token and returns the user id it carries
func (s *Service) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("invalid token")
	}
	var userID int64
	if _, err := fmt.Sscanf(subject, "%d", &userID); err != nil {
		return 0, fmt.Errorf("invalid token")
	}
	return userID, nil
}

// RequestPasswordReset emails a reset code to an existing account
func (s *Service) RequestPasswordReset(email string) error {
	user, err := s.store.FindUserByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		// don't reveal which addresses have accounts
		s.log.Infof("Password reset requested for unknown email: %s", email)
		return nil
	}
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.store.SetResetCode(email, code); err != nil {
		return err
	}
	return s.mail.SendPasswordResetCode(user.Email, user.Name, code)
}

// ResetPassword consumes a reset code and replaces the password
func (s *Service) ResetPassword(email, code, newPassword string) error {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return fmt.Errorf("invalid email or code")
	}
	if user.ResetCode == "" || user.ResetCode != code {
		return fmt.Errorf("invalid email or code")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(email, string(hashedPassword)); err != nil {
		return err
	}

	s.log.Infof("Password reset: %s", email)
	return nil
}
