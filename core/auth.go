package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/okondo/bulletin/crypto"
)

const (
	verificationSubject   = "verification code"
	forgotPasswordSubject = "forgot password code"
)

// AuthConfig carries the secrets and lifetimes the auth service needs.
// Secrets are passed in explicitly rather than read from the environment
// so tests can run with throwaway values.
type AuthConfig struct {
	TokenSecret string
	CodeSecret  string
	SessionTTL  time.Duration
	CodeTTL     time.Duration
}

// AuthService implements the account lifecycle: signup, signin,
// email verification codes, password change and password reset.
type AuthService struct {
	users  UserStorage
	mailer Mailer
	hasher crypto.PasswordHandler
	config AuthConfig
	log    *slog.Logger
}

func NewAuthService(users UserStorage, mailer Mailer, hasher crypto.PasswordHandler, config AuthConfig, log *slog.Logger) *AuthService {
	if config.SessionTTL <= 0 {
		config.SessionTTL = crypto.SessionTTL
	}
	if config.CodeTTL <= 0 {
		config.CodeTTL = crypto.CodeTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		users:  users,
		mailer: mailer,
		hasher: hasher,
		config: config,
		log:    log,
	}
}

// SignUp registers a new user with email and password. The account starts
// unverified and no session is issued; the caller signs in explicitly.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*User, error) {
	// Step 1: Validate input before any side effect
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	// Step 2: Check if the email is already registered
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	// Step 3: Hash the password
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 4: Create the user in the unverified state
	user := &User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hash,
		Verified: false,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user signed up", slog.String("user_id", user.ID))
	return user, nil
}

// SignIn authenticates a user and issues a session token. The session is
// issued regardless of the verified flag; the flag travels as a claim and
// gates features downstream.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return "", nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := crypto.IssueSession(user.ID, user.Email, user.Verified, s.config.TokenSecret, s.config.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, user, nil
}

// SendVerificationCode generates a one-time code, mails it, and only then
// stores its commitment. A rejected recipient leaves the account
// untouched. Issuing again supersedes any outstanding code.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	return s.issueCode(ctx, user, verificationSubject, s.users.SetVerificationCode)
}

// VerifyVerificationCode confirms a pending verification code. On a valid
// unexpired code the account flips to verified and the commitment is
// cleared, so the code is single-use. An expired or wrong code leaves
// state unchanged.
func (s *AuthService) VerifyVerificationCode(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	if user.VerificationCode == nil || user.VerificationCodeIssuedAt == nil {
		return ErrCodeNotSent
	}

	valid, expired := crypto.VerifyCode(code, s.config.CodeSecret, *user.VerificationCode, *user.VerificationCodeIssuedAt, s.config.CodeTTL)
	switch {
	case valid && !expired:
		if err := s.users.MarkVerified(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}
		s.log.InfoContext(ctx, "user verified", slog.String("user_id", user.ID))
		return nil
	case expired:
		return ErrCodeExpired
	default:
		return ErrInvalidCode
	}
}

// ChangePassword replaces the password of a signed-in, verified user
// after re-checking the old one. Verified/code state is unaffected.
func (s *AuthService) ChangePassword(ctx context.Context, claims *crypto.SessionClaims, oldPassword, newPassword string) error {
	if err := ValidatePassword(oldPassword); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	if !claims.Verified {
		return ErrNotVerified
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(oldPassword, user.Password) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.log.InfoContext(ctx, "password changed", slog.String("user_id", user.ID))
	return nil
}

// SendForgotPasswordCode mails a reset code to any registered account,
// verified or not. The commitment lives in its own field namespace so a
// reset code can never confirm an email verification, or vice versa.
func (s *AuthService) SendForgotPasswordCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	return s.issueCode(ctx, user, forgotPasswordSubject, s.users.SetForgotPasswordCode)
}

// VerifyForgotPasswordCode confirms a pending reset code and, on success,
// replaces the password and clears the commitment in one write.
func (s *AuthService) VerifyForgotPasswordCode(ctx context.Context, email, code, newPassword string) error {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ForgotPasswordCode == nil || user.ForgotPasswordCodeIssuedAt == nil {
		return ErrCodeNotSent
	}

	valid, expired := crypto.VerifyCode(code, s.config.CodeSecret, *user.ForgotPasswordCode, *user.ForgotPasswordCodeIssuedAt, s.config.CodeTTL)
	switch {
	case valid && !expired:
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.users.ResetPassword(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}
		s.log.InfoContext(ctx, "password reset", slog.String("user_id", user.ID))
		return nil
	case expired:
		return ErrCodeExpired
	default:
		return ErrInvalidCode
	}
}

// issueCode runs the shared generate/mail/commit sequence. The commitment
// is persisted only after the mailer accepts the recipient, so a code is
// never active without having been dispatched.
func (s *AuthService) issueCode(ctx context.Context, user *User, subject string, store func(ctx context.Context, id, commitment string, issuedAt time.Time) error) error {
	code, err := crypto.GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.mailer.Send(ctx, user.Email, subject, "<h1>"+code+"</h1>"); err != nil {
		s.log.WarnContext(ctx, "code dispatch failed",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrMailRejected, err)
	}

	commitment := crypto.CommitCode(code, s.config.CodeSecret)
	if err := store(ctx, user.ID, commitment, time.Now()); err != nil {
		return fmt.Errorf("failed to store code commitment: %w", err)
	}

	s.log.InfoContext(ctx, "code issued",
		slog.String("user_id", user.ID), slog.String("subject", subject))
	return nil
}
