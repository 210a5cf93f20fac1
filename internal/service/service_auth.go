package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/mail"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// unknownUserPassword is hashed once to give unknown-email logins a hash to
// verify against.
const unknownUserPassword = "unknown-user-placeholder"

// authService is the concrete implementation of AuthService.
// It owns registration, credential checks and the token lifecycle. Password
// hashes and tokens are never logged.
type authService struct {
	userRepository store.UserRepository
	denylist       store.TokenDenylist

	hasher    PasswordHasher
	tokens    TokenService
	mailer    mail.Mailer
	validator validators.Validator

	// baseURL prefixes the verification link sent by mail.
	baseURL string

	// unknownUserHash is verified against when the login email is not
	// registered, so both failure paths pay for one Argon2 run.
	unknownUserHash     string
	unknownUserHashOnce sync.Once

	logger *logger.Logger
}

// NewAuthService wires the account flows. denylist may be a no-op
// implementation; a nil denylist is not allowed.
func NewAuthService(
	userRepository store.UserRepository,
	denylist store.TokenDenylist,
	hasher PasswordHasher,
	tokens TokenService,
	mailer mail.Mailer,
	validator validators.Validator,
	baseURL string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		denylist:       denylist,
		hasher:         hasher,
		tokens:         tokens,
		mailer:         mailer,
		validator:      validator,
		baseURL:        baseURL,
		logger:         logger,
	}
}

// Register creates an account and returns a token for it.
//
// Returns:
//   - ErrValidation for a malformed email, a weak password or an unknown role;
//   - store.ErrUserAlreadyExists when the email is taken.
func (a *authService) Register(ctx context.Context, user models.RegisterUser) (models.AuthUser, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("func", "authService.Register").Msg("invalid registration data")
		return models.AuthUser{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	passwordHash, err := a.hasher.Hash(user.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("password hashing failed")
		return models.AuthUser{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        user.Email,
		PasswordHash: passwordHash,
		Role:         user.Role,
	})
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Str("email", user.Email).Msg("user creation ended with error")
		return models.AuthUser{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "authService.Register").Int64("user_id", created.UserID).Str("role", created.Role.String()).Msg("user registered")

	return a.authUser(created)
}

// Login checks the credentials. An unknown email and a wrong password both
// fail with ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, user models.LoginUser) (models.AuthUser, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		return models.AuthUser{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	found, err := a.userRepository.FindUserByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		a.verifyUnknownUser(ctx, user.Password)
		log.Info().Str("func", "authService.Login").Msg("login with unknown email")
		return models.AuthUser{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.AuthUser{}, fmt.Errorf("user search by email failed: %w", err)
	}

	ok, err := a.hasher.Verify(user.Password, found.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Int64("user_id", found.UserID).Msg("password verification failed")
		return models.AuthUser{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Info().Str("func", "authService.Login").Int64("user_id", found.UserID).Msg("wrong password")
		return models.AuthUser{}, ErrInvalidCredentials
	}

	return a.authUser(found)
}

// verifyUnknownUser runs a password verification whose result is discarded.
func (a *authService) verifyUnknownUser(ctx context.Context, password string) {
	a.unknownUserHashOnce.Do(func() {
		hash, err := a.hasher.Hash(unknownUserPassword)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "authService.verifyUnknownUser").Msg("placeholder hash creation failed")
			return
		}
		a.unknownUserHash = hash
	})

	if a.unknownUserHash != "" {
		_, _ = a.hasher.Verify(password, a.unknownUserHash)
	}
}

func (a *authService) authUser(user models.User) (models.AuthUser, error) {
	token, err := a.tokens.Issue(user.UserID, user.Role, a.tokens.TTL())
	if err != nil {
		return models.AuthUser{}, fmt.Errorf("token creation failed: %w", err)
	}

	return models.AuthUser{UserRole: user.Role, Token: token.SignedString}, nil
}

// Authenticate verifies an access token and rejects revoked ones with
// auth.ErrInvalidCredentials.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Claims, error) {
	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return models.Claims{}, err
	}

	revoked, err := a.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.Authenticate").Msg("denylist lookup failed")
		return models.Claims{}, fmt.Errorf("denylist lookup failed: %w", err)
	}
	if revoked {
		return models.Claims{}, fmt.Errorf("%w: token revoked", auth.ErrInvalidCredentials)
	}

	return claims, nil
}

// Refresh issues a new token with the subject and role of tokenString. The
// presented token stays valid until its own expiry.
func (a *authService) Refresh(ctx context.Context, tokenString string) (models.Token, error) {
	if _, err := a.Authenticate(ctx, tokenString); err != nil {
		return models.Token{}, err
	}

	return a.tokens.Refresh(tokenString)
}

// Logout revokes the presented token until it expires.
func (a *authService) Logout(ctx context.Context, claims models.Claims) error {
	if claims.ExpiresAt == nil {
		return fmt.Errorf("%w: token has no expiry", auth.ErrInvalidCredentials)
	}

	if err := a.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.Logout").Msg("token revocation failed")
		return fmt.Errorf("token revocation failed: %w", err)
	}

	return nil
}

// ChangePassword replaces the stored credential after checking the old
// password.
func (a *authService) ChangePassword(ctx context.Context, userID int64, change models.ChangePassword) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, change); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user search failed: %w", err)
	}

	ok, err := a.hasher.Verify(change.OldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := a.hasher.Hash(change.NewPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.userRepository.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		log.Err(err).Str("func", "authService.ChangePassword").Int64("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search failed: %w", err)
	}
	return user, nil
}

// SendEmailVerification mails a short-lived verification link to the user.
func (a *authService) SendEmailVerification(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user search failed: %w", err)
	}

	token, err := a.tokens.IssueEmailVerification(user.UserID, user.Role)
	if err != nil {
		return fmt.Errorf("verification token creation failed: %w", err)
	}

	if err = a.mailer.Send(ctx, mail.VerificationMessage(user.Email, a.baseURL, token.SignedString)); err != nil {
		log.Err(err).Str("func", "authService.SendEmailVerification").Int64("user_id", userID).Msg("verification mail failed")
		return fmt.Errorf("verification mail failed: %w", err)
	}

	return nil
}

// VerifyEmail marks the token's subject as verified. Verification tokens
// are only accepted here and access tokens are rejected.
func (a *authService) VerifyEmail(ctx context.Context, tokenString string) error {
	claims, err := a.tokens.VerifyEmailVerification(tokenString)
	if err != nil {
		return err
	}

	userID, err := claims.UserID()
	if err != nil {
		return fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
	}

	if err = a.userRepository.SetEmailVerified(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.VerifyEmail").Int64("user_id", userID).Msg("email verification failed")
		return fmt.Errorf("email verification failed: %w", err)
	}

	return nil
}
