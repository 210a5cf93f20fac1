package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/mail"
	"github.com/MKhiriev/go-shop-keeper/internal/mock"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authMocks struct {
	users    *mock.MockUserRepository
	denylist *mock.MockTokenDenylist
	hasher   *mock.MockPasswordHasher
	tokens   *mock.MockTokenService
	mailer   *mock.MockMailer
}

func newTestAuthService(t *testing.T) (AuthService, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := authMocks{
		users:    mock.NewMockUserRepository(ctrl),
		denylist: mock.NewMockTokenDenylist(ctrl),
		hasher:   mock.NewMockPasswordHasher(ctrl),
		tokens:   mock.NewMockTokenService(ctrl),
		mailer:   mock.NewMockMailer(ctrl),
	}

	svc := NewAuthService(m.users, m.denylist, m.hasher, m.tokens, m.mailer, validators.NewShopValidator(), "https://shop.example.com", logger.Nop())
	return svc, m
}

func accessClaims(userID string, expires time.Time) models.Claims {
	return models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-id",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role: models.RoleCustomer,
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	input := models.RegisterUser{Email: "jane@example.com", Password: "Str0ng!pass", Role: models.RoleCustomer}

	gomock.InOrder(
		m.hasher.EXPECT().Hash("Str0ng!pass").Return("$argon2id$encoded", nil),
		m.users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "jane@example.com", u.Email)
				assert.Equal(t, "$argon2id$encoded", u.PasswordHash)
				assert.Equal(t, models.RoleCustomer, u.Role)
				u.UserID = 7
				return u, nil
			},
		),
		m.tokens.EXPECT().TTL().Return(time.Hour),
		m.tokens.EXPECT().Issue(int64(7), models.RoleCustomer, time.Hour).Return(models.Token{SignedString: "signed"}, nil),
	)

	got, err := svc.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, models.AuthUser{UserRole: models.RoleCustomer, Token: "signed"}, got)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), models.RegisterUser{Email: "jane@example.com", Password: "weak", Role: models.RoleCustomer})

	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrWeakPassword)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash(gomock.Any()).Return("hash", nil)
	m.users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, models.RegisterUser{Email: "jane@example.com", Password: "Str0ng!pass", Role: models.RoleSupplier})

	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	stored := models.User{UserID: 3, Email: "jane@example.com", PasswordHash: "hash", Role: models.RoleSupplier}

	tests := []struct {
		name    string
		setup   func(m authMocks)
		wantErr error
	}{
		{
			name: "success",
			setup: func(m authMocks) {
				m.users.EXPECT().FindUserByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
				m.hasher.EXPECT().Verify("Str0ng!pass", "hash").Return(true, nil)
				m.tokens.EXPECT().TTL().Return(time.Hour)
				m.tokens.EXPECT().Issue(int64(3), models.RoleSupplier, time.Hour).Return(models.Token{SignedString: "signed"}, nil)
			},
		},
		{
			name: "unknown email",
			setup: func(m authMocks) {
				m.users.EXPECT().FindUserByEmail(gomock.Any(), "jane@example.com").Return(models.User{}, store.ErrUserNotFound)
				m.hasher.EXPECT().Hash(unknownUserPassword).Return("placeholder-hash", nil)
				m.hasher.EXPECT().Verify("Str0ng!pass", "placeholder-hash").Return(false, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(m authMocks) {
				m.users.EXPECT().FindUserByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
				m.hasher.EXPECT().Verify("Str0ng!pass", "hash").Return(false, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "malformed stored hash",
			setup: func(m authMocks) {
				m.users.EXPECT().FindUserByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
				m.hasher.EXPECT().Verify("Str0ng!pass", "hash").Return(false, auth.ErrMalformedHash)
			},
			wantErr: auth.ErrMalformedHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAuthService(t)
			tt.setup(m)

			got, err := svc.Login(context.Background(), models.LoginUser{Email: "jane@example.com", Password: "Str0ng!pass"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed", got.Token)
			assert.Equal(t, models.RoleSupplier, got.UserRole)
		})
	}
}

func TestAuthService_Login_UnknownEmailVerifiesPassword(t *testing.T) {
	svc, m := newTestAuthService(t)
	login := models.LoginUser{Email: "ghost@example.com", Password: "Str0ng!pass"}

	m.users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrUserNotFound).Times(2)
	m.hasher.EXPECT().Hash(unknownUserPassword).Return("placeholder-hash", nil).Times(1)
	m.hasher.EXPECT().Verify("Str0ng!pass", "placeholder-hash").Return(true, nil).Times(2)

	for range 2 {
		_, err := svc.Login(context.Background(), login)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAuthService_Login_UnknownEmailWithoutPlaceholder(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)
	m.hasher.EXPECT().Hash(unknownUserPassword).Return("", auth.ErrConfiguration)

	_, err := svc.Login(context.Background(), models.LoginUser{Email: "ghost@example.com", Password: "Str0ng!pass"})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Authenticate / Refresh / Logout ─────────────────────────────────────────

func TestAuthService_Authenticate_Revoked(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	claims := accessClaims("5", time.Now().Add(time.Hour))

	m.tokens.EXPECT().Verify("tok").Return(claims, nil)
	m.denylist.EXPECT().IsRevoked(ctx, "token-id").Return(true, nil)

	_, err := svc.Authenticate(ctx, "tok")

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.tokens.EXPECT().Verify("tok").Return(models.Claims{}, auth.ErrTokenExpired)

	_, err := svc.Authenticate(context.Background(), "tok")

	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	claims := accessClaims("5", time.Now().Add(time.Hour))

	gomock.InOrder(
		m.tokens.EXPECT().Verify("tok").Return(claims, nil),
		m.denylist.EXPECT().IsRevoked(ctx, "token-id").Return(false, nil),
		m.tokens.EXPECT().Refresh("tok").Return(models.Token{SignedString: "fresh"}, nil),
	)

	got, err := svc.Refresh(ctx, "tok")

	require.NoError(t, err)
	assert.Equal(t, "fresh", got.SignedString)
}

func TestAuthService_Logout(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	expires := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	m.denylist.EXPECT().Revoke(ctx, "token-id", expires).Return(nil)

	require.NoError(t, svc.Logout(ctx, accessClaims("5", expires)))
}

func TestAuthService_Logout_NoExpiry(t *testing.T) {
	svc, _ := newTestAuthService(t)

	err := svc.Logout(context.Background(), models.Claims{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestAuthService_ChangePassword(t *testing.T) {
	change := models.ChangePassword{OldPassword: "0ld!Passw", NewPassword: "N3w!Passw"}

	t.Run("success", func(t *testing.T) {
		svc, m := newTestAuthService(t)
		ctx := context.Background()

		gomock.InOrder(
			m.users.EXPECT().FindUserByID(ctx, int64(9)).Return(models.User{UserID: 9, PasswordHash: "old-hash"}, nil),
			m.hasher.EXPECT().Verify("0ld!Passw", "old-hash").Return(true, nil),
			m.hasher.EXPECT().Hash("N3w!Passw").Return("new-hash", nil),
			m.users.EXPECT().UpdatePasswordHash(ctx, int64(9), "new-hash").Return(nil),
		)

		require.NoError(t, svc.ChangePassword(ctx, 9, change))
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc, m := newTestAuthService(t)

		m.users.EXPECT().FindUserByID(gomock.Any(), int64(9)).Return(models.User{UserID: 9, PasswordHash: "old-hash"}, nil)
		m.hasher.EXPECT().Verify("0ld!Passw", "old-hash").Return(false, nil)

		err := svc.ChangePassword(context.Background(), 9, change)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		err := svc.ChangePassword(context.Background(), 9, models.ChangePassword{OldPassword: "0ld!Passw", NewPassword: "short"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

// ── Email verification ───────────────────────────────────────────────────────

func TestAuthService_SendEmailVerification(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.users.EXPECT().FindUserByID(ctx, int64(4)).Return(models.User{UserID: 4, Email: "jane@example.com", Role: models.RoleCustomer}, nil)
	m.tokens.EXPECT().IssueEmailVerification(int64(4), models.RoleCustomer).Return(models.Token{SignedString: "verify-me"}, nil)
	m.mailer.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg mail.Message) error {
		assert.Equal(t, "jane@example.com", msg.To)
		assert.Contains(t, msg.Body, "https://shop.example.com/verify/verify-me")
		return nil
	})

	require.NoError(t, svc.SendEmailVerification(ctx, 4))
}

func TestAuthService_SendEmailVerification_MailFailure(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.users.EXPECT().FindUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4, Email: "jane@example.com"}, nil)
	m.tokens.EXPECT().IssueEmailVerification(gomock.Any(), gomock.Any()).Return(models.Token{SignedString: "t"}, nil)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(mail.ErrNotConfigured)

	err := svc.SendEmailVerification(context.Background(), 4)

	assert.ErrorIs(t, err, mail.ErrNotConfigured)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newTestAuthService(t)
		ctx := context.Background()

		m.tokens.EXPECT().VerifyEmailVerification("tok").Return(accessClaims("12", time.Now().Add(time.Hour)), nil)
		m.users.EXPECT().SetEmailVerified(ctx, int64(12)).Return(nil)

		require.NoError(t, svc.VerifyEmail(ctx, "tok"))
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, m := newTestAuthService(t)

		m.tokens.EXPECT().VerifyEmailVerification("tok").Return(models.Claims{}, auth.ErrInvalidCredentials)

		assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "tok"), auth.ErrInvalidCredentials)
	})

	t.Run("bad subject", func(t *testing.T) {
		svc, m := newTestAuthService(t)

		m.tokens.EXPECT().VerifyEmailVerification("tok").Return(accessClaims("abc", time.Now()), nil)

		assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "tok"), auth.ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, m := newTestAuthService(t)
		storeErr := errors.New("connection reset")

		m.tokens.EXPECT().VerifyEmailVerification("tok").Return(accessClaims("12", time.Now()), nil)
		m.users.EXPECT().SetEmailVerified(gomock.Any(), int64(12)).Return(storeErr)

		assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "tok"), storeErr)
	})
}
