package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// IDGenerator produces unique token ids.
type IDGenerator interface {
	Generate() string
}

// TokenService signs and verifies HS256 bearer tokens. It holds no state
// besides its configuration; a refreshed token does not invalidate the
// token it was refreshed from.
type TokenService struct {
	signKey  []byte
	issuer   string
	ttl      time.Duration
	emailTTL time.Duration
	ids      IDGenerator
	now      func() time.Time
}

// TokenServiceOption customizes a [TokenService].
type TokenServiceOption func(*TokenService)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService builds a token service. ttl is the lifetime used by
// Refresh; emailTTL the lifetime of verification tokens.
func NewTokenService(signKey, issuer string, ttl, emailTTL time.Duration, ids IDGenerator, opts ...TokenServiceOption) *TokenService {
	s := &TokenService{
		signKey:  []byte(signKey),
		issuer:   issuer,
		ttl:      ttl,
		emailTTL: emailTTL,
		ids:      ids,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime of access tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs an access token for userID with the given role, valid for ttl.
// A non-positive ttl yields an already expired token.
func (s *TokenService) Issue(userID int64, role models.Role, ttl time.Duration) (models.Token, error) {
	return s.issue(userID, role, ttl, "")
}

// IssueEmailVerification signs a short-lived token accepted only by
// [TokenService.VerifyEmailVerification].
func (s *TokenService) IssueEmailVerification(userID int64, role models.Role) (models.Token, error) {
	return s.issue(userID, role, s.emailTTL, models.TokenPurposeEmailVerification)
}

// Verify checks an access token and returns its claims.
//
// Returns ErrTokenExpired when now > exp, ErrInvalidCredentials for any
// other failure (signature, algorithm, format, issuer, purpose).
func (s *TokenService) Verify(tokenString string) (models.Claims, error) {
	return s.verify(tokenString, "")
}

// VerifyEmailVerification checks a token produced by IssueEmailVerification.
func (s *TokenService) VerifyEmailVerification(tokenString string) (models.Claims, error) {
	return s.verify(tokenString, models.TokenPurposeEmailVerification)
}

// Refresh verifies tokenString, propagating its error, and issues a new
// access token with the same subject and role and a full lifetime.
func (s *TokenService) Refresh(tokenString string) (models.Token, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return models.Token{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	return s.Issue(userID, claims.Role, s.ttl)
}

func (s *TokenService) issue(userID int64, role models.Role, ttl time.Duration, purpose string) (models.Token, error) {
	if len(s.signKey) == 0 {
		return models.Token{}, fmt.Errorf("%w: token sign key is not set", ErrConfiguration)
	}
	if !role.Valid() {
		return models.Token{}, fmt.Errorf("error issuing token: %w", models.ErrUnknownRole)
	}

	now := s.now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:    role,
		Purpose: purpose,
	}
	if s.ids != nil {
		claims.ID = s.ids.Generate()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing token: %w", err)
	}

	return models.Token{SignedString: signed, Claims: claims}, nil
}

func (s *TokenService) verify(tokenString, purpose string) (models.Claims, error) {
	if len(s.signKey) == 0 {
		return models.Claims{}, fmt.Errorf("%w: token sign key is not set", ErrConfiguration)
	}

	claims := models.Claims{}
	// Time-based claims are checked below against the injected clock with
	// exact second comparison.
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return models.Claims{}, fmt.Errorf("%w: missing time claims", ErrInvalidCredentials)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return models.Claims{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidCredentials, claims.Issuer)
	}
	if _, err := claims.UserID(); err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if !claims.Role.Valid() {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, models.ErrUnknownRole)
	}
	if claims.Purpose != purpose {
		return models.Claims{}, fmt.Errorf("%w: token purpose %q not accepted here", ErrInvalidCredentials, claims.Purpose)
	}
	if s.now().Unix() > claims.ExpiresAt.Unix() {
		return models.Claims{}, ErrTokenExpired
	}

	return claims, nil
}

