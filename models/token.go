package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurposeEmailVerification marks tokens that may only be used on the
// email verification link.
const TokenPurposeEmailVerification = "email-verification"

// Claims is the signed claim set carried by every bearer token.
//
// Subject holds the user id in base-10, IssuedAt and ExpiresAt are epoch
// seconds, ID is a unique token id used by the revocation denylist.
// Purpose is empty for access tokens.
type Claims struct {
	jwt.RegisteredClaims

	Role    Role   `json:"role"`
	Purpose string `json:"purpose,omitempty"`
}

// UserID parses the subject claim as an int64.
func (c Claims) UserID() (int64, error) {
	if c.Subject == "" {
		return 0, fmt.Errorf("error extracting UserID from token: empty subject")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Token is an issued bearer token: the compact JWS string plus the claims it
// was signed with.
type Token struct {
	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"token"`

	// Claims is a server-side copy of what was signed.
	Claims Claims `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
