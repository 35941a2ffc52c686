// Package scopedtoken mints and validates the narrowly-privileged tokens
// that drive the secondary (new-tab) biometric registration context. A
// scoped token is distinct from the main session auth token: it grants only
// what the registration tab needs and is discarded on any polling error.
package scopedtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "bifrost/pkg/domain-errors"
)

// Scope names what a scoped token may be used for.
const ScopeLivenessRegister = "liveness_register"

// Claims are the JWT claims carried by a scoped token.
type Claims struct {
	SessionID string `json:"session_id"`
	TenantPK  string `json:"tenant_pk,omitempty"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

// Service handles scoped token creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewService creates a scoped token service. ttl bounds how long a
// registration tab may keep working with one token.
func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     "bifrost",
		ttl:        ttl,
	}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Generate mints a scoped token for the given session.
func (s *Service) Generate(sessionID, tenantPK string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: sessionID,
		TenantPK:  tenantPK,
		Scope:     ScopeLivenessRegister,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate parses a scoped token and returns its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeExpired, "scoped token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid scoped token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid scoped token claims")
	}
	if claims.Scope != ScopeLivenessRegister {
		return nil, dErrors.New(dErrors.CodeForbidden, "token scope mismatch")
	}
	return claims, nil
}

// JTIOf extracts the token ID without validating expiry; used when revoking
// a token that may already be past its lifetime.
func (s *Service) JTIOf(tokenString string) (string, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		var de *dErrors.Error
		if errors.As(err, &de) && de.Code == dErrors.CodeExpired {
			// Expired is fine for revocation purposes; re-parse leniently.
			parsed, _, perr := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
			if perr != nil {
				return "", dErrors.New(dErrors.CodeUnauthorized, "unparseable scoped token")
			}
			if c, ok := parsed.Claims.(*Claims); ok {
				return c.ID, nil
			}
			return "", dErrors.New(dErrors.CodeUnauthorized, "unparseable scoped token claims")
		}
		return "", err
	}
	return claims.ID, nil
}
