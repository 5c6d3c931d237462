package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/imovie-web/internal/errors"
)

const sessionIssuer = "imovie-web"

// SessionClaims identify a browser session. The cookie carries nothing else;
// the identity lives in the session's snapshot store.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionCodec issues and parses browser session cookies.
type SessionCodec struct {
	signer Signer
	maxAge time.Duration
	now    func() time.Time
}

func NewSessionCodec(signer Signer, maxAge time.Duration) *SessionCodec {
	return &SessionCodec{signer: signer, maxAge: maxAge, now: time.Now}
}

// NewSessionID returns a fresh random browser session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Issue signs a cookie value for sessionID.
func (c *SessionCodec) Issue(sessionID string) (string, error) {
	now := c.now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
	}
	return c.signer.Sign(claims)
}

// Parse verifies a cookie value and returns its session id. Any failure
// wraps ErrInvalidCookie.
func (c *SessionCodec) Parse(raw string) (string, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, c.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", errors.Wrap(apperrors.ErrInvalidCookie, err.Error())
	}
	if err := uuid.Validate(claims.SessionID); err != nil {
		return "", errors.Wrap(apperrors.ErrInvalidCookie, "sid is not a uuid")
	}
	return claims.SessionID, nil
}

// MaxAge is how long issued cookies stay valid.
func (c *SessionCodec) MaxAge() time.Duration {
	return c.maxAge
}
