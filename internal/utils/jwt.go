package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel errors for token verification outcomes
	"time"   // time utilities for computing expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Verification failures are reported as one of three sentinel errors so the
// request gate can distinguish an unparseable string from a well-formed token
// that is expired or carries a bad signature.  Callers compare with errors.Is.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Identity is the resolved subject of a verified access token.  It is
// attached to the request context by the gate middleware and consumed by
// handlers and the authorization policy.  It lives only for the duration of
// a single request and is never persisted.
type Identity struct {
	UserID uint64 // the user's primary key (the token's "sub" claim)
	Role   string // admin | teacher | student (the token's "role" claim)
}

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string.  Exp stores the UTC
// expiration time.  Access tokens are stateless: there is no server-side
// revocation list, so a token stays valid until Exp passes.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role, and a TTL in hours.  The JWT
// carries the standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).
func NewAccessToken(secret string, userID uint64, role string, ttlHours int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a serialized access token against
// the signing secret.  The signing method must be HMAC; tokens signed with
// any other algorithm are rejected.  Expiry is checked by the parser using
// the token's exp claim.  On success the subject and role claims are
// extracted into an Identity.
func VerifyAccessToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Identity{}, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		default:
			return Identity{}, ErrTokenInvalid
		}
	}
	if !tok.Valid {
		return Identity{}, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrTokenInvalid
	}
	// Numeric JSON values decode as float64; the subject must be a positive
	// integer user ID.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Identity{}, ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: uint64(sub), Role: role}, nil
}
