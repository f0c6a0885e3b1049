package utils // utils provides helper functions for session token creation and verification

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/iliyamo/store-rating-platform/internal/model"
)

// SessionToken is a signed HS256 JWT carrying the user's identity and
// role. Tokens are stateless: nothing is stored server-side and there
// is no revocation list, so expiry is the only way a token dies.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID uint64
	Role   model.Role
}

// ErrInvalidToken is returned by ParseSessionToken for anything that
// does not verify: bad signature, wrong algorithm, expired, malformed
// claims or a role outside the closed set.
var ErrInvalidToken = errors.New("invalid token")

// NewSessionToken builds and signs an HS256 JWT for a user. The JWT
// includes standard claims: subject (sub), role, expiration (exp) and
// issued at (iat). ttlMin is the token lifetime in minutes.
func NewSessionToken(secret string, userID uint64, role model.Role, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role.String(),
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a raw JWT string and extracts its claims.
// Only HMAC-signed tokens are accepted; jwt.Parse rejects expired
// tokens on its own via the exp claim.
func ParseSessionToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mc["sub"].(float64) // numeric JSON claims decode as float64
	if !ok || sub <= 0 {
		return Claims{}, ErrInvalidToken
	}
	roleStr, _ := mc["role"].(string)
	role, ok := model.ParseRole(roleStr)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: uint64(sub), Role: role}, nil
}
