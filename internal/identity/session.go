package identity

import (
	"crypto/rand"   // secure random session identifiers
	"crypto/sha256" // SHA-256 hashing for stored session ids
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken carries the signed cookie value handed to the browser along
// with the raw session id and expiry. Only the SHA-256 hash of SID is
// persisted; the signed token embeds SID so the server can revoke it.
type SessionToken struct {
	Token string    // the serialized JWT placed in the session cookie
	SID   string    // raw random session identifier embedded in the token
	Exp   time.Time // UTC expiration time
}

// Claims are the values recovered from a parsed session token.
type Claims struct {
	UserID     uint64
	Role       string
	EmployeeID uint64
	SID        string
}

var errInvalidToken = errors.New("invalid session token")

// NewSessionToken builds an HS256 JWT for a user session. The claims hold
// the subject (sub), role, employee id (eid) and the random session id
// (sid) whose hash anchors the server-side session row.
func NewSessionToken(secret string, userID, employeeID uint64, role string, ttl time.Duration) (SessionToken, error) {
	sid, err := randomHex(32)
	if err != nil {
		return SessionToken{}, err
	}
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"eid":  employeeID,
		"sid":  sid,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, SID: sid, Exp: exp}, nil
}

// ParseSessionToken validates the signature and expiry of a session cookie
// value and extracts its claims. It does not consult the session store;
// callers must still check that the sid has not been revoked.
func ParseSessionToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, errInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errInvalidToken
	}
	var c Claims
	if sub, ok := mc["sub"].(float64); ok {
		c.UserID = uint64(sub)
	}
	if eid, ok := mc["eid"].(float64); ok {
		c.EmployeeID = uint64(eid)
	}
	c.Role, _ = mc["role"].(string)
	c.SID, _ = mc["sid"].(string)
	if c.UserID == 0 || c.SID == "" {
		return Claims{}, errInvalidToken
	}
	return c, nil
}

// HashSessionID returns the SHA-256 hash of a raw session id as a hex
// string. Storing only the hash keeps stolen database rows from being
// replayed as live sessions.
func HashSessionID(sid string) string {
	sum := sha256.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
