// Package token issues and verifies the gateway's self-contained session
// tokens: three dot-separated base64url segments (header, claims, signature)
// signed with HMAC-SHA256 under a single shared secret. The token is the only
// representation of a session - nothing is stored server-side, so a token
// cannot be revoked before it expires and logout is purely a client action.
//
// The format is deliberately not a standards-compliant JWT: the header is
// fixed to {"alg":"HMAC-SHA256","typ":"token"} and nothing outside this
// service is expected to mint or accept these tokens.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingSecret = errors.New("signing secret is required")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
)

// Claims is the signed token payload.
type Claims struct {
	Subject   string `json:"sub"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"exp"`
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

var (
	encoding = base64.RawURLEncoding
	// Strict decoding rejects non-zero trailing padding bits, so every
	// token has exactly one valid spelling and flipping any character of
	// a valid token invalidates it.
	strictDecoding = base64.RawURLEncoding.Strict()
)

// Codec signs and verifies session tokens with a shared secret and a fixed
// TTL chosen at construction time; callers never control expiry.
type Codec struct {
	secret  []byte
	ttl     time.Duration
	nowTime func() time.Time
}

// CodecOption modifies a Codec during construction.
type CodecOption func(*Codec)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowTime = nowFunc
	}
}

// New creates a Codec. The secret is provisioned out-of-band and shared by
// every instance of the service.
func New(secret []byte, ttl time.Duration, options ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	codec := &Codec{
		secret:  secret,
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(codec)
	}
	return codec, nil
}

// Issue signs a token for the given identity, expiring after the Codec's TTL.
func (c *Codec) Issue(userID, username string) (string, error) {
	claims := Claims{
		Subject:   userID,
		Name:      username,
		ExpiresAt: c.nowTime().Add(c.ttl).Unix(),
	}

	headerJSON, err := json.Marshal(tokenHeader{Alg: "HMAC-SHA256", Typ: "token"})
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	unsigned := encoding.EncodeToString(headerJSON) + "." + encoding.EncodeToString(claimsJSON)
	return unsigned + "." + encoding.EncodeToString(c.sign(unsigned)), nil
}

// Verify checks structure, signature and expiry, in that order. Every failure
// comes back as an explicit error (ErrInvalidToken or ErrTokenExpired);
// malformed input never panics and never reaches the claims decode before the
// signature has been verified.
func (c *Codec) Verify(tok string) (Claims, error) {
	segments := strings.Split(tok, ".")
	if len(segments) != 3 {
		return Claims{}, ErrInvalidToken
	}

	signature, err := strictDecoding.DecodeString(segments[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	unsigned := segments[0] + "." + segments[1]
	if !hmac.Equal(signature, c.sign(unsigned)) {
		return Claims{}, ErrInvalidToken
	}

	claimsJSON, err := strictDecoding.DecodeString(segments[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}

	if claims.ExpiresAt <= c.nowTime().Unix() {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}

func (c *Codec) sign(unsigned string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(unsigned))
	return mac.Sum(nil)
}
