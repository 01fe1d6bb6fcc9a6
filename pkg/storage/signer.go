package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenMalformed = errors.New("malformed download token")
	ErrTokenSignature = errors.New("invalid download token signature")
	ErrTokenExpired   = errors.New("download token expired")
)

// Signer issues short-lived tokens that grant read access to one stored key.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner constructs a signer. A non-positive ttl defaults to one hour.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token for key owned by subject.
func (s *Signer) Sign(subject, key string) (string, time.Time, error) {
	if subject == "" || key == "" {
		return "", time.Time{}, errors.New("subject and key required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).UTC()
	body := strings.Join([]string{subject, strconv.FormatInt(expiresAt.Unix(), 10), key}, "\n")
	encoded := base64.RawURLEncoding.EncodeToString([]byte(body))
	return encoded + "." + s.mac(encoded), expiresAt, nil
}

// Verify checks the signature and expiry and returns the subject and key.
func (s *Signer) Verify(token string) (subject, key string, err error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || sig == "" {
		return "", "", ErrTokenMalformed
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(encoded))) {
		return "", "", ErrTokenSignature
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrTokenMalformed
	}
	parts := strings.SplitN(string(raw), "\n", 3)
	if len(parts) != 3 {
		return "", "", ErrTokenMalformed
	}
	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", "", ErrTokenMalformed
	}
	if s.now().After(time.Unix(exp, 0)) {
		return "", "", ErrTokenExpired
	}
	return parts[0], parts[2], nil
}

func (s *Signer) mac(encoded string) string {
	h := hmac.New(sha256.New, s.secret)
	_, _ = h.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
