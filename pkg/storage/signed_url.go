package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlipTokenSigner creates and validates signed download tokens for payment
// slip evidence. Slips are stored as audit material, so they are not exposed
// through the public media URL space.
type SlipTokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSlipTokenSigner constructs a signer with the provided secret and TTL.
func NewSlipTokenSigner(secret string, ttl time.Duration) *SlipTokenSigner {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SlipTokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate returns a signed token referencing a donation and its slip path.
func (s *SlipTokenSigner) Generate(donationID int64, relPath string) (string, time.Time, error) {
	if donationID <= 0 || relPath == "" {
		return "", time.Time{}, fmt.Errorf("donation id and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := time.Now().Add(s.ttl)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	payload := fmt.Sprintf("%d|%d|%s", donationID, expiresAt.Unix(), encodedPath)
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	token := strings.Join([]string{
		strconv.FormatInt(donationID, 10),
		strconv.FormatInt(expiresAt.Unix(), 10),
		encodedPath,
		signature,
	}, ".")
	return token, expiresAt, nil
}

// Parse validates a token and returns the embedded metadata.
func (s *SlipTokenSigner) Parse(token string) (donationID int64, relPath string, expiresAt time.Time, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return 0, "", time.Time{}, fmt.Errorf("invalid token format")
	}

	donationID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("invalid donation id")
	}
	expUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("invalid expiry")
	}
	expiresAt = time.Unix(expUnix, 0)

	rawPath, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("decode path: %w", err)
	}
	relPath = string(rawPath)

	payload := fmt.Sprintf("%d|%d|%s", donationID, expUnix, parts[2])
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[3])) {
		return 0, "", time.Time{}, fmt.Errorf("signature mismatch")
	}

	if time.Now().After(expiresAt) {
		return 0, "", time.Time{}, fmt.Errorf("token expired")
	}

	return donationID, relPath, expiresAt, nil
}
