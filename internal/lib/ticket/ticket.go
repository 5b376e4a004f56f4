// Package ticket issues short-lived HMAC-signed tokens for the websocket
// feed, so clients never place the API key itself in a URL.
package ticket

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformed = errors.New("malformed ticket")
	ErrExpired   = errors.New("ticket expired")
	ErrSignature = errors.New("invalid ticket signature")
)

// Sign returns "<subject>.<expiresUnix>.<hexsig>". subject must not contain dots.
func Sign(subject, secret string, ttl time.Duration) string {
	return sign(subject, secret, time.Now().Add(ttl).Unix())
}

func sign(subject, secret string, expires int64) string {
	return fmt.Sprintf("%s.%d.%s", subject, expires, computeHMAC(subject, expires, secret))
}

// Verify checks signature and expiry and returns the subject.
func Verify(token, secret string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" {
		return "", ErrMalformed
	}
	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrMalformed
	}
	expected := computeHMAC(parts[0], exp, secret)
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return "", ErrSignature
	}
	if time.Now().Unix() > exp {
		return "", ErrExpired
	}
	return parts[0], nil
}

func computeHMAC(subject string, expires int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s:%d", subject, expires)))
	return hex.EncodeToString(mac.Sum(nil))
}
