package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// Email verification codes: 4 digits, 10 minute expiry, 5 attempts. Kept in
// memory; a restart just means the customer requests a new code.
const (
	codeExpiry  = 10 * time.Minute
	maxAttempts = 5
)

type verificationCode struct {
	code      string
	expiresAt time.Time
	attempts  int
}

var (
	codesMu sync.Mutex
	codes   = map[string]*verificationCode{}
)

// GenerateVerificationCode creates and stores a random 4-digit code for the
// email, replacing any previous one.
func GenerateVerificationCode(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%04d", n.Int64())

	codesMu.Lock()
	codes[strings.ToLower(email)] = &verificationCode{
		code:      code,
		expiresAt: time.Now().Add(codeExpiry),
	}
	codesMu.Unlock()

	return code, nil
}

// VerifyCode checks a submitted code. A correct code, an expired code and an
// exhausted attempt budget all clear the stored entry.
func VerifyCode(email string, code string) (bool, string) {
	email = strings.ToLower(email)

	codesMu.Lock()
	defer codesMu.Unlock()

	stored, ok := codes[email]
	if !ok {
		return false, "no verification code found, please request a new code"
	}
	if time.Now().After(stored.expiresAt) {
		delete(codes, email)
		return false, "verification code has expired, please request a new code"
	}
	if stored.code == code {
		delete(codes, email)
		return true, ""
	}

	stored.attempts++
	remaining := maxAttempts - stored.attempts
	if remaining <= 0 {
		delete(codes, email)
		return false, "too many failed attempts, please request a new code"
	}
	return false, fmt.Sprintf("invalid code, %d attempt(s) remaining", remaining)
}

// ClearCode drops any stored code for the email.
func ClearCode(email string) {
	codesMu.Lock()
	delete(codes, strings.ToLower(email))
	codesMu.Unlock()
}
