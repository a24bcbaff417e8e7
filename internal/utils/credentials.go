package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

var passwordSymbols = []rune{'@', '#', '$', '%', '&', '*'}

// GenerateUsername derives a login name from the candidate's full name:
// lowercase it, replace spaces with '@', then shuffle the characters so
// two candidates with the same name never collide on the same string.
func GenerateUsername(fullName string) (string, error) {
	base := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(fullName)), " ", "@")
	runes := []rune(base)

	for i := len(runes) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", fmt.Errorf("failed to shuffle username: %w", err)
		}
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

// GeneratePassword derives an initial password from the local part of the
// candidate's email, a random three-digit number and a random symbol. Dots
// in the local part are replaced so the password stays on one token.
func GeneratePassword(email string) (string, error) {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.ReplaceAll(local, ".", "&")

	n, err := randomInt(900)
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	s, err := randomInt(len(passwordSymbols))
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	return fmt.Sprintf("%s%d%c", local, 100+n, passwordSymbols[s]), nil
}

// GenerateOTP produces a four-digit one-time password.
func GenerateOTP() (string, error) {
	n, err := randomInt(9000)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%04d", 1000+n), nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
