package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

// InviteCodeLength - длина кода приглашения в команду.
const InviteCodeLength = 10

const inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateInviteCode возвращает случайный код из [A-Za-z0-9] длиной InviteCodeLength.
func GenerateInviteCode() (string, error) {
	return randomString(InviteCodeLength, inviteCodeCharset)
}

func randomString(length int, charset string) (string, error) {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}
