package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordLength = 8
	upperChars     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars     = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	specialChars   = "!@#$%"
	allChars       = upperChars + lowerChars + digitChars + specialChars
)

// GeneratePassword returns an 8-character password guaranteed to contain at
// least one uppercase letter, one lowercase letter, one digit, and one of
// "!@#$%". The first four slots hold one character of each class, the rest
// are drawn from the combined alphabet, and the whole buffer is shuffled so
// the guaranteed characters are not positionally predictable.
func GeneratePassword() (string, error) {
	buf := make([]byte, 0, passwordLength)

	for _, alphabet := range []string{upperChars, lowerChars, digitChars, specialChars} {
		c, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	for len(buf) < passwordLength {
		c, err := randomChar(allChars)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func randomChar(alphabet string) (byte, error) {
	i, err := randomInt(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random number: %w", err)
	}
	return int(v.Int64()), nil
}
