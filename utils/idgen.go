package utils

import (
	"fmt"
	"strconv"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// idAlphabet is URL-safe and avoids punctuation so ids survive copy/paste.
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID returns prefix followed by n random characters.
func GenerateID(prefix string, n int) (string, error) {
	id, err := nanoid.Generate(idAlphabet, n)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// AnonymousToken is "anon_<unix millis>_<random>". It is a best-effort
// deduplication key, not a security token.
func AnonymousToken(now time.Time) string {
	suffix, err := nanoid.Generate(idAlphabet, 9)
	if err != nil {
		// nanoid only fails on a broken random source; keep the time part.
		suffix = "000000000"
	}
	return "anon_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
}
