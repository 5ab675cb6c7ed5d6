package utils

import (
	rndm "math/rand"
	"net/http"
	"os"
	"strings"

	"agrogram/globals"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateName creates a random alphanumeric string of length n.
func GenerateName(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Request Helpers ---

// GetUserIDFromRequest returns the authenticated user's id from the request
// context, or "" when the request carries no valid identity.
func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// --- Misc ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// NormalizeEmail lowercases and trims an email for comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
