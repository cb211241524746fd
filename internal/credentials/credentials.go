// Package credentials mints throwaway account credentials for new users.
package credentials

import (
	"math/rand/v2"

	"resumeforge/internal/types"
)

const (
	alphabet         = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	credentialLength = 8
)

// randomString returns a fixed-length string over the alphanumeric alphabet.
// Not cryptographically strong; these are low-stakes generated credentials.
func randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Generate produces a fresh username/password pair. The two values are
// drawn independently and no uniqueness check is performed; collisions
// overwrite the earlier record (last writer wins).
func Generate() types.Credentials {
	return types.Credentials{
		Username: randomString(credentialLength),
		Password: randomString(credentialLength),
	}
}
