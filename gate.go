package mobymcp

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"
)

const bearerScheme = "Bearer "

// Gate verifies the bearer credential presented on each request against the
// token configured at process start. The token is fixed for the process
// lifetime; only its SHA-256 digest is retained in memory.
type Gate struct {
	digest [sha256.Size]byte
}

// NewGate returns a Gate for the given token.
func NewGate(token string) *Gate {
	return &Gate{digest: sha256.Sum256([]byte(token))}
}

// Authorize checks the raw Authorization header value. The header must be
// exactly "Bearer <token>": case-sensitive scheme, single space separator,
// no surrounding quotes. Tokens are compared as SHA-256 digests with
// crypto/subtle so a mismatch takes the same time regardless of where the
// tokens differ or how long they are.
func (g *Gate) Authorize(header string) error {
	token, ok := strings.CutPrefix(header, bearerScheme)
	if !ok || token == "" {
		return fmt.Errorf("%w: expected Authorization: Bearer <token>", ErrUnauthorized)
	}

	sum := sha256.Sum256([]byte(token))
	if subtle.ConstantTimeCompare(sum[:], g.digest[:]) != 1 {
		return fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	return nil
}
