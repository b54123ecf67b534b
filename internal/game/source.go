package game

import (
	"crypto/rand"
	"math/big"

	util "github.com/CodeAndHammer/nombroludo/internal/util"
)

// Source draws integers uniformly from [0, n). n is always positive.
type Source interface {
	Intn(n int) int
}

type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		util.LogWarn("Error generating random number: %v, using fallback", err)
		return 0
	}
	return int(v.Int64())
}

// drawSecret keeps the half-open range of the browser game: max itself is
// never drawn.
func drawSecret(src Source, min, max int) int {
	return src.Intn(max-min) + min
}
