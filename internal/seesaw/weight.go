package seesaw

import (
	"math/rand"
	"time"

	"github.com/san-kum/seesaw/internal/balance"
)

// WeightSource supplies uniform integers in [0, n). *rand.Rand satisfies it.
type WeightSource interface {
	Intn(n int) int
}

// NextWeight draws a uniform weight in [MinWeight, MaxWeight].
func NextWeight(src WeightSource) int {
	return src.Intn(balance.MaxWeight-balance.MinWeight+1) + balance.MinWeight
}

// NewWeightSource seeds a source; seed 0 picks a time-based seed.
func NewWeightSource(seed int64) WeightSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
