package world

import (
	"hash/fnv"
	"math/rand/v2"
)

// seededRNG derives a PCG stream from the world seed. Each salt yields an
// independent stream so adding a generation pass never shifts another.
func seededRNG(seed, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for reproducible worlds.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed + ":" + salt))
	return h.Sum64()
}
