// Package simhash provides 64-bit SimHash fingerprints for short text,
// used to suppress near-duplicate product titles within one platform's
// result set (retailers often list the same item twice with minor title
// variations).
package simhash

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// Fingerprint computes a 64-bit SimHash of the given text.
// Tokens are lowercased whitespace-separated words hashed with FNV-64a
// and accumulated into a bit vector, so word order barely matters and
// small edits move few bits.
func Fingerprint(text string) uint64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var vector [64]int

	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}

	return fingerprint
}

// Distance returns the Hamming distance between two SimHash fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar returns true if the Hamming distance between two fingerprints
// is less than or equal to the threshold.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}
