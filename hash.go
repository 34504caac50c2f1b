package chash

import "github.com/cespare/xxhash/v2"

// Hasher maps a key to an unsigned integer. It must be deterministic;
// it does not need to be cryptographically secure.
type Hasher func(key []byte) uint64

const djbSeed = 5381

// DJB33X is the djb2 xor variant: acc = acc*33 ^ b, starting at 5381.
// The empty key hashes to 5381.
func DJB33X(key []byte) uint64 {
	hash := uint64(djbSeed)
	for _, b := range key {
		hash = ((hash << 5) + hash) ^ uint64(b)
	}
	return hash
}

// XXHash hashes the key with 64-bit xxHash.
func XXHash(key []byte) uint64 {
	return xxhash.Sum64(key)
}
