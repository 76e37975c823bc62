// Package sampling implements random and deterministic sampling of evaluation points.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for the generation of random bytes.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG reads from the operating system's source of randomness.
type ThreadSafePRNG struct {
}

// NewPRNG returns a new PRNG that is thread-safe.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read reads bytes from the ThreadSafePRNG on sum.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a structure storing the parameters used to *deterministically* generate
// sequences of random bytes using the hash function blake2b.
// Two KeyedPRNG instantiated with the same key produce the same stream, which makes
// randomized evaluation points reproducible across runs.
type KeyedPRNG struct {
	mutex sync.Mutex
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Float64 reads 8 bytes from prng and maps them to a float uniformly distributed in [min, max).
func Float64(prng PRNG, min, max float64) (f float64, err error) {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err = io.ReadFull(prng, b); err != nil {
		return
	}
	// 53 random bits give every representable value of the unit interval the same weight.
	u := float64(binary.LittleEndian.Uint64(b)>>11) / (1 << 53)
	return min + u*(max-min), nil
}

// Float64s returns n floats uniformly distributed in [min, max), read from prng.
func Float64s(prng PRNG, min, max float64, n int) (fs []float64, err error) {
	fs = make([]float64, n)
	for i := range fs {
		if fs[i], err = Float64(prng, min, max); err != nil {
			return nil, err
		}
	}
	return
}
