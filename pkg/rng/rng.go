// Package rng supplies the randomness used to pick a random starting rank.
//
// Several independent generators are available and NewDefault mixes them by
// XOR, so the draw is at least as unpredictable as the best of them. Draws
// over a range are uniform: Uint64n and Intn use rejection sampling rather
// than a plain modulo.
package rng

import (
	"context"
	"crypto/cipher"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"
	mrand "math/rand"
	"sync"

	"github.com/seehuhn/mt19937"
	"golang.org/x/crypto/chacha20"

	"github.com/rayozzie/cmb/pkg/trace"
)

// Source fills p with random bytes.
//
// Implementations must fill the whole buffer or return an error; callers do
// not loop on short reads except when mixing. The context carries the tracer
// used for diagnostics.
type Source interface {
	Read(ctx context.Context, p []byte) (int, error)
}

// CryptoSource reads from crypto/rand, the operating system's
// cryptographically secure generator (getrandom or /dev/urandom on Linux,
// the platform API elsewhere).
//
// It is the primary source of NewDefault and on its own is already suitable
// for an unpredictable starting rank. It is safe for concurrent use and
// carries no state.
type CryptoSource struct{}

// Read fills p from crypto/rand.
func (CryptoSource) Read(ctx context.Context, p []byte) (int, error) {
	n, err := crand.Read(p)
	if err != nil {
		return n, fmt.Errorf("crypto/rand read failed: %w", err)
	}
	return n, nil
}

// ChaCha20Source is a ChaCha20 keystream keyed from crypto/rand.
//
// The stream cipher is run over a zeroed buffer, so the output is the raw
// keystream. With a random 256-bit key and 96-bit nonce it is
// indistinguishable from random for far more output than any walk needs.
// It stays independent of the kernel generator after keying, which is why
// NewDefault mixes it in. A mutex serializes access to the stream.
type ChaCha20Source struct {
	lock   sync.Mutex
	stream cipher.Stream
}

// NewChaCha20Source creates a ChaCha20 keystream with a random key and nonce.
func NewChaCha20Source() (*ChaCha20Source, error) {
	key := make([]byte, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)
	if _, err := crand.Read(key); err != nil {
		return nil, fmt.Errorf("generate ChaCha20 key: %w", err)
	}
	if _, err := crand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate ChaCha20 nonce: %w", err)
	}
	return newChaCha20Source(key, nonce)
}

func newChaCha20Source(key, nonce []byte) (*ChaCha20Source, error) {
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("create ChaCha20 stream: %w", err)
	}
	return &ChaCha20Source{stream: stream}, nil
}

// Read fills p with the next len(p) bytes of keystream.
func (c *ChaCha20Source) Read(ctx context.Context, p []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	clear(p)
	c.stream.XORKeyStream(p, p)
	return len(p), nil
}

// MT19937Source is a 64-bit Mersenne Twister generator.
//
// It is not cryptographically secure: its state can be recovered from its
// output. It is useful for two things:
//   - as a third, structurally different input to the XOR mix of NewDefault
//   - seeded explicitly, as a reproducible source for tests and for repeating
//     a random start
type MT19937Source struct {
	lock sync.Mutex
	rng  *mrand.Rand
}

// NewMT19937Source creates a Mersenne Twister seeded with seed. The same seed
// yields the same sequence.
func NewMT19937Source(seed int64) *MT19937Source {
	mt := mt19937.New()
	mt.Seed(seed)
	return &MT19937Source{rng: mrand.New(mt)}
}

// Read fills p eight bytes at a time from the generator, little-endian.
func (m *MT19937Source) Read(ctx context.Context, p []byte) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	var word [8]byte
	for i := 0; i < len(p); i += len(word) {
		binary.LittleEndian.PutUint64(word[:], m.rng.Uint64())
		copy(p[i:], word[:])
	}
	return len(p), nil
}

// MultiSource XORs the output of all of its sources.
//
// The XOR of independent streams is at least as unpredictable as the
// strongest of them, so a weakness in one source (a broken platform
// generator, a poorly seeded twister) does not weaken the mix. Any source
// error fails the whole read. With no sources configured Read fails rather
// than returning zeros.
type MultiSource struct {
	Sources []Source
}

// Read fills p with the XOR of one read from every source.
func (m *MultiSource) Read(ctx context.Context, p []byte) (int, error) {
	if len(m.Sources) == 0 {
		return 0, errors.New("no random sources configured")
	}
	log := trace.FromContext(ctx).WithPrefix("RNG")

	clear(p)
	tmp := make([]byte, len(p))
	for i, s := range m.Sources {
		for off := 0; off < len(tmp); {
			n, err := s.Read(ctx, tmp[off:])
			if err != nil {
				return 0, fmt.Errorf("random source #%d failed: %w", i+1, err)
			}
			off += n
		}
		for j := range p {
			p[j] ^= tmp[j]
		}
	}
	log.Tracef("mixed %d bytes from %d sources", len(p), len(m.Sources))
	return len(p), nil
}

// NewDefault mixes crypto/rand, ChaCha20 and a Mersenne Twister seeded from
// crypto/rand.
func NewDefault() (*MultiSource, error) {
	cc, err := NewChaCha20Source()
	if err != nil {
		return nil, err
	}
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("generate MT19937 seed: %w", err)
	}
	return &MultiSource{
		Sources: []Source{
			CryptoSource{},
			cc,
			NewMT19937Source(int64(binary.LittleEndian.Uint64(seed[:]))),
		},
	}, nil
}

// Uint64n returns a uniform value in [0, bound).
//
// Words below 2^64 mod bound are rejected and redrawn, so every residue is
// equally likely. Fewer than half of all words are ever rejected.
func Uint64n(ctx context.Context, src Source, bound uint64) (uint64, error) {
	if bound == 0 {
		return 0, errors.New("rng: empty range")
	}
	// values below threshold would bias the modulo
	threshold := (math.MaxUint64 - bound + 1) % bound
	var b [8]byte
	for {
		if _, err := src.Read(ctx, b[:]); err != nil {
			return 0, err
		}
		if v := binary.LittleEndian.Uint64(b[:]); v >= threshold {
			return v % bound, nil
		}
	}
}

// Intn returns a uniform value in [0, bound) of any size, using
// crypto/rand.Int over src.
func Intn(ctx context.Context, src Source, bound *big.Int) (*big.Int, error) {
	if bound.Sign() <= 0 {
		return nil, errors.New("rng: empty range")
	}
	return crand.Int(reader{ctx: ctx, src: src}, bound)
}

// reader adapts a Source to io.Reader.
type reader struct {
	ctx context.Context
	src Source
}

func (r reader) Read(p []byte) (int, error) {
	return r.src.Read(r.ctx, p)
}
