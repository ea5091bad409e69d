package common

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/go-errors/errors"
)

// CPRNG is a simple thread-safe cryptographically secure pseudo-random number generator.
// Implemented with AES in counter mode with the seed as key and an
// atomic uint64 as counter. Two CPRNGs with the same seed produce the same stream.
type CPRNG struct {
	block   cipher.Block
	counter uint64
}

func NewCPRNG(seed *[32]byte) (*CPRNG, error) {
	c, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	return &CPRNG{block: c}, nil
}

func (c *CPRNG) Read(buf []byte) (n int, err error) {
	var pt, ct [16]byte
	n = len(buf)
	if n == 0 {
		return
	}

	// Reserve the blocks this read needs; iv is the first of them.
	nBlocks := uint64(((len(buf) - 1) / 16) + 1)
	iv := atomic.AddUint64(&c.counter, nBlocks) - nBlocks
	for len(buf) > 0 {
		binary.LittleEndian.PutUint64(pt[:], iv)
		iv++

		if len(buf) >= 16 {
			c.block.Encrypt(buf, pt[:])
			buf = buf[16:]
			continue
		}

		// Tail shorter than a block.
		c.block.Encrypt(ct[:], pt[:])
		copy(buf, ct[:len(buf)])
		break
	}
	return
}

var ErrEmptyRange = errors.New("random range is empty")

// RandRange returns a uniformly random integer in [lo, hi) read from rnd.
func RandRange(rnd io.Reader, lo, hi *big.Int) (*big.Int, error) {
	width := new(big.Int).Sub(hi, lo)
	if width.Sign() <= 0 {
		return nil, errors.WrapPrefix(ErrEmptyRange, "["+lo.String()+", "+hi.String()+")", 0)
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	r, err := rand.Int(rnd, width)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return r.Add(r, lo), nil
}
