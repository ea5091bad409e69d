package dhgroups

import (
	"fmt"
	"math/big"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/dhgroups/internal/common"
	"github.com/privacybydesign/dhgroups/safeprime"
)

// DefaultMaxAttempts bounds the number of candidates the generator search
// draws before giving up. For a bit length well below that of p nearly every
// candidate is accepted.
const DefaultMaxAttempts = 256

// safePrimeRounds is the number of Miller-Rabin rounds used when checking a
// caller-supplied modulus.
const safePrimeRounds = 40

// PrimeGroup is the subgroup of prime order Q of the integers modulo the
// safe prime P = 2Q+1, with generator G. G^Q mod P = 1 and G != 1.
// The fields are owned by the PrimeGroup and must not be modified.
type PrimeGroup struct {
	P *big.Int
	Q *big.Int
	G *big.Int

	pMod *common.FastMod
}

// NewPrimeGroup derives the order-q subgroup of the group described by params
// and searches it for a generator of at least bits bits, drawing candidates
// from rnd. The modulus of params must be a safe prime; this is not checked.
// If no generator is found within DefaultMaxAttempts candidates, or bits
// exceeds the bit length of the modulus, the error is ErrGeneratorNotFound.
func NewPrimeGroup(params *Parameters, bits int, rnd RandomSource) (*PrimeGroup, error) {
	return newPrimeGroup(params.Modulus(), bits, DefaultMaxAttempts, rnd)
}

// NewPrimeGroupOf is NewPrimeGroup for the group G.
func NewPrimeGroupOf[G Group](bits int, rnd RandomSource) (*PrimeGroup, error) {
	return NewPrimeGroup(paramsOf[G](), bits, rnd)
}

// NewPrimeGroupFromModulus is NewPrimeGroup for a caller-supplied modulus p.
// Unlike the built-in groups, p is tested and ErrNotSafePrime is returned if
// it is not (probably) a safe prime.
func NewPrimeGroupFromModulus(p *big.Int, bits int, rnd RandomSource) (*PrimeGroup, error) {
	if !safeprime.ProbablySafePrime(p, safePrimeRounds) {
		return nil, errors.WrapPrefix(ErrNotSafePrime, p.Text(16), 0)
	}
	return newPrimeGroup(new(big.Int).Set(p), bits, DefaultMaxAttempts, rnd)
}

func newPrimeGroup(p *big.Int, bits, maxAttempts int, rnd RandomSource) (*PrimeGroup, error) {
	q := new(big.Int).Rsh(p, 1) // (p-1)/2, as p is odd
	g, err := FindGenerator(p, q, bits, maxAttempts, rnd)
	if err != nil {
		return nil, err
	}
	return &PrimeGroup{P: p, Q: q, G: g, pMod: common.NewFastMod(p)}, nil
}

// FindGenerator searches the order-q subgroup modulo p = 2q+1 for an element
// whose bit length is at least bits. Each attempt squares a uniform candidate
// from [2, p-2], which lands in the subgroup, and accepts it unless it is 1 or
// too short. After maxAttempts rejections it fails with ErrGeneratorNotFound.
// A bit length beyond that of p fails immediately, as no element can meet it.
func FindGenerator(p, q *big.Int, bits, maxAttempts int, rnd RandomSource) (*big.Int, error) {
	if bits < 1 {
		return nil, errors.WrapPrefix(ErrInvalidBitLength, fmt.Sprintf("requested %d bits", bits), 0)
	}
	if bits > p.BitLen() {
		return nil, errors.WrapPrefix(ErrGeneratorNotFound,
			fmt.Sprintf("requested %d bits from a %d-bit modulus", bits, p.BitLen()), 0)
	}

	lo := big.NewInt(2)
	hi := new(big.Int).Sub(p, bigONE) // exclusive, so candidates end at p-2
	h := new(big.Int)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c, err := rnd.RandRange(lo, hi)
		if err != nil {
			return nil, err
		}
		h.Mul(c, c).Mod(h, p)
		if h.Cmp(bigONE) == 0 || h.BitLen() < bits {
			continue
		}
		Logger.WithFields(logrus.Fields{"bits": bits, "attempts": attempt}).Debug("found subgroup generator")
		return h, nil
	}

	Logger.WithFields(logrus.Fields{"bits": bits, "attempts": maxAttempts}).Warn("generator search exhausted")
	return nil, errors.WrapPrefix(ErrGeneratorNotFound, fmt.Sprintf("after %d attempts", maxAttempts), 0)
}

// Contains reports whether h lies in the order-Q subgroup.
func (g *PrimeGroup) Contains(h *big.Int) bool {
	if h.Sign() <= 0 || h.Cmp(g.P) >= 0 {
		return false
	}
	return new(big.Int).Exp(h, g.Q, g.P).Cmp(bigONE) == 0
}

// Exp returns G^x mod P. The exponent is reduced modulo Q first.
func (g *PrimeGroup) Exp(x *big.Int) *big.Int {
	e := new(big.Int).Mod(x, g.Q)
	return new(big.Int).Exp(g.G, e, g.P)
}

// Mul returns x*y mod P.
func (g *PrimeGroup) Mul(x, y *big.Int) *big.Int {
	if g.pMod == nil { // assembled by hand
		r := new(big.Int).Mul(x, y)
		return r.Mod(r, g.P)
	}
	return g.pMod.MulMod(new(big.Int), x, y)
}

// Verify checks the relations between P, Q and G. It does not test P or Q
// for primality.
func (g *PrimeGroup) Verify() bool {
	if g.P == nil || g.Q == nil || g.G == nil {
		return false
	}
	twoQOne := new(big.Int).Lsh(g.Q, 1)
	twoQOne.Add(twoQOne, bigONE)
	if twoQOne.Cmp(g.P) != 0 {
		return false
	}
	return g.G.Cmp(bigONE) != 0 && g.Contains(g.G)
}
