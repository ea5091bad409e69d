package dhgroups

import (
	"math/big"

	"github.com/bwesterb/go-exptable"
)

// tableWindow is the window size, in bits, of fixed-base exponentiation tables.
const tableWindow = 7

// FixedBase speeds up repeated exponentiation of a single base, such as the
// generator when computing many public values. Building the table costs
// memory proportional to the group size (a few megabytes for 2048 bits),
// so it only pays off for bases that are used often.
type FixedBase[G Group] struct {
	base  Element[G]
	baseQ Element[G] // base^q, which is 1 or p-1
	order *big.Int   // p-1
	q     *big.Int
	table exptable.Table
}

// NewFixedBase precomputes the exponentiation table of base.
func NewFixedBase[G Group](base Element[G]) *FixedBase[G] {
	params := paramsOf[G]()
	fb := &FixedBase[G]{
		base:  base,
		order: new(big.Int).Sub(params.modulus, bigONE),
		q:     params.Order(),
	}
	fb.baseQ = base.Exp(fb.q)
	fb.table.Compute(base.bigint(), params.modulus, tableWindow)
	return fb
}

func (fb *FixedBase[G]) Base() Element[G] {
	return fb.base
}

// Exp returns base^x mod p, equal to fb.Base().Exp(x).
func (fb *FixedBase[G]) Exp(x *big.Int) Element[G] {
	if x.Sign() < 0 {
		return fb.base.Exp(x) // panics
	}
	if fb.base.bigint().Sign() == 0 {
		return fb.base.Exp(x)
	}

	// The order of base divides p-1 = 2q. Keep the table exponent below q and
	// account for the remaining q with the precomputed base^q.
	e := new(big.Int).Mod(x, fb.order)
	wrap := e.Cmp(fb.q) >= 0
	if wrap {
		e.Sub(e, fb.q)
	}

	var r big.Int
	if e.Sign() == 0 {
		r.SetInt64(1)
	} else {
		fb.table.Exp(&r, e)
	}
	res := Element[G]{value: &r}
	if wrap {
		res = res.Mul(fb.baseQ)
	}
	return res
}
