package common

import (
	"math/big"
)

// FastMod reduces modulo a fixed p. When p = 2^b - c for a c below 2^60
// (such as the convenient safe primes), the reduction folds the high bits
// back in with a multiplication by c instead of a full division.
// The zero value is not usable; call Set first.
type FastMod struct {
	enabled bool
	p       big.Int
	c       big.Int
	b       uint
	mask    big.Int // (1 << b) - 1
}

// NewFastMod returns a FastMod for the modulus p.
func NewFastMod(p *big.Int) *FastMod {
	m := new(FastMod)
	m.Set(p)
	return m
}

func (m *FastMod) Set(p *big.Int) {
	var pow, one big.Int
	one.SetUint64(1)
	m.p.Set(p)
	m.b = uint(p.BitLen())
	pow.Lsh(&one, m.b)
	m.c.Sub(&pow, &m.p)
	m.enabled = m.c.BitLen() < 60
	if m.enabled {
		m.mask.Sub(&pow, &one)
	}
}

// Enabled reports whether the folding shortcut applies to this modulus.
func (m *FastMod) Enabled() bool {
	return m.enabled
}

// Mod sets ret to x mod p and returns ret. ret may alias x.
func (m *FastMod) Mod(ret, x *big.Int) *big.Int {
	if !m.enabled || x.Sign() == -1 {
		return ret.Mod(x, &m.p)
	}
	if x.Cmp(&m.p) < 0 {
		return ret.Set(x)
	}

	var high, tmp big.Int
	cur := x
	folded := false
	for {
		high.Rsh(cur, m.b)
		if high.Sign() == 0 {
			break
		}
		folded = true
		// x = high*2^b + low = high*c + low (mod p)
		ret.And(cur, &m.mask)
		tmp.Mul(&high, &m.c)
		ret.Add(ret, &tmp)
		cur = ret
	}

	if !folded {
		// p <= x < 2^b, so a single subtraction suffices
		return ret.Sub(x, &m.p)
	}
	if ret.Cmp(&m.p) >= 0 {
		ret.Sub(ret, &m.p)
	}
	return ret
}

// MulMod sets ret to x*y mod p and returns ret.
func (m *FastMod) MulMod(ret, x, y *big.Int) *big.Int {
	var prod big.Int
	prod.Mul(x, y)
	return m.Mod(ret, &prod)
}
