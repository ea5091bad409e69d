// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dhgroups

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/dhgroups/internal/common"
)

// GroupID is the RFC 3526 group number of a MODP group.
type GroupID int

const (
	MODP1536 GroupID = 5
	MODP2048 GroupID = 14
	MODP3072 GroupID = 15
	MODP4096 GroupID = 16
	MODP6144 GroupID = 17
	MODP8192 GroupID = 18
)

func (id GroupID) String() string {
	return fmt.Sprintf("MODP group %d", int(id))
}

// Parameters holds the public parameters of a MODP group: prime modulus p,
// generator g and the bit length of p. The modulus of every built-in group is
// a safe prime p = 2q+1; this is taken from RFC 3526 and not tested here.
//
// Parameters are immutable and safe for concurrent use. The accessors return
// copies.
type Parameters struct {
	id        GroupID
	modulus   *big.Int
	generator *big.Int
	order     *big.Int // (p-1)/2
	bitLength int

	mod *common.FastMod
}

func newParameters(id GroupID, modulus, generator *big.Int) *Parameters {
	return &Parameters{
		id:        id,
		modulus:   modulus,
		generator: generator,
		order:     new(big.Int).Rsh(modulus, 1),
		bitLength: modulus.BitLen(),
		mod:       common.NewFastMod(modulus),
	}
}

func (p *Parameters) ID() GroupID         { return p.id }
func (p *Parameters) BitLength() int      { return p.bitLength }
func (p *Parameters) Modulus() *big.Int   { return new(big.Int).Set(p.modulus) }
func (p *Parameters) Generator() *big.Int { return new(big.Int).Set(p.generator) }

// Order returns q = (p-1)/2, the order of the subgroup of quadratic residues.
func (p *Parameters) Order() *big.Int { return new(big.Int).Set(p.order) }

func (p *Parameters) String() string {
	return fmt.Sprintf("%v (%d bits)", p.id, p.bitLength)
}

// reduce returns v mod p as a new integer.
func (p *Parameters) reduce(v *big.Int) *big.Int {
	return p.mod.Mod(new(big.Int), v)
}

func (p *Parameters) mul(x, y *big.Int) *big.Int {
	return p.mod.MulMod(new(big.Int), x, y)
}

// exp returns x^y mod p. big.Int.Exp is a windowed square-and-multiply that
// reduces after every step.
func (p *Parameters) exp(x, y *big.Int) *big.Int {
	if y.Sign() < 0 {
		panic(fmt.Sprintf("negative exponent %v in %v", y, p))
	}
	return new(big.Int).Exp(x, y, p.modulus)
}

// defaultGroups holds the built-in groups keyed by RFC 3526 group number.
var defaultGroups = loadGroups()

func loadGroups() map[GroupID]*Parameters {
	groups := make(map[GroupID]*Parameters, len(rfc3526))
	for _, g := range rfc3526 {
		p, ok := new(big.Int).SetString(g.prime, 16)
		if !ok || p.BitLen() != g.bits {
			panic(fmt.Sprintf("malformed prime for %v", g.id))
		}
		groups[g.id] = newParameters(g.id, p, big.NewInt(g.generator))
	}
	return groups
}

// Lookup returns the parameters of the given group. Unknown group numbers
// yield ErrInvalidGroup.
func Lookup(id GroupID) (*Parameters, error) {
	p, ok := defaultGroups[id]
	if !ok {
		return nil, errors.WrapPrefix(ErrInvalidGroup, id.String(), 0)
	}
	return p, nil
}

// MustLookup is Lookup for group numbers known to be valid; it panics otherwise.
func MustLookup(id GroupID) *Parameters {
	p, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return p
}

func getAvailableGroups(groups map[GroupID]*Parameters) []GroupID {
	ids := make([]GroupID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SupportedGroups lists the group numbers accepted by Lookup, in ascending order.
var SupportedGroups = getAvailableGroups(defaultGroups)

// Group binds an element type to one set of parameters at compile time, so
// that elements of different groups have different types. The MODPGroupN
// types bind to the built-in groups.
type Group interface {
	Parameters() *Parameters
}

type (
	MODPGroup5  struct{}
	MODPGroup14 struct{}
	MODPGroup15 struct{}
	MODPGroup16 struct{}
	MODPGroup17 struct{}
	MODPGroup18 struct{}
)

func (MODPGroup5) Parameters() *Parameters  { return defaultGroups[MODP1536] }
func (MODPGroup14) Parameters() *Parameters { return defaultGroups[MODP2048] }
func (MODPGroup15) Parameters() *Parameters { return defaultGroups[MODP3072] }
func (MODPGroup16) Parameters() *Parameters { return defaultGroups[MODP4096] }
func (MODPGroup17) Parameters() *Parameters { return defaultGroups[MODP6144] }
func (MODPGroup18) Parameters() *Parameters { return defaultGroups[MODP8192] }

func paramsOf[G Group]() *Parameters {
	var g G
	return g.Parameters()
}
