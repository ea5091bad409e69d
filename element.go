// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dhgroups

import (
	"math/big"
)

var bigONE = big.NewInt(1)

// Element is a member of the multiplicative group modulo the prime of G.
// Its value is always reduced: 0 <= value < p. Elements are immutable and
// may be copied and shared freely; every operation returns a new Element.
//
// The group is part of the type, so combining elements of different groups
// is a compile error:
//
//	a := NewElement[MODPGroup14](x)
//	b := NewElement[MODPGroup15](y)
//	a.Mul(b) // does not compile
//
// The zero Element has value 0.
type Element[G Group] struct {
	value *big.Int
}

// NewElement returns v mod p as an element of G. v may be any integer,
// including values larger than p; it is not modified.
func NewElement[G Group](v *big.Int) Element[G] {
	return Element[G]{value: paramsOf[G]().reduce(v)}
}

// One returns the identity of G.
func One[G Group]() Element[G] {
	return Element[G]{value: big.NewInt(1)}
}

// GeneratorElement returns the standard generator of G.
func GeneratorElement[G Group]() Element[G] {
	return Element[G]{value: paramsOf[G]().Generator()}
}

func (a Element[G]) bigint() *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return a.value
}

// Value returns a copy of the reduced value of a.
func (a Element[G]) Value() *big.Int {
	return new(big.Int).Set(a.bigint())
}

// Parameters returns the parameters of the group a belongs to.
func (a Element[G]) Parameters() *Parameters {
	return paramsOf[G]()
}

func (a Element[G]) Equal(b Element[G]) bool {
	return a.bigint().Cmp(b.bigint()) == 0
}

// Mul returns a*b mod p.
func (a Element[G]) Mul(b Element[G]) Element[G] {
	return Element[G]{value: paramsOf[G]().mul(a.bigint(), b.bigint())}
}

// Exp returns a^x mod p. Any base raised to 0, including 0, gives One.
// It panics if x is negative: the group offers no inverses.
func (a Element[G]) Exp(x *big.Int) Element[G] {
	return Element[G]{value: paramsOf[G]().exp(a.bigint(), x)}
}

// IsOne reports whether a is the identity.
func (a Element[G]) IsOne() bool {
	return a.bigint().Cmp(bigONE) == 0
}

func (a Element[G]) String() string {
	return a.bigint().String()
}

// Tagged converts a to an element that carries its group at runtime.
func (a Element[G]) Tagged() *TaggedElement {
	return &TaggedElement{params: paramsOf[G](), value: a.Value()}
}
