package dhgroups

import (
	"fmt"
	"math/big"

	"github.com/go-errors/errors"
)

// TaggedElement is an element whose group is chosen at runtime, e.g. from a
// negotiated group number. Operations on elements of different groups fail
// with ErrIncompatibleGroups rather than mixing moduli.
type TaggedElement struct {
	params *Parameters
	value  *big.Int
}

// NewElement returns v mod p as an element of the group of p.
func (p *Parameters) NewElement(v *big.Int) *TaggedElement {
	return &TaggedElement{params: p, value: p.reduce(v)}
}

// One returns the identity of the group of p.
func (p *Parameters) One() *TaggedElement {
	return &TaggedElement{params: p, value: big.NewInt(1)}
}

// GeneratorElement returns the standard generator of the group of p.
func (p *Parameters) GeneratorElement() *TaggedElement {
	return &TaggedElement{params: p, value: p.Generator()}
}

func (a *TaggedElement) Parameters() *Parameters { return a.params }
func (a *TaggedElement) Value() *big.Int         { return new(big.Int).Set(a.value) }
func (a *TaggedElement) String() string          { return a.value.String() }

func (a *TaggedElement) compatible(b *TaggedElement) error {
	if a.params != b.params {
		return errors.WrapPrefix(ErrIncompatibleGroups,
			fmt.Sprintf("%v and %v", a.params.id, b.params.id), 1)
	}
	return nil
}

// Equal reports whether a and b have the same value. Elements of different
// groups cannot be compared.
func (a *TaggedElement) Equal(b *TaggedElement) (bool, error) {
	if err := a.compatible(b); err != nil {
		return false, err
	}
	return a.value.Cmp(b.value) == 0, nil
}

// Mul returns a*b mod p.
func (a *TaggedElement) Mul(b *TaggedElement) (*TaggedElement, error) {
	if err := a.compatible(b); err != nil {
		return nil, err
	}
	return &TaggedElement{params: a.params, value: a.params.mul(a.value, b.value)}, nil
}

// Exp returns a^x mod p; see Element.Exp.
func (a *TaggedElement) Exp(x *big.Int) *TaggedElement {
	return &TaggedElement{params: a.params, value: a.params.exp(a.value, x)}
}
