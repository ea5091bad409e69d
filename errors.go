package dhgroups

import "github.com/go-errors/errors"

var (
	ErrInvalidGroup       = errors.New("unknown MODP group")
	ErrIncompatibleGroups = errors.New("elements belong to different groups")
	ErrGeneratorNotFound  = errors.New("no suitable generator found")
	ErrInvalidBitLength   = errors.New("generator bit length must be positive")
	ErrNotSafePrime       = errors.New("modulus is not a safe prime")
)
