package dhgroups

import (
	"io"
	"math/big"

	"github.com/privacybydesign/dhgroups/internal/common"
)

// RandomSource supplies uniformly distributed integers in [lo, hi).
// When the resulting group is used for key exchange the source must be
// cryptographically secure.
type RandomSource interface {
	RandRange(lo, hi *big.Int) (*big.Int, error)
}

type readerSource struct {
	r io.Reader
}

// NewReaderSource draws integers from r. A nil r means crypto/rand.Reader.
func NewReaderSource(r io.Reader) RandomSource {
	return readerSource{r: r}
}

func (s readerSource) RandRange(lo, hi *big.Int) (*big.Int, error) {
	return common.RandRange(s.r, lo, hi)
}

// NewSeededSource returns a deterministic source: the same seed always yields
// the same sequence of integers. This makes a generator reproducible from a
// published seed. It is safe for concurrent use.
func NewSeededSource(seed *[32]byte) (RandomSource, error) {
	rng, err := common.NewCPRNG(seed)
	if err != nil {
		return nil, err
	}
	return readerSource{r: rng}, nil
}
