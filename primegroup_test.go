package dhgroups

import (
	"math/big"
	"testing"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/dhgroups/safeprime"
)

// A convenient safe prime: 2^787 - 7341.
var convenientSafePrime = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 787), big.NewInt(7341))

// fixedSource returns the same candidate every time and counts the draws.
type fixedSource struct {
	value *big.Int
	calls int
}

func (s *fixedSource) RandRange(lo, hi *big.Int) (*big.Int, error) {
	s.calls++
	return new(big.Int).Set(s.value), nil
}

var errBrokenSource = errors.New("entropy exhausted")

type brokenSource struct{}

func (brokenSource) RandRange(lo, hi *big.Int) (*big.Int, error) {
	return nil, errBrokenSource
}

func TestPrimeGroup(t *testing.T) {
	pg, err := NewPrimeGroupOf[MODPGroup5](128, NewReaderSource(nil))
	require.NoError(t, err)
	require.True(t, pg.Verify())

	params := paramsOf[MODPGroup5]()
	require.Zero(t, pg.P.Cmp(params.Modulus()))
	require.Zero(t, pg.Q.Cmp(params.Order()))
	require.GreaterOrEqual(t, pg.G.BitLen(), 128)

	g := NewElement[MODPGroup5](pg.G)
	require.True(t, g.Exp(pg.Q).IsOne(), "g^q != 1")
	require.True(t, g.Exp(pg.Q).Equal(NewElement[MODPGroup5](big.NewInt(1))))
	require.False(t, g.IsOne())
}

func TestPrimeGroupOwnsFields(t *testing.T) {
	params := MustLookup(MODP2048)
	pg, err := NewPrimeGroup(params, 256, testSource(t, 20))
	require.NoError(t, err)
	pg.P.SetInt64(23)
	require.Equal(t, 2048, params.Modulus().BitLen())
}

func TestPrimeGroupAllCatalogueGroups(t *testing.T) {
	for _, id := range SupportedGroups[:3] {
		pg, err := NewPrimeGroup(MustLookup(id), 512, testSource(t, byte(id)))
		require.NoError(t, err, "%v", id)
		require.True(t, pg.Verify(), "%v", id)
	}
}

func TestPrimeGroupSeeded(t *testing.T) {
	pg1, err := NewPrimeGroupOf[MODPGroup14](256, testSource(t, 30))
	require.NoError(t, err)
	pg2, err := NewPrimeGroupOf[MODPGroup14](256, testSource(t, 30))
	require.NoError(t, err)
	pg3, err := NewPrimeGroupOf[MODPGroup14](256, testSource(t, 31))
	require.NoError(t, err)

	require.Zero(t, pg1.G.Cmp(pg2.G), "same seed, different generator")
	require.NotZero(t, pg1.G.Cmp(pg3.G))
}

func TestPrimeGroupTooManyBits(t *testing.T) {
	src := &fixedSource{value: big.NewInt(12345)}
	_, err := NewPrimeGroupOf[MODPGroup5](1537, src)
	require.True(t, errors.Is(err, ErrGeneratorNotFound), "%v", err)
	require.Zero(t, src.calls, "search should fail before drawing candidates")
}

func TestPrimeGroupInvalidBits(t *testing.T) {
	for _, bits := range []int{0, -1} {
		_, err := NewPrimeGroupOf[MODPGroup5](bits, NewReaderSource(nil))
		require.True(t, errors.Is(err, ErrInvalidBitLength), "%v", err)
	}
}

func TestFindGeneratorExhausted(t *testing.T) {
	hook := test.NewLocal(Logger)
	defer hook.Reset()

	params := paramsOf[MODPGroup5]()
	// 2^2 = 4 never has 128 bits
	src := &fixedSource{value: big.NewInt(2)}
	g, err := FindGenerator(params.Modulus(), params.Order(), 128, 10, src)
	require.Nil(t, g)
	require.True(t, errors.Is(err, ErrGeneratorNotFound), "%v", err)
	require.Equal(t, 10, src.calls)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 10, entry.Data["attempts"])
}

func TestFindGeneratorBitBoundary(t *testing.T) {
	params := paramsOf[MODPGroup5]()
	p, q := params.Modulus(), params.Order()

	// 2^64 squared is 2^128, which has 129 bits: accepted for 129, rejected for 130.
	c := new(big.Int).Lsh(bigONE, 64)
	g, err := FindGenerator(p, q, 129, 1, &fixedSource{value: c})
	require.NoError(t, err)
	require.Equal(t, 129, g.BitLen())

	_, err = FindGenerator(p, q, 130, 1, &fixedSource{value: c})
	require.True(t, errors.Is(err, ErrGeneratorNotFound))
}

func TestFindGeneratorSourceError(t *testing.T) {
	params := paramsOf[MODPGroup5]()
	_, err := FindGenerator(params.Modulus(), params.Order(), 128, 10, brokenSource{})
	require.True(t, errors.Is(err, errBrokenSource))
}

func TestPrimeGroupFromModulus(t *testing.T) {
	pg, err := NewPrimeGroupFromModulus(convenientSafePrime, 700, testSource(t, 40))
	require.NoError(t, err)
	require.True(t, pg.Verify())
	require.GreaterOrEqual(t, pg.G.BitLen(), 700)

	// Small safe prime, asking for the full bit length.
	pg, err = NewPrimeGroupFromModulus(big.NewInt(26903), 15, testSource(t, 41))
	require.NoError(t, err)
	require.True(t, pg.Verify())
	require.Equal(t, int64(13451), pg.Q.Int64())
	require.Equal(t, 15, pg.G.BitLen())
}

func TestPrimeGroupFromGeneratedModulus(t *testing.T) {
	p, err := safeprime.Generate(128, nil, nil)
	require.NoError(t, err)
	pg, err := NewPrimeGroupFromModulus(p, 64, NewReaderSource(nil))
	require.NoError(t, err)
	require.True(t, pg.Verify())
}

func TestPrimeGroupFromModulusNotSafe(t *testing.T) {
	for _, p := range []int64{10009, 20015, 2, 0} {
		_, err := NewPrimeGroupFromModulus(big.NewInt(p), 4, NewReaderSource(nil))
		require.True(t, errors.Is(err, ErrNotSafePrime), "%d: %v", p, err)
	}
}

func TestPrimeGroupOperations(t *testing.T) {
	pg, err := NewPrimeGroupFromModulus(convenientSafePrime, 512, testSource(t, 50))
	require.NoError(t, err)

	// Diffie-Hellman within the subgroup
	src := testSource(t, 51)
	a, b := randomInt(t, src, 256), randomInt(t, src, 256)
	A, B := pg.Exp(a), pg.Exp(b)
	require.True(t, pg.Contains(A))
	require.True(t, pg.Contains(B))
	require.Zero(t, new(big.Int).Exp(B, a, pg.P).Cmp(new(big.Int).Exp(A, b, pg.P)))

	require.True(t, pg.Contains(pg.Mul(A, B)))
	require.Zero(t, pg.Mul(A, B).Cmp(pg.Exp(new(big.Int).Add(a, b))))
	require.Zero(t, pg.Exp(pg.Q).Cmp(bigONE))

	require.False(t, pg.Contains(big.NewInt(0)))
	require.False(t, pg.Contains(pg.P))
	require.False(t, pg.Contains(new(big.Int).Sub(pg.P, bigONE)), "p-1 has order 2")

	manual := &PrimeGroup{P: pg.P, Q: pg.Q, G: pg.G}
	require.True(t, manual.Verify())
	require.Zero(t, manual.Mul(A, B).Cmp(pg.Mul(A, B)))
}

func TestPrimeGroupVerify(t *testing.T) {
	require.False(t, (&PrimeGroup{}).Verify())
	require.False(t, (&PrimeGroup{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(1)}).Verify(), "trivial generator")
	require.False(t, (&PrimeGroup{P: big.NewInt(23), Q: big.NewInt(10), G: big.NewInt(4)}).Verify(), "p != 2q+1")
	require.False(t, (&PrimeGroup{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(5)}).Verify(), "5 is not a square mod 23")
	require.True(t, (&PrimeGroup{P: big.NewInt(23), Q: big.NewInt(11), G: big.NewInt(4)}).Verify())
}
