package safeprime

import (
	"math/big"
	"testing"

	"github.com/go-errors/errors"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	x, err := Generate(256, nil, nil)

	require.NoError(t, err)
	require.NotNil(t, x)
	require.Equal(t, 256, x.BitLen())
	require.True(t, x.ProbablyPrime(100), "Generated number was not prime")

	y := new(big.Int).Sub(x, big.NewInt(1))
	y.Div(y, big.NewInt(2))

	require.True(t, y.ProbablyPrime(100), "Generated number was not a safe prime")
}

func TestGenerateSmall(t *testing.T) {
	x, err := Generate(3, nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(7), x.Int64())

	_, err = Generate(2, nil, nil)
	require.Error(t, err)
}

func TestGenerateStopped(t *testing.T) {
	stop := make(chan struct{})
	close(stop)
	_, err := Generate(4096, nil, stop)
	require.True(t, errors.Is(err, ErrStopped))
}

func TestProbablySafePrime(t *testing.T) {
	require.True(t, ProbablySafePrime(big.NewInt(26903), 40))
	require.True(t, ProbablySafePrime(big.NewInt(7), 40))
	require.False(t, ProbablySafePrime(big.NewInt(10009), 40), "prime, but not safe")
	require.False(t, ProbablySafePrime(big.NewInt(20015), 40), "not prime")
	require.False(t, ProbablySafePrime(big.NewInt(2), 40))
}
