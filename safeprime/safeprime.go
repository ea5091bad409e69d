// Package safeprime recognizes and computes safe primes, i.e. primes of the form 2q+1 where q is also prime.
package safeprime

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.StandardLogger()

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

var ErrStopped = errors.New("safe prime generation stopped")

// Generate a safe prime of the given size, using the fact that:
//
//	If q is prime and 2^(2q) = 1 mod (2q+1), then 2q+1 is a safe prime.
//
// We take a random odd q of bitsize-1 bits from rnd; if the above formula holds and q is prime,
// then we return 2q+1. (See https://www.ijipbangalore.org/abstracts_2(1)/p5.pdf.)
//
// A nil rnd means crypto/rand.Reader. To cancel, send a struct{} on stop or close() it;
// Generate then returns ErrStopped. Passing a nil stop means the search cannot be cancelled.
func Generate(bitsize int, rnd io.Reader, stop <-chan struct{}) (*big.Int, error) {
	if bitsize < 3 {
		return nil, errors.Errorf("safe primes have at least 3 bits, requested %d", bitsize)
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	var (
		max        = new(big.Int).Lsh(one, uint(bitsize-1)) // 2^(bitsize-1)
		twoq       = new(big.Int)
		twoqone    = new(big.Int)
		twoexptwoq = new(big.Int)
		q          *big.Int
		err        error
	)

	for i := 0; ; i++ {
		// Every 1000 iterations, starting with the first, check if we have been asked to stop
		if stop != nil && i%1000 == 0 {
			select {
			case <-stop:
				return nil, ErrStopped
			default:
			}
		}

		if q, err = rand.Int(rnd, max); err != nil {
			return nil, errors.Wrap(err, 0)
		}
		// Force q to exactly bitsize-1 bits and odd, so that 2q+1 has bitsize bits.
		q.SetBit(q, bitsize-2, 1)
		q.SetBit(q, 0, 1)

		twoq.Lsh(q, 1)
		twoqone.Add(twoq, one)
		twoexptwoq.Exp(two, twoq, twoqone) // 2^(2q) mod (2q+1)

		if twoexptwoq.Cmp(one) == 0 && q.ProbablyPrime(40) {
			Logger.WithField("candidates", i+1).Debugf("found %d-bit safe prime", bitsize)
			break
		}
	}

	if !ProbablySafePrime(twoqone, 40) {
		return nil, errors.New("safeprime generation returned non-safeprime")
	}
	return twoqone, nil
}

// ProbablySafePrime reports whether x is probably safe prime, by calling big.Int.ProbablyPrime(n)
// on x as well as on (x-1)/2.
//
// If x is safe prime, ProbablySafePrime returns true.
// If x is chosen randomly and not safe prime, ProbablyPrime probably returns false.
func ProbablySafePrime(x *big.Int, n int) bool {
	if x.Cmp(two) <= 0 {
		return false
	}
	if !x.ProbablyPrime(n) {
		return false
	}
	y := new(big.Int).Rsh(x, 1)
	return y.ProbablyPrime(n)
}
