package datapath

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nasa-jpl/mxfe/mathx"
)

// FTWBits is the width of the NCO frequency tuning word
const FTWBits = 48

var (
	// ErrNCORange is generated when a shift exceeds the Nyquist band of its stage
	ErrNCORange = errors.New("nco frequency outside of +/- fs/2")

	ftwModulus = new(big.Int).Lsh(big.NewInt(1), FTWBits)
	ftwMask    = uint64(1)<<FTWBits - 1
)

// NCOWord is the phase increment representation of a frequency shift.
// FTW is a 48-bit two's complement integer; when ModA is non-zero the exact
// shift is (FTW + ModA/ModB) / 2^48 * fs.
type NCOWord struct {
	Hz   int64
	FTW  uint64
	ModA uint64
	ModB uint64
}

// Exact returns true when the tuning word needs no modulus correction
func (w NCOWord) Exact() bool {
	return w.ModA == 0
}

// Tune converts a frequency shift in Hz into the phase increment of an NCO
// clocked at fs Hz
func Tune(hz int64, fs uint64) (NCOWord, error) {
	if fs == 0 {
		return NCOWord{}, fmt.Errorf("%w: stage clock is zero", ErrNCORange)
	}
	if uint64(mathx.Abs64(hz)) > fs/2 {
		return NCOWord{}, fmt.Errorf("%w: %d Hz at fs=%d Hz", ErrNCORange, hz, fs)
	}
	num := new(big.Int).Mul(big.NewInt(mathx.Abs64(hz)), ftwModulus)
	q, r := new(big.Int).QuoRem(num, new(big.Int).SetUint64(fs), new(big.Int))
	ftw := q.Uint64()
	rem := r.Uint64()
	w := NCOWord{Hz: hz}
	if hz < 0 {
		if rem != 0 {
			ftw++
			rem = fs - rem
		}
		ftw = (^ftw + 1) & ftwMask
	}
	w.FTW = ftw & ftwMask
	if rem != 0 {
		g := mathx.GCD(rem, fs)
		w.ModA = rem / g
		w.ModB = fs / g
	}
	return w, nil
}
