package cairocodec

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
)

var mask128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// CairoUint256 represents a 256-bit unsigned integer
type CairoUint256 struct {
	Low  *big.Int // Lower 128 bits
	High *big.Int // Upper 128 bits
}

func NewCairoUint256(low, high *big.Int) *CairoUint256 {
	return &CairoUint256{Low: low, High: high}
}

func NewCairoUint256FromUint64(value uint64) *CairoUint256 {
	return &CairoUint256{
		Low:  new(big.Int).SetUint64(value),
		High: new(big.Int),
	}
}

// NewCairoUint256FromUint256 splits a holiman/uint256 value into its halves.
func NewCairoUint256FromUint256(value *uint256.Int) *CairoUint256 {
	if value == nil {
		return NewCairoUint256FromUint64(0)
	}
	v := value.ToBig()
	return &CairoUint256{
		Low:  new(big.Int).And(v, mask128),
		High: new(big.Int).Rsh(v, 128),
	}
}

// SplitUint256 splits value into low = value & (2^128 - 1) and high = value >> 128.
// Negative values and values of 2^256 or more fail with ErrOutOfRange.
func SplitUint256(value *big.Int) (*CairoUint256, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: nil value", ErrMalformedInput)
	}
	if value.Sign() < 0 || value.BitLen() > 256 {
		return nil, fmt.Errorf("%w: %s does not fit in u256", ErrOutOfRange, value)
	}
	return &CairoUint256{
		Low:  new(big.Int).And(value, mask128),
		High: new(big.Int).Rsh(value, 128),
	}, nil
}

// CombineUint256 returns high * 2^128 + low for a u256 handed back in any of
// the accepted shapes: a [low, high] sequence, a record with low and high
// fields, or a scalar holding the whole value. Anything else yields 0.
func CombineUint256(raw RawValue) *big.Int {
	zero := new(big.Int)
	if raw.err != nil {
		return zero
	}

	var low, high any
	switch raw.kind {
	case RawSequence:
		if len(raw.seq) < 2 {
			return zero
		}
		low, high = raw.seq[0], raw.seq[1]
	case RawRecord:
		var okLow, okHigh bool
		low, okLow = raw.field(FieldLow)
		high, okHigh = raw.field(FieldHigh)
		if !okLow || !okHigh {
			return zero
		}
	case RawScalar:
		low, high = raw.scalar, nil
	default:
		return zero
	}

	l, err := unsignedOrZero(low)
	if err != nil {
		return zero
	}
	h, err := unsignedOrZero(high)
	if err != nil {
		return zero
	}
	return h.Lsh(h, 128).Add(h, l)
}

func unsignedOrZero(v any) (*big.Int, error) {
	if isNil(v) {
		return new(big.Int), nil
	}
	return parseUnsigned(v)
}

// ToBigInt converts CairoUint256 to a single *big.Int
func (u *CairoUint256) ToBigInt() *big.Int {
	result := new(big.Int)
	if u.High != nil {
		result.Set(u.High)
	}
	result.Lsh(result, 128)
	if u.Low != nil {
		result.Add(result, u.Low)
	}
	return result
}

// ToUint256 converts the pair to a holiman/uint256 value. Halves wider than
// 128 bits overflow and are reported by ErrOutOfRange.
func (u *CairoUint256) ToUint256() (*uint256.Int, error) {
	value, overflow := uint256.FromBig(u.ToBigInt())
	if overflow {
		return nil, fmt.Errorf("%w: u256 halves exceed 256 bits", ErrOutOfRange)
	}
	return value, nil
}

func (u *CairoUint256) MarshalCairo() ([]*felt.Felt, error) {
	for _, half := range []*big.Int{u.Low, u.High} {
		if half != nil && (half.Sign() < 0 || half.BitLen() > 128) {
			return nil, fmt.Errorf("%w: u256 half %s exceeds 128 bits", ErrOutOfRange, half)
		}
	}
	return []*felt.Felt{FeltFromBigInt(u.Low), FeltFromBigInt(u.High)}, nil
}

func (u *CairoUint256) UnmarshalCairo(data []*felt.Felt) error {
	if len(data) < 2 {
		return fmt.Errorf("insufficient data for uint256: need 2 felts, got %d", len(data))
	}
	u.Low = BigIntFromFelt(data[0])
	u.High = BigIntFromFelt(data[1])
	return nil
}

func (u *CairoUint256) CairoSize() int {
	return 2
}
