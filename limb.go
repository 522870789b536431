package cairocodec

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
)

// MaxLimbBytes is the number of payload bytes a single felt252 carries.
const MaxLimbBytes = 31

// feltModulus is the Stark field prime, 2^251 + 17*2^192 + 1.
var feltModulus = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	return p.Add(p, big.NewInt(1))
}()

// LimbToBytes returns the big-endian bytes of limb with leading zero bytes
// suppressed, truncated to at most maxLen bytes from the most significant end.
// A zero (or nil) limb carries no bytes.
func LimbToBytes(limb *felt.Felt, maxLen int) []byte {
	if maxLen > MaxLimbBytes {
		maxLen = MaxLimbBytes
	}
	if limb == nil || maxLen <= 0 {
		return []byte{}
	}
	value := limb.BigInt(new(big.Int))
	if value.Sign() == 0 {
		return []byte{}
	}
	b := value.Bytes()
	if len(b) > maxLen {
		b = b[:maxLen]
	}
	return b
}

// BytesToLimb packs up to 31 bytes into a felt, most significant byte first.
func BytesToLimb(data []byte) (*felt.Felt, error) {
	if len(data) > MaxLimbBytes {
		return nil, fmt.Errorf("%w: %d bytes do not fit in a limb", ErrOutOfRange, len(data))
	}
	return packLimb(data), nil
}

func packLimb(data []byte) *felt.Felt {
	return new(felt.Felt).SetBytes(data)
}

// ParseLimb coerces a limb-like value into a felt. Accepted inputs are felts,
// big and 256-bit integers, Go integers of any width, integral floats,
// json.Number values, and decimal or 0x/0o/0b prefixed strings. The empty string is zero.
func ParseLimb(v any) (*felt.Felt, error) {
	n, err := parseUnsigned(v)
	if err != nil {
		return nil, err
	}
	if n.Cmp(feltModulus) >= 0 {
		return nil, fmt.Errorf("%w: %s is not below the field prime", ErrMalformedInput, n.Text(16))
	}
	return FeltFromBigInt(n), nil
}

// limbOrZero is ParseLimb with absent values read as zero.
func limbOrZero(v any) (*felt.Felt, error) {
	if isNil(v) {
		return new(felt.Felt), nil
	}
	return ParseLimb(v)
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *felt.Felt:
		return x == nil
	case *big.Int:
		return x == nil
	case *uint256.Int:
		return x == nil
	}
	return false
}

// parseUnsigned converts any supported literal into a non-negative big.Int.
func parseUnsigned(v any) (*big.Int, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrMalformedInput)
	case *felt.Felt:
		if x == nil {
			return nil, fmt.Errorf("%w: nil felt", ErrMalformedInput)
		}
		return x.BigInt(new(big.Int)), nil
	case felt.Felt:
		return x.BigInt(new(big.Int)), nil
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrMalformedInput)
		}
		if x.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative value %s", ErrMalformedInput, x)
		}
		return new(big.Int).Set(x), nil
	case *uint256.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrMalformedInput)
		}
		return x.ToBig(), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case int:
		return fromInt64(int64(x))
	case int64:
		return fromInt64(x)
	case int32:
		return fromInt64(int64(x))
	case int16:
		return fromInt64(int64(x))
	case int8:
		return fromInt64(int64(x))
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		return parseNumeric(string(x))
	case string:
		return parseNumeric(x)
	default:
		return nil, fmt.Errorf("%w: unsupported literal type %T", ErrMalformedInput, v)
	}
}

func fromFloat(v float64) (*big.Int, error) {
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
		return nil, fmt.Errorf("%w: %v is not an unsigned integer", ErrMalformedInput, v)
	}
	n, _ := new(big.Float).SetFloat64(v).Int(nil)
	return n, nil
}

func fromInt64(v int64) (*big.Int, error) {
	if v < 0 {
		return nil, fmt.Errorf("%w: negative value %d", ErrMalformedInput, v)
	}
	return big.NewInt(v), nil
}

func parseNumeric(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	digits, base := s, 10
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			digits, base = s[2:], 16
		case 'o', 'O':
			digits, base = s[2:], 8
		case 'b', 'B':
			digits, base = s[2:], 2
		}
	}
	// big.Int accepts a sign; literals here never carry one.
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return nil, fmt.Errorf("%w: invalid numeric literal %q", ErrMalformedInput, s)
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: invalid numeric literal %q", ErrMalformedInput, s)
	}
	return n, nil
}
