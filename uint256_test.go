package cairocodec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
)

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

func TestSplitUint256(t *testing.T) {
	tests := []struct {
		name  string
		value *big.Int
		low   *big.Int
		high  *big.Int
	}{
		{"small", big.NewInt(300), big.NewInt(300), big.NewInt(0)},
		{"one above 2^128", new(big.Int).Add(pow2(128), big.NewInt(7)), big.NewInt(7), big.NewInt(1)},
		{"max", new(big.Int).Sub(pow2(256), big.NewInt(1)), mask128, mask128},
		{"zero", big.NewInt(0), big.NewInt(0), big.NewInt(0)},
	}

	for _, test := range tests {
		u, err := SplitUint256(test.value)
		if err != nil {
			t.Errorf("%s: SplitUint256 failed: %v", test.name, err)
			continue
		}
		if u.Low.Cmp(test.low) != 0 || u.High.Cmp(test.high) != 0 {
			t.Errorf("%s: expected low=%s high=%s, got low=%s high=%s",
				test.name, test.low, test.high, u.Low, u.High)
		}
	}

	for _, value := range []*big.Int{pow2(256), big.NewInt(-1)} {
		if _, err := SplitUint256(value); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Expected ErrOutOfRange for %s, got %v", value, err)
		}
	}
	if _, err := SplitUint256(nil); err == nil {
		t.Errorf("Expected error for nil value")
	}
}

func TestCombineUint256(t *testing.T) {
	expected := new(big.Int).Add(pow2(128), big.NewInt(7))

	shapes := []struct {
		name string
		raw  RawValue
	}{
		{"sequence", RawSequenceOf("7", "1")},
		{"hex sequence", RawSequenceOf("0x7", "0x1", "0x99")},
		{"felt sequence", RawFelts([]*felt.Felt{FeltFromUint(7), FeltFromUint(1)})},
		{"record", RawFieldsOf(map[string]any{"low": 7, "high": "1"})},
		{"scalar", RawScalarOf(expected)},
		{"decimal scalar", RawScalarOf(expected.String())},
		{"pair struct", RawFromAny(CairoUint256{Low: big.NewInt(7), High: big.NewInt(1)})},
		{"pair struct pointer", RawFromAny(NewCairoUint256(big.NewInt(7), big.NewInt(1)))},
		{"small integer sequence", RawSequenceOf(uint8(7), int8(1))},
	}
	for _, test := range shapes {
		if got := CombineUint256(test.raw); got.Cmp(expected) != 0 {
			t.Errorf("%s: expected %s, got %s", test.name, expected, got)
		}
	}

	zeros := []struct {
		name string
		raw  RawValue
	}{
		{"none", RawValue{}},
		{"single item sequence", RawSequenceOf("7")},
		{"record without high", RawFieldsOf(map[string]any{"low": 7})},
		{"non-numeric", RawSequenceOf("seven", "1")},
		{"negative", RawScalarOf(-3)},
		{"empty string", RawScalarOf("")},
		{"nil pair", RawFromAny((*CairoUint256)(nil))},
	}
	for _, test := range zeros {
		if got := CombineUint256(test.raw); got.Sign() != 0 {
			t.Errorf("%s: expected 0, got %s", test.name, got)
		}
	}
}

func TestUint256Symmetry(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(300),
		new(big.Int).Sub(pow2(128), big.NewInt(1)),
		pow2(128),
		new(big.Int).Add(pow2(200), big.NewInt(12345)),
		new(big.Int).Sub(pow2(256), big.NewInt(1)),
	}

	for _, value := range values {
		u, err := SplitUint256(value)
		if err != nil {
			t.Fatalf("SplitUint256 failed for %s: %v", value, err)
		}
		if u.ToBigInt().Cmp(value) != 0 {
			t.Errorf("ToBigInt: expected %s, got %s", value, u.ToBigInt())
		}
		combined := CombineUint256(RawSequenceOf(u.Low, u.High))
		if combined.Cmp(value) != 0 {
			t.Errorf("CombineUint256: expected %s, got %s", value, combined)
		}
		data, err := u.MarshalCairo()
		if err != nil {
			t.Fatalf("MarshalCairo failed for %s: %v", value, err)
		}
		if CombineUint256(RawFelts(data)).Cmp(value) != 0 {
			t.Errorf("felt roundtrip failed for %s", value)
		}
	}
}

func TestCairoUint256(t *testing.T) {
	low := big.NewInt(123)
	high := big.NewInt(456)

	u256 := NewCairoUint256(low, high)

	data, err := u256.MarshalCairo()
	if err != nil {
		t.Fatalf("MarshalCairo failed: %v", err)
	}
	if len(data) != 2 {
		t.Errorf("Expected 2 felts, got %d", len(data))
	}

	u256_2 := &CairoUint256{}
	err = u256_2.UnmarshalCairo(data)
	if err != nil {
		t.Fatalf("UnmarshalCairo failed: %v", err)
	}
	if u256_2.Low.Cmp(low) != 0 || u256_2.High.Cmp(high) != 0 {
		t.Errorf("Expected low=%s high=%s, got low=%s high=%s",
			low.String(), high.String(), u256_2.Low.String(), u256_2.High.String())
	}

	if u256.CairoSize() != 2 {
		t.Errorf("Expected size 2, got %d", u256.CairoSize())
	}

	if err := u256_2.UnmarshalCairo(data[:1]); err == nil {
		t.Errorf("Expected error for a single felt")
	}

	wide := NewCairoUint256(pow2(128), big.NewInt(0))
	if _, err := wide.MarshalCairo(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for a 129-bit half, got %v", err)
	}
}

func TestCairoUint256Holiman(t *testing.T) {
	value := new(uint256.Int).Lsh(uint256.NewInt(3), 130)
	value.Add(value, uint256.NewInt(9))

	u := NewCairoUint256FromUint256(value)
	if u.Low.Cmp(big.NewInt(9)) != 0 || u.High.Cmp(big.NewInt(12)) != 0 {
		t.Errorf("Expected low=9 high=12, got low=%s high=%s", u.Low, u.High)
	}

	back, err := u.ToUint256()
	if err != nil {
		t.Fatalf("ToUint256 failed: %v", err)
	}
	if !back.Eq(value) {
		t.Errorf("Expected %s, got %s", value.Dec(), back.Dec())
	}

	full := NewCairoUint256FromUint256(new(uint256.Int).Not(new(uint256.Int)))
	if full.Low.Cmp(mask128) != 0 || full.High.Cmp(mask128) != 0 {
		t.Errorf("Expected both halves of max u256 to be 2^128-1, got low=%s high=%s", full.Low, full.High)
	}
	if zero := NewCairoUint256FromUint256(nil); zero.ToBigInt().Sign() != 0 {
		t.Errorf("Expected nil to convert to 0, got %s", zero.ToBigInt())
	}

	overflow := NewCairoUint256(big.NewInt(0), pow2(128))
	if _, err := overflow.ToUint256(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}

func BenchmarkCairoUint256Marshal(b *testing.B) {
	u256 := NewCairoUint256(big.NewInt(123), big.NewInt(456))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := u256.MarshalCairo()
		if err != nil {
			b.Fatal(err)
		}
	}
}
