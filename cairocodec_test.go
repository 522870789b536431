package cairocodec

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/starknet.go/rpc"
)

// Test helper functions
func TestFeltConversion(t *testing.T) {
	// Test uint conversion
	value := uint64(123)
	f := FeltFromUint(value)
	back := UintFromFelt(f)
	if back != value {
		t.Errorf("FeltFromUint/UintFromFelt roundtrip failed: expected %d, got %d", value, back)
	}

	// Test BigInt conversion
	bigValue := new(big.Int).SetInt64(789)
	f2 := FeltFromBigInt(bigValue)
	back2 := BigIntFromFelt(f2)
	if back2.Cmp(bigValue) != 0 {
		t.Errorf("FeltFromBigInt/BigIntFromFelt roundtrip failed: expected %s, got %s", bigValue.String(), back2.String())
	}

	// Nil inputs read as zero
	if UintFromFelt(nil) != 0 || BigIntFromFelt(nil).Sign() != 0 || BigIntFromFelt(FeltFromBigInt(nil)).Sign() != 0 {
		t.Errorf("Expected nil conversions to yield zero")
	}

	// Values above uint64 do not truncate silently
	if UintFromFelt(FeltFromBigInt(pow2(100))) != 0 {
		t.Errorf("Expected 0 for a felt wider than uint64")
	}

	if HexFromFelt(FeltFromUint(255)) != "0xff" {
		t.Errorf("Expected 0xff, got %s", HexFromFelt(FeltFromUint(255)))
	}
	if HexFromFelt(nil) != "0x0" {
		t.Errorf("Expected 0x0 for nil, got %s", HexFromFelt(nil))
	}
}

func TestContractAddress(t *testing.T) {
	addr := NewContractAddress(FeltFromUint(12345))
	data, err := addr.MarshalCairo()
	if err != nil || len(data) != 1 || UintFromFelt(data[0]) != 12345 {
		t.Errorf("ContractAddress marshal failed")
	}
	addr2 := &ContractAddress{}
	if err := addr2.UnmarshalCairo(data); err != nil {
		t.Fatalf("UnmarshalCairo failed: %v", err)
	}
	if UintFromFelt(addr2.Value) != 12345 {
		t.Errorf("ContractAddress unmarshal failed")
	}
	if addr2.String() != "0x3039" {
		t.Errorf("Expected 0x3039, got %s", addr2.String())
	}
	if err := addr2.UnmarshalCairo(nil); err == nil {
		t.Errorf("Expected error for empty data")
	}
	if _, err := (&ContractAddress{}).MarshalCairo(); err == nil {
		t.Errorf("Expected error for unset address")
	}
}

func TestCallOpts(t *testing.T) {
	opts := NewCallOpts()
	if opts.BlockID != nil {
		t.Errorf("Expected no block ID by default")
	}
	if opts.Block().Tag != "latest" {
		t.Errorf("Expected latest block by default, got %+v", opts.Block())
	}

	opts = NewCallOpts(WithBlockID(rpc.WithBlockNumber(42)))
	block := opts.Block()
	if block.Number == nil || *block.Number != 42 {
		t.Errorf("Expected block number 42, got %+v", block)
	}
}
