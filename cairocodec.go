// Package cairocodec converts UTF-8 text and 256-bit amounts to and from the
// felt-based wire representation used by Cairo contracts on StarkNet.
//
// This package includes:
// - Limb helpers for packing up to 31 bytes into a single felt252
// - The core::byte_array::ByteArray codec, tolerant of several upstream shapes
// - The u256 (low, high) pair codec
// - CairoMarshaler implementations for ByteArray, u256 and ContractAddress
//
// Example usage:
//
//	import "github.com/ainest/cairocodec"
//
//	// Encode a string as ByteArray calldata
//	wire := cairocodec.EncodeByteArray("hello") // ["0", "0x68656c6c6f", "5"]
//
//	// Decode whatever a node or SDK handed back
//	name := cairocodec.DecodeByteArray(cairocodec.RawSequenceOf("0", "0x68656c6c6f", "5"))
//
//	// Split an amount into a u256
//	amount, err := cairocodec.SplitUint256(big.NewInt(300))
package cairocodec

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
)

// CairoMarshaler is the interface for types that can be serialized to/from Cairo format
type CairoMarshaler interface {
	MarshalCairo() ([]*felt.Felt, error)
	UnmarshalCairo(data []*felt.Felt) error
}

// CairoSerde provides serialization helpers with size information
type CairoSerde interface {
	CairoMarshaler
	CairoSize() int // -1 for dynamic size, positive number for fixed size
}

// ============================================================================
// Call configuration types for contract interaction
// ============================================================================

// CallOpts contains options for contract view calls
type CallOpts struct {
	BlockID *rpc.BlockID // Optional block ID (defaults to "latest" if nil)
}

// CallOption defines a function type for setting call options
type CallOption func(*CallOpts)

// WithBlockID sets the block ID for the call
func WithBlockID(blockID rpc.BlockID) CallOption {
	return func(opts *CallOpts) {
		opts.BlockID = &blockID
	}
}

// NewCallOpts creates a new CallOpts with optional configurations
func NewCallOpts(options ...CallOption) *CallOpts {
	opts := &CallOpts{}
	for _, option := range options {
		option(opts)
	}
	return opts
}

// Block returns the configured block ID, or the latest block.
func (o *CallOpts) Block() rpc.BlockID {
	if o == nil || o.BlockID == nil {
		return rpc.WithBlockTag("latest")
	}
	return *o.BlockID
}

// ============================================================================
// Helper functions for type conversion between Go types and Cairo felt values
// ============================================================================

// FeltFromUint converts uint64 to *felt.Felt
func FeltFromUint(value uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(value)
}

// UintFromFelt converts *felt.Felt to uint64
func UintFromFelt(f *felt.Felt) uint64 {
	if f == nil {
		return 0
	}
	bigInt := f.BigInt(big.NewInt(0))
	if !bigInt.IsUint64() {
		return 0
	}
	return bigInt.Uint64()
}

// FeltFromBigInt converts *big.Int to *felt.Felt.
// Values at or above the field prime are reduced, so callers validate first.
func FeltFromBigInt(value *big.Int) *felt.Felt {
	if value == nil {
		return new(felt.Felt)
	}
	f := new(felt.Felt)
	f.SetBytes(value.Bytes())
	return f
}

// BigIntFromFelt converts *felt.Felt to *big.Int
func BigIntFromFelt(f *felt.Felt) *big.Int {
	if f == nil {
		return big.NewInt(0)
	}
	return f.BigInt(big.NewInt(0))
}

// HexFromFelt renders a felt as a 0x-prefixed lowercase hex literal.
func HexFromFelt(f *felt.Felt) string {
	return "0x" + BigIntFromFelt(f).Text(16)
}

// ============================================================================
// StarkNet-specific types
// ============================================================================

// ContractAddress represents a StarkNet contract address
type ContractAddress struct {
	Value *felt.Felt
}

func NewContractAddress(value *felt.Felt) *ContractAddress {
	return &ContractAddress{Value: value}
}

func (a *ContractAddress) MarshalCairo() ([]*felt.Felt, error) {
	if a.Value == nil {
		return nil, fmt.Errorf("contract address is not set")
	}
	return []*felt.Felt{a.Value}, nil
}

func (a *ContractAddress) UnmarshalCairo(data []*felt.Felt) error {
	if len(data) == 0 {
		return fmt.Errorf("insufficient data for ContractAddress")
	}
	a.Value = data[0]
	return nil
}

func (a *ContractAddress) CairoSize() int {
	return 1
}

// String renders the address as hex.
func (a *ContractAddress) String() string {
	if a == nil {
		return "0x0"
	}
	return HexFromFelt(a.Value)
}
