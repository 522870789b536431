package cairocodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
)

// ============================================================================
// ByteArray support for core::byte_array::ByteArray
// ============================================================================

// ByteArray is the canonical form of core::byte_array::ByteArray: full 31-byte
// limbs followed by one pending limb holding PendingLen bytes.
type ByteArray struct {
	FullLimbs   []*felt.Felt
	PendingLimb *felt.Felt
	PendingLen  int
}

// NewByteArrayFromBytes packs data into full limbs and a pending limb.
func NewByteArrayFromBytes(data []byte) ByteArray {
	ba := ByteArray{
		FullLimbs:   make([]*felt.Felt, 0, len(data)/MaxLimbBytes),
		PendingLimb: new(felt.Felt),
	}
	for len(data) >= MaxLimbBytes {
		ba.FullLimbs = append(ba.FullLimbs, packLimb(data[:MaxLimbBytes]))
		data = data[MaxLimbBytes:]
	}
	if len(data) > 0 {
		ba.PendingLimb = packLimb(data)
		ba.PendingLen = len(data)
	}
	return ba
}

// NewByteArrayFromString packs the UTF-8 bytes of s.
func NewByteArrayFromString(s string) ByteArray {
	return NewByteArrayFromBytes([]byte(s))
}

// Bytes concatenates the payload of every limb. Leading zero bytes of each
// limb are not recoverable and are therefore absent.
func (b ByteArray) Bytes() []byte {
	out := make([]byte, 0, (len(b.FullLimbs)+1)*MaxLimbBytes)
	for _, limb := range b.FullLimbs {
		out = append(out, LimbToBytes(limb, MaxLimbBytes)...)
	}
	if b.PendingLen > 0 {
		out = append(out, LimbToBytes(b.PendingLimb, b.PendingLen)...)
	}
	return out
}

// String decodes the payload as UTF-8. Zero bytes are dropped and invalid
// sequences are replaced with U+FFFD.
func (b ByteArray) String() string {
	data := b.Bytes()
	text := make([]byte, 0, len(data))
	for _, c := range data {
		if c != 0 {
			text = append(text, c)
		}
	}
	return strings.ToValidUTF8(string(text), "\uFFFD")
}

// Felts returns the wire layout [count, full limbs..., pending limb, pending length].
func (b ByteArray) Felts() []*felt.Felt {
	out := make([]*felt.Felt, 0, len(b.FullLimbs)+3)
	out = append(out, FeltFromUint(uint64(len(b.FullLimbs))))
	out = append(out, b.FullLimbs...)
	pending := b.PendingLimb
	if pending == nil {
		pending = new(felt.Felt)
	}
	out = append(out, pending, FeltFromUint(uint64(b.PendingLen)))
	return out
}

// Literals returns the wire layout as text: the count and length in decimal,
// limbs as 0x-prefixed hex and a zero pending limb as "0".
func (b ByteArray) Literals() []string {
	out := make([]string, 0, len(b.FullLimbs)+3)
	out = append(out, strconv.Itoa(len(b.FullLimbs)))
	for _, limb := range b.FullLimbs {
		out = append(out, HexFromFelt(limb))
	}
	if BigIntFromFelt(b.PendingLimb).Sign() == 0 {
		out = append(out, "0")
	} else {
		out = append(out, HexFromFelt(b.PendingLimb))
	}
	out = append(out, strconv.Itoa(b.PendingLen))
	return out
}

// EncodeByteArray encodes s as ByteArray wire literals. The empty string
// encodes as ["0", "0", "0"].
func EncodeByteArray(s string) []string {
	return NewByteArrayFromString(s).Literals()
}

// EncodeByteArrayFelts encodes s as ByteArray calldata.
func EncodeByteArrayFelts(s string) []*felt.Felt {
	return NewByteArrayFromString(s).Felts()
}

// TryDecodeByteArray normalizes raw and decodes it, reporting why it failed.
func TryDecodeByteArray(raw RawValue) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("%w: %v", ErrMalformedInput, r)
		}
	}()
	ba, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	return ba.String(), nil
}

// DecodeByteArray decodes raw into a string. It never fails: any malformed
// input yields the empty string.
func DecodeByteArray(raw RawValue) string {
	s, _ := TryDecodeByteArray(raw)
	return s
}

// ReadByteArray reads one ByteArray from the front of a felt stream and
// returns it along with the number of felts consumed.
func ReadByteArray(data []*felt.Felt) (ByteArray, int, error) {
	if len(data) < 3 {
		return ByteArray{}, 0, fmt.Errorf("insufficient data for ByteArray: need at least 3 felts, got %d", len(data))
	}

	count := BigIntFromFelt(data[0])
	if !count.IsUint64() || count.Uint64() > uint64(len(data)-3) {
		return ByteArray{}, 0, fmt.Errorf("insufficient data for ByteArray: %s full limbs in %d felts", count, len(data))
	}
	numChunks := int(count.Uint64())

	ba := ByteArray{FullLimbs: make([]*felt.Felt, numChunks)}
	copy(ba.FullLimbs, data[1:1+numChunks])
	ba.PendingLimb = data[1+numChunks]

	pendingLen := BigIntFromFelt(data[2+numChunks])
	if !pendingLen.IsUint64() || pendingLen.Uint64() > MaxLimbBytes {
		return ByteArray{}, 0, fmt.Errorf("%w: pending length %s", ErrMalformedInput, pendingLen)
	}
	ba.PendingLen = int(pendingLen.Uint64())

	return ba, numChunks + 3, nil
}

// CairoByteArray wraps []byte with CairoMarshaler implementation for ByteArray
type CairoByteArray struct {
	Value []byte
}

func NewCairoByteArray(value []byte) *CairoByteArray {
	return &CairoByteArray{Value: value}
}

func (b *CairoByteArray) MarshalCairo() ([]*felt.Felt, error) {
	return NewByteArrayFromBytes(b.Value).Felts(), nil
}

func (b *CairoByteArray) UnmarshalCairo(data []*felt.Felt) error {
	ba, _, err := ReadByteArray(data)
	if err != nil {
		return err
	}
	b.Value = ba.Bytes()
	return nil
}

func (b *CairoByteArray) CairoSize() int {
	return -1 // Dynamic size
}
