package cairocodec

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/NethermindEth/juno/core/felt"
)

// RawKind identifies the shape of a value handed back by a node or SDK.
type RawKind int

const (
	RawNone     RawKind = iota // absent value
	RawSequence                // ordered list of literals
	RawRecord                  // named fields
	RawScalar                  // a single literal
)

func (k RawKind) String() string {
	switch k {
	case RawNone:
		return "none"
	case RawSequence:
		return "sequence"
	case RawRecord:
		return "record"
	case RawScalar:
		return "scalar"
	default:
		return fmt.Sprintf("RawKind(%d)", int(k))
	}
}

// Field names read from record-shaped ByteArray values. The second set is the
// starknet.js naming of the same struct members.
const (
	FieldFullLimbs   = "full_limbs"
	FieldPendingLimb = "pending_limb"
	FieldPendingLen  = "pending_len"

	fieldData           = "data"
	fieldPendingWord    = "pending_word"
	fieldPendingWordLen = "pending_word_len"

	FieldLow  = "low"
	FieldHigh = "high"
)

// RawValue is a caller-supplied value in one of the accepted upstream shapes.
// Literals inside it are anything ParseLimb accepts. The codec never mutates it.
type RawValue struct {
	kind   RawKind
	seq    []any
	fields map[string]any
	scalar any
	err    error
}

// Kind reports the shape of the value.
func (r RawValue) Kind() RawKind {
	return r.kind
}

// RawSequenceOf builds a sequence-shaped value.
func RawSequenceOf(items ...any) RawValue {
	return RawValue{kind: RawSequence, seq: items}
}

// RawFelts builds a sequence-shaped value from raw call results.
func RawFelts(felts []*felt.Felt) RawValue {
	items := make([]any, len(felts))
	for i, f := range felts {
		items[i] = f
	}
	return RawValue{kind: RawSequence, seq: items}
}

// RawScalarOf builds a scalar-shaped value.
func RawScalarOf(v any) RawValue {
	if isNil(v) {
		return RawValue{}
	}
	return RawValue{kind: RawScalar, scalar: v}
}

// RawFieldsOf builds a record-shaped value from named fields.
func RawFieldsOf(fields map[string]any) RawValue {
	return RawValue{kind: RawRecord, fields: fields}
}

// ByteArrayRecord is the named-field form of a ByteArray. Nil members take
// their defaults: no full limbs, a zero pending limb and a zero length.
type ByteArrayRecord struct {
	FullLimbs   []any
	PendingLimb any
	PendingLen  any
}

// RawRecordOf builds a record-shaped value from a ByteArrayRecord.
func RawRecordOf(rec ByteArrayRecord) RawValue {
	fields := make(map[string]any, 3)
	if rec.FullLimbs != nil {
		fields[FieldFullLimbs] = rec.FullLimbs
	}
	if rec.PendingLimb != nil {
		fields[FieldPendingLimb] = rec.PendingLimb
	}
	if rec.PendingLen != nil {
		fields[FieldPendingLen] = rec.PendingLen
	}
	return RawFieldsOf(fields)
}

// RawFromAny classifies a dynamically typed value, such as decoded JSON.
// Slices and arrays become sequences; maps with string keys, ByteArrayRecord
// and CairoUint256 become records; everything else is a scalar.
func RawFromAny(v any) RawValue {
	switch x := v.(type) {
	case RawValue:
		return x
	case []any:
		return RawSequenceOf(x...)
	case []*felt.Felt:
		return RawFelts(x)
	case map[string]any:
		return RawFieldsOf(x)
	case ByteArrayRecord:
		return RawRecordOf(x)
	case *ByteArrayRecord:
		if x == nil {
			return RawValue{}
		}
		return RawRecordOf(*x)
	case CairoUint256:
		return uint256Record(&x)
	case *CairoUint256:
		if x == nil {
			return RawValue{}
		}
		return uint256Record(x)
	}
	if isNil(v) {
		return RawValue{}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return RawValue{}
		}
		return RawSequenceOf(toSlice(rv)...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return RawValue{kind: RawRecord, err: fmt.Errorf("%w: map keyed by %s", ErrMalformedInput, rv.Type().Key())}
		}
		if rv.IsNil() {
			return RawValue{}
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return RawFieldsOf(fields)
	case reflect.Pointer:
		if rv.IsNil() {
			return RawValue{}
		}
	}
	return RawScalarOf(v)
}

func uint256Record(u *CairoUint256) RawValue {
	return RawFieldsOf(map[string]any{FieldLow: u.Low, FieldHigh: u.High})
}

func toSlice(rv reflect.Value) []any {
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

// field returns the first present field among names.
func (r RawValue) field(names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := r.fields[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Normalize converts any accepted shape into the canonical ByteArray.
func Normalize(raw RawValue) (ByteArray, error) {
	if raw.err != nil {
		return ByteArray{}, raw.err
	}
	switch raw.kind {
	case RawSequence:
		return normalizeSequence(raw.seq)
	case RawRecord:
		return normalizeRecord(raw)
	case RawScalar:
		return shortString(raw.scalar)
	default:
		return ByteArray{}, fmt.Errorf("%w: no value", ErrMalformedInput)
	}
}

// shortString reads a single literal as an inline string of up to 31 bytes.
func shortString(v any) (ByteArray, error) {
	limb, err := ParseLimb(v)
	if err != nil {
		return ByteArray{}, err
	}
	return ByteArray{PendingLimb: limb, PendingLen: MaxLimbBytes}, nil
}

func normalizeSequence(seq []any) (ByteArray, error) {
	switch {
	case len(seq) == 1:
		return shortString(seq[0])
	case len(seq) < 3:
		return ByteArray{}, fmt.Errorf("%w: sequence of %d items", ErrMalformedInput, len(seq))
	}

	count, err := limbOrZero(seq[0])
	if err != nil {
		return ByteArray{}, fmt.Errorf("full limb count: %w", err)
	}
	total := BigIntFromFelt(count)
	// The pending limb must follow the full limbs; the length may be absent.
	if !total.IsUint64() || total.Uint64() > uint64(len(seq)-2) {
		return ByteArray{}, fmt.Errorf("%w: count %s exceeds %d items", ErrMalformedInput, total, len(seq))
	}
	n := total.Uint64()

	ba := ByteArray{FullLimbs: make([]*felt.Felt, 0, n)}
	for i := 1; i <= int(n); i++ {
		limb, err := limbOrZero(seq[i])
		if err != nil {
			return ByteArray{}, fmt.Errorf("full limb %d: %w", i-1, err)
		}
		ba.FullLimbs = append(ba.FullLimbs, limb)
	}
	if ba.PendingLimb, err = limbOrZero(seq[n+1]); err != nil {
		return ByteArray{}, fmt.Errorf("pending limb: %w", err)
	}
	if int(n)+2 < len(seq) {
		if ba.PendingLen, err = pendingLen(seq[n+2]); err != nil {
			return ByteArray{}, err
		}
	}
	return ba, nil
}

func normalizeRecord(raw RawValue) (ByteArray, error) {
	var (
		ba  ByteArray
		err error
	)
	if limbs, ok := raw.field(FieldFullLimbs, fieldData); ok && !isNil(limbs) {
		items, ok := limbs.([]any)
		if !ok {
			rv := reflect.ValueOf(limbs)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return ByteArray{}, fmt.Errorf("%w: full limbs of type %T", ErrMalformedInput, limbs)
			}
			items = toSlice(rv)
		}
		ba.FullLimbs = make([]*felt.Felt, 0, len(items))
		for i, item := range items {
			limb, err := limbOrZero(item)
			if err != nil {
				return ByteArray{}, fmt.Errorf("full limb %d: %w", i, err)
			}
			ba.FullLimbs = append(ba.FullLimbs, limb)
		}
	}
	pending, _ := raw.field(FieldPendingLimb, fieldPendingWord)
	if ba.PendingLimb, err = limbOrZero(pending); err != nil {
		return ByteArray{}, fmt.Errorf("pending limb: %w", err)
	}
	length, _ := raw.field(FieldPendingLen, fieldPendingWordLen)
	if ba.PendingLen, err = pendingLen(length); err != nil {
		return ByteArray{}, err
	}
	return ba, nil
}

// pendingLen reads a pending length, clamping it to a single limb.
func pendingLen(v any) (int, error) {
	f, err := limbOrZero(v)
	if err != nil {
		return 0, fmt.Errorf("pending length: %w", err)
	}
	n := BigIntFromFelt(f)
	if n.Cmp(big.NewInt(MaxLimbBytes)) > 0 {
		return MaxLimbBytes, nil
	}
	return int(n.Int64()), nil
}
