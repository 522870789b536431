package marketplace

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"

	"github.com/ainest/cairocodec"
)

const (
	entrypointGetDataset      = "get_dataset"
	entrypointGetDatasetCount = "get_dataset_count"
)

// Caller executes a contract view call. *rpc.Provider satisfies it.
type Caller interface {
	Call(ctx context.Context, call rpc.FunctionCall, blockID rpc.BlockID) ([]*felt.Felt, error)
}

// Reader reads datasets from a deployed marketplace contract.
type Reader struct {
	address     *felt.Felt
	caller      Caller
	logger      *slog.Logger
	maxDatasets uint64
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets the logger used to report skipped datasets.
func WithLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithMaxDatasets caps the number of datasets Datasets will read. Zero means no cap.
func WithMaxDatasets(n uint64) ReaderOption {
	return func(r *Reader) {
		r.maxDatasets = n
	}
}

// NewReader creates a reader for the contract at address.
func NewReader(address *felt.Felt, caller Caller, opts ...ReaderOption) *Reader {
	r := &Reader{
		address: address,
		caller:  caller,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) call(
	ctx context.Context,
	entrypoint string,
	calldata []*felt.Felt,
	opts []cairocodec.CallOption,
) ([]*felt.Felt, error) {
	callOpts := cairocodec.NewCallOpts(opts...)
	return r.caller.Call(
		ctx,
		rpc.FunctionCall{
			ContractAddress:    r.address,
			EntryPointSelector: utils.GetSelectorFromNameFelt(entrypoint),
			Calldata:           calldata,
		},
		callOpts.Block(),
	)
}

// DatasetCount returns the number of listed datasets.
func (r *Reader) DatasetCount(ctx context.Context, opts ...cairocodec.CallOption) (uint64, error) {
	result, err := r.call(ctx, entrypointGetDatasetCount, nil, opts)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", entrypointGetDatasetCount, err)
	}
	count := cairocodec.CombineUint256(cairocodec.RawFelts(result))
	if !count.IsUint64() {
		return 0, fmt.Errorf("%s: %w: count %s", entrypointGetDatasetCount, cairocodec.ErrOutOfRange, count)
	}
	return count.Uint64(), nil
}

// Dataset reads and decodes the dataset with the given id.
func (r *Reader) Dataset(ctx context.Context, id uint64, opts ...cairocodec.CallOption) (*Dataset, error) {
	calldata, err := cairocodec.NewCairoUint256FromUint64(id).MarshalCairo()
	if err != nil {
		return nil, err
	}
	result, err := r.call(ctx, entrypointGetDataset, calldata, opts)
	if err != nil {
		return nil, fmt.Errorf("%s(%d): %w", entrypointGetDataset, id, err)
	}
	return DecodeDataset(id, result)
}

// Datasets reads datasets 1..count. Datasets that fail to load or decode are
// logged and skipped.
func (r *Reader) Datasets(ctx context.Context, opts ...cairocodec.CallOption) ([]*Dataset, error) {
	count, err := r.DatasetCount(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if r.maxDatasets > 0 && count > r.maxDatasets {
		r.logger.Debug(
			fmt.Sprintf("limiting %d datasets to %d", count, r.maxDatasets),
			"component", "marketplace",
		)
		count = r.maxDatasets
	}

	datasets := make([]*Dataset, 0, count)
	for id := uint64(1); id <= count; id++ {
		if err := ctx.Err(); err != nil {
			return datasets, err
		}
		d, err := r.Dataset(ctx, id, opts...)
		if err != nil {
			r.logger.Warn(
				"skipping dataset",
				"component", "marketplace",
				"id", id,
				"error", err,
			)
			continue
		}
		if d.Name == "" {
			r.logger.Debug(
				"dataset name did not decode, using fallback",
				"component", "marketplace",
				"id", id,
			)
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}
