package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/spf13/cobra"

	"github.com/ainest/cairocodec"
	"github.com/ainest/cairocodec/internal/config"
	"github.com/ainest/cairocodec/marketplace"
)

func newReader(cmd *cobra.Command) (*marketplace.Reader, []cairocodec.CallOption, *config.Config, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, nil, nil, errors.New("no config found in context")
	}
	if cfg.RpcUrl == "" {
		return nil, nil, nil, errors.New("no RPC URL configured")
	}
	address, err := cfg.ContractFelt()
	if err != nil {
		return nil, nil, nil, err
	}
	blockID, err := cfg.BlockID()
	if err != nil {
		return nil, nil, nil, err
	}
	provider, err := rpc.NewProvider(cfg.RpcUrl)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create provider: %w", err)
	}
	reader := marketplace.NewReader(
		address,
		provider,
		marketplace.WithLogger(slog.Default()),
		marketplace.WithMaxDatasets(cfg.MaxDatasets),
	)
	return reader, []cairocodec.CallOption{cairocodec.WithBlockID(blockID)}, cfg, nil
}

func printDataset(w io.Writer, d *marketplace.Dataset, decimals int) error {
	_, err := fmt.Fprintf(
		w,
		"#%d\t%s\t%s\t%s\towner=%s\tipfs=%s\n",
		d.ID,
		d.DisplayName(),
		d.DisplayCategory(),
		marketplace.FormatPrice(d.Price, decimals),
		d.Owner,
		d.IPFSHashHex(),
	)
	return err
}

func datasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List datasets from the marketplace contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, opts, cfg, err := newReader(cmd)
			if err != nil {
				return err
			}
			datasets, err := reader.Datasets(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			for _, d := range datasets {
				if err := printDataset(cmd.OutOrStdout(), d, cfg.AmountDecimals); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func datasetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dataset <id>",
		Short: "Show a single dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid dataset id %q: %w", args[0], err)
			}
			reader, opts, cfg, err := newReader(cmd)
			if err != nil {
				return err
			}
			d, err := reader.Dataset(cmd.Context(), id, opts...)
			if err != nil {
				return err
			}
			return printDataset(cmd.OutOrStdout(), d, cfg.AmountDecimals)
		},
	}
}
