package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ainest/cairocodec"
	"github.com/ainest/cairocodec/internal/config"
	"github.com/ainest/cairocodec/marketplace"
)

// readInput returns the joined arguments, or stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	buf, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}

// parseRaw reads a JSON document into a raw value. Input that is not JSON is
// taken as a bare scalar literal.
func parseRaw(input string) cairocodec.RawValue {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || !errors.Is(dec.Decode(new(any)), io.EOF) {
		return cairocodec.RawScalarOf(strings.TrimSpace(input))
	}
	return cairocodec.RawFromAny(v)
}

func writeJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeCommand() *cobra.Command {
	var asFelts bool
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text as ByteArray calldata",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if asFelts {
				felts := cairocodec.EncodeByteArrayFelts(text)
				out := make([]string, len(felts))
				for i, f := range felts {
					out[i] = cairocodec.HexFromFelt(f)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeJSON(cmd.OutOrStdout(), cairocodec.EncodeByteArray(text))
		},
	}
	cmd.Flags().BoolVar(&asFelts, "hex", false, "render every felt as hex")
	return cmd
}

func decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [json]",
		Short: "Decode a ByteArray given as a JSON list, object or scalar",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			raw := parseRaw(input)
			text, err := cairocodec.TryDecodeByteArray(raw)
			if err != nil {
				slog.Debug(
					"decode failed, printing empty string",
					"component", programName,
					"shape", raw.Kind().String(),
					"error", err,
				)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func splitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "split <value>",
		Short: "Split an integer into u256 low and high halves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := new(big.Int).SetString(strings.TrimSpace(args[0]), 0)
			if !ok {
				return fmt.Errorf("invalid integer %q", args[0])
			}
			u, err := cairocodec.SplitUint256(value)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]string{
				cairocodec.FieldLow:  u.Low.String(),
				cairocodec.FieldHigh: u.High.String(),
			})
		},
	}
}

func combineCommand() *cobra.Command {
	var format bool
	cmd := &cobra.Command{
		Use:   "combine [json]",
		Short: "Combine a u256 given as [low, high], {low, high} or a scalar",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			value := cairocodec.CombineUint256(parseRaw(input))
			if format {
				decimals := config.DefaultAmountDecimals
				if cfg := config.FromContext(cmd.Context()); cfg != nil {
					decimals = cfg.AmountDecimals
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), marketplace.FormatAmount(value, decimals))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&format, "format", false, "render as a decimal amount using amountDecimals")
	return cmd
}
