// Package marketplace reads dataset listings from the marketplace contract
// and decodes them for display.
package marketplace

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/ainest/cairocodec"
)

const (
	// PriceDecimals is the implicit scale of dataset prices (10^18).
	PriceDecimals = 18

	uncategorized = "Uncategorized"
)

// Dataset is a decoded get_dataset response.
type Dataset struct {
	ID       uint64
	Owner    *cairocodec.ContractAddress
	Name     string
	IPFSHash *felt.Felt
	Price    *big.Int
	Category string
}

// DecodeDataset decodes the flattened Dataset struct:
// owner, name (ByteArray), ipfs_hash, price (u256), category (ByteArray).
func DecodeDataset(id uint64, data []*felt.Felt) (*Dataset, error) {
	d := &Dataset{ID: id, Owner: &cairocodec.ContractAddress{}}
	if err := d.Owner.UnmarshalCairo(data); err != nil {
		return nil, fmt.Errorf("dataset %d owner: %w", id, err)
	}
	offset := d.Owner.CairoSize()

	name, n, err := cairocodec.ReadByteArray(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("dataset %d name: %w", id, err)
	}
	d.Name = name.String()
	offset += n

	if len(data) <= offset {
		return nil, fmt.Errorf("dataset %d: insufficient data for ipfs hash", id)
	}
	d.IPFSHash = data[offset]
	offset++

	price := &cairocodec.CairoUint256{}
	if err := price.UnmarshalCairo(data[offset:]); err != nil {
		return nil, fmt.Errorf("dataset %d price: %w", id, err)
	}
	d.Price = price.ToBigInt()
	offset += price.CairoSize()

	category, _, err := cairocodec.ReadByteArray(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("dataset %d category: %w", id, err)
	}
	d.Category = category.String()
	return d, nil
}

// DisplayName returns the decoded name, or "Dataset #<id>" when it is empty.
func (d *Dataset) DisplayName() string {
	if d.Name == "" {
		return fmt.Sprintf("Dataset #%d", d.ID)
	}
	return d.Name
}

// DisplayCategory returns the decoded category, or "Uncategorized".
func (d *Dataset) DisplayCategory() string {
	if d.Category == "" {
		return uncategorized
	}
	return d.Category
}

// DisplayPrice renders the price with the given number of decimals.
func (d *Dataset) DisplayPrice(decimals int) string {
	return FormatAmount(d.Price, decimals)
}

// PriceLabel renders the price the way listings show it, e.g. "1.50 STRK" or "Free".
func (d *Dataset) PriceLabel() string {
	return FormatPrice(d.Price, PriceDecimals)
}

// IPFSHashHex renders the stored hash felt as hex.
func (d *Dataset) IPFSHashHex() string {
	return cairocodec.HexFromFelt(d.IPFSHash)
}
