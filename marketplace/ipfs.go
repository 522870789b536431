package marketplace

import (
	"strings"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/ainest/cairocodec"
)

const ipfsPrefix = "Qm"

// IPFSHashToFelt stores a CIDv0 hash in a single felt: the "Qm" prefix is
// dropped and at most the first 31 bytes of the remainder are packed.
func IPFSHashToFelt(hash string) *felt.Felt {
	data := []byte(strings.TrimPrefix(hash, ipfsPrefix))
	if len(data) > cairocodec.MaxLimbBytes {
		data = data[:cairocodec.MaxLimbBytes]
	}
	limb, _ := cairocodec.BytesToLimb(data)
	return limb
}

// FeltToIPFSHash restores the "Qm" prefixed text stored by IPFSHashToFelt.
// A zero felt has no hash.
func FeltToIPFSHash(f *felt.Felt) string {
	data := cairocodec.LimbToBytes(f, cairocodec.MaxLimbBytes)
	if len(data) == 0 {
		return ""
	}
	return ipfsPrefix + strings.ToValidUTF8(string(data), "\uFFFD")
}
