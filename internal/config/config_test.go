package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainest/cairocodec"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		Block:          DefaultBlockTag,
		AmountDecimals: DefaultAmountDecimals,
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test-cairocodec.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o644))
	return tmpFile
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
rpcUrl: "https://starknet-sepolia.example/rpc"
contractAddress: "0x04b3f1"
block: "123456"
amountDecimals: 6
maxDatasets: 25
`
	cfg, err := LoadConfig(writeConfig(t, yamlContent))
	require.NoError(t, err)

	expected := &Config{
		RpcUrl:          "https://starknet-sepolia.example/rpc",
		ContractAddress: "0x04b3f1",
		Block:           "123456",
		AmountDecimals:  6,
		MaxDatasets:     25,
	}
	assert.Equal(t, expected, cfg)
	assert.Same(t, cfg, GetConfig())

	addr, err := cfg.ContractFelt()
	require.NoError(t, err)
	assert.Equal(t, "0x4b3f1", cairocodec.HexFromFelt(addr))

	block, err := cfg.BlockID()
	require.NoError(t, err)
	require.NotNil(t, block.Number)
	assert.Equal(t, uint64(123456), *block.Number)
}

func TestLoad_Defaults(t *testing.T) {
	resetGlobalConfig()
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockTag, cfg.Block)
	assert.Equal(t, DefaultAmountDecimals, cfg.AmountDecimals)

	_, err = cfg.ContractFelt()
	assert.ErrorIs(t, err, ErrNoContractAddress)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	resetGlobalConfig()
	t.Setenv("CAIROCODEC_RPC_URL", "http://localhost:5050")
	t.Setenv("CAIROCODEC_CONTRACT_ADDRESS", "0x99")
	t.Setenv("CAIROCODEC_MAX_DATASETS", "3")

	cfg, err := LoadConfig(writeConfig(t, "rpcUrl: \"http://file:5050\"\ncontractAddress: \"0x1\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5050", cfg.RpcUrl)
	assert.Equal(t, "0x99", cfg.ContractAddress)
	assert.Equal(t, uint64(3), cfg.MaxDatasets)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "rpcUrl: [",
		"bad address":  "contractAddress: \"not-an-address\"",
		"bad block":    "block: \"yesterday\"",
		"bad decimals": "amountDecimals: -1",
	}
	for name, content := range tests {
		resetGlobalConfig()
		_, err := LoadConfig(writeConfig(t, content))
		assert.Error(t, err, name)
	}

	resetGlobalConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBlockID(t *testing.T) {
	cfg := &Config{Block: "pending"}
	block, err := cfg.BlockID()
	require.NoError(t, err)
	assert.Equal(t, "pending", string(block.Tag))

	cfg.Block = ""
	block, err = cfg.BlockID()
	require.NoError(t, err)
	assert.Equal(t, "latest", string(block.Tag))

	cfg.Block = "0xabc"
	block, err = cfg.BlockID()
	require.NoError(t, err)
	require.NotNil(t, block.Hash)
	assert.Equal(t, "0xabc", cairocodec.HexFromFelt(block.Hash))
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	cfg := &Config{RpcUrl: "http://localhost"}
	ctx := WithContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
