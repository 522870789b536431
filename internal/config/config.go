package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ainest/cairocodec"
)

type ctxKey string

const configContextKey ctxKey = "cairocodec.config"

const envPrefix = "cairocodec"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultBlockTag       = "latest"
	DefaultAmountDecimals = 18
)

// ErrNoContractAddress is returned when a contract call is requested without
// a configured contract address
var ErrNoContractAddress = errors.New("no contract address configured")

type Config struct {
	RpcUrl          string `yaml:"rpcUrl"          envconfig:"RPC_URL"`
	ContractAddress string `yaml:"contractAddress"                     split_words:"true"`
	// Block to read from: a tag ("latest", "pending"), a block number, or a 0x block hash
	Block          string `yaml:"block"`
	AmountDecimals int    `yaml:"amountDecimals"                      split_words:"true"`
	// Maximum datasets to list (0 = no limit)
	MaxDatasets uint64 `yaml:"maxDatasets"                         split_words:"true"`
}

var globalConfig = &Config{
	RpcUrl:         "",
	Block:          DefaultBlockTag,
	AmountDecimals: DefaultAmountDecimals,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.cairocodec/cairocodec.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".cairocodec", "cairocodec.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	err := envconfig.Process(envPrefix, globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := globalConfig.validate(); err != nil {
		return nil, err
	}
	return globalConfig, nil
}

// GetConfig returns the global config instance
func GetConfig() *Config {
	return globalConfig
}

func (c *Config) validate() error {
	if c.AmountDecimals < 0 || c.AmountDecimals > 77 {
		return fmt.Errorf("invalid amountDecimals %d", c.AmountDecimals)
	}
	if _, err := c.BlockID(); err != nil {
		return err
	}
	if c.ContractAddress != "" {
		if _, err := c.ContractFelt(); err != nil {
			return err
		}
	}
	return nil
}

// ContractFelt parses the configured contract address
func (c *Config) ContractFelt() (*felt.Felt, error) {
	if c.ContractAddress == "" {
		return nil, ErrNoContractAddress
	}
	addr, err := cairocodec.ParseLimb(c.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid contractAddress: %w", err)
	}
	return addr, nil
}

// BlockID converts the configured block into an RPC block ID
func (c *Config) BlockID() (rpc.BlockID, error) {
	block := strings.TrimSpace(c.Block)
	switch strings.ToLower(block) {
	case "", "latest":
		return rpc.WithBlockTag("latest"), nil
	case "pending":
		return rpc.WithBlockTag("pending"), nil
	}
	if strings.HasPrefix(block, "0x") || strings.HasPrefix(block, "0X") {
		hash, err := cairocodec.ParseLimb(block)
		if err != nil {
			return rpc.BlockID{}, fmt.Errorf("invalid block hash: %w", err)
		}
		return rpc.WithBlockHash(hash), nil
	}
	number, err := strconv.ParseUint(block, 10, 64)
	if err != nil {
		return rpc.BlockID{}, fmt.Errorf("invalid block %q: expected a tag, number or hash", c.Block)
	}
	return rpc.WithBlockNumber(number), nil
}
