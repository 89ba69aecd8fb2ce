package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port              string        `envconfig:"PORT" default:"8080"`
	WalletFilePath    string        `envconfig:"EZKEY_FILE_PATH" required:"true"`
	RPCURL            string        `envconfig:"POLYGON_RPC_URL" default:"https://polygon-rpc.com/"`
	WalletRPCURL      string        `envconfig:"WALLET_RPC_URL"`
	RequiredChainID   int64         `envconfig:"REQUIRED_CHAIN_ID" default:"137"`
	EzKeyContract     string        `envconfig:"EZKEY_CONTRACT" default:"0xbca0C59Ee51CaA9837EA2f05d541E9936738Ce6b"`
	EzochContract     string        `envconfig:"EZOCH_CONTRACT" default:"0xB7E15E994270A6B251C51B9a7358E10ce0054cd2"`
	GasLimit          uint64        `envconfig:"GAS_LIMIT" default:"300000"`
	IPFSGateway       string        `envconfig:"IPFS_GATEWAY" default:"https://ipfs.io/ipfs/"`
	BalanceStrategies []string      `envconfig:"BALANCE_STRATEGIES" default:"mapping,getter,holder"`
	NetworksFile      string        `envconfig:"NETWORKS_FILE"`
	MetadataTimeout   time.Duration `envconfig:"METADATA_TIMEOUT" default:"15s"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile           string        `envconfig:"LOG_FILE"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate checks values envconfig cannot check by itself.
func (c *Config) Validate() error {
	if c.WalletFilePath == "" {
		return errors.New("EZKEY_FILE_PATH not set")
	}
	if c.RequiredChainID <= 0 {
		return errors.New("REQUIRED_CHAIN_ID must be positive")
	}
	if c.GasLimit == 0 {
		return errors.New("GAS_LIMIT must be positive")
	}
	if !strings.HasSuffix(c.IPFSGateway, "/") {
		c.IPFSGateway += "/"
	}
	if len(c.BalanceStrategies) == 0 {
		return errors.New("BALANCE_STRATEGIES must name at least one strategy")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFilePath returns path to .cwt file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetRPCURL returns Polygon RPC URL from configuration
func GetRPCURL() string {
	return Get().RPCURL
}

// GetWalletRPCURL returns the RPC URL the wallet starts on, POLYGON_RPC_URL when unset
func GetWalletRPCURL() string {
	if url := Get().WalletRPCURL; url != "" {
		return url
	}
	return Get().RPCURL
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadHidden("Enter wallet password: ")
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// ReadHidden prints prompt to stderr and reads one line from the terminal without echo.
func ReadHidden(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return raw, nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
