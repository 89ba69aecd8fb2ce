package main

import (
	"bytes"
	"errors"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new Polygon wallet",
	Long: `Generate a new secp256k1 key and save it to EZKEY_FILE_PATH, encrypted
with a password read from the terminal. An existing keystore is never
overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readNewPassword("Enter wallet password: ")
		if err != nil {
			return err
		}
		defer clear(password)

		resp, err := ezkey.GenerateWallet(config.GetWalletFilePath(), password)
		if err != nil {
			return err
		}
		log.Info("wallet generated", zap.String("address", resp.Address))

		pterm.Success.Println(resp.Message)
		pterm.Info.Printfln("Address: %s", resp.Address)
		pterm.Info.Printfln("Keystore: %s", config.GetWalletFilePath())
		return nil
	},
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Re-encrypt the keystore under a new password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPassword, err := config.ReadHidden("Current password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)

		newPassword, err := readNewPassword("New password: ")
		if err != nil {
			return err
		}
		defer clear(newPassword)

		if err := ezkey.Rekey(config.GetWalletFilePath(), oldPassword, newPassword); err != nil {
			return err
		}
		log.Info("keystore re-encrypted", zap.String("path", config.GetWalletFilePath()))
		pterm.Success.Println("Keystore re-encrypted")
		return nil
	},
}

// readNewPassword reads a password twice and checks both entries match
func readNewPassword(prompt string) ([]byte, error) {
	first, err := config.ReadHidden(prompt)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	second, err := config.ReadHidden("Repeat password: ")
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)

	if !bytes.Equal(first, second) {
		clear(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}
