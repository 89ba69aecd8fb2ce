package main

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// connect opens the wallet and a session for its account
func connect(ctx context.Context) (*app, *ezkey.Session, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	s, err := a.wallet.Connect(ctx)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	log.Debug("session opened", zap.String("session", s.ID()), zap.String("address", s.Address().Hex()))
	return a, s, nil
}

// ensureNetwork offers the switch when the wallet is on the wrong chain
func ensureNetwork(ctx context.Context, s *ezkey.Session) error {
	status, err := s.Network(ctx)
	if err != nil {
		return err
	}
	if status.Correct {
		return nil
	}
	if err := showNetwork(status); err != nil {
		return err
	}
	if !globalFlags.Yes {
		ok, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(true).
			Show(fmt.Sprintf("Switch wallet to %s?", status.RequiredName))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("wallet is on %s, %s required", status.Name, status.RequiredName)
		}
	}
	if _, err := s.SwitchNetwork(ctx); err != nil {
		return err
	}
	pterm.Success.Printfln("Switched to %s", status.RequiredName)
	return nil
}

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"status"},
	Short:   "Show the EzKey, balances and available actions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, s, err := connect(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		defer s.Close()

		if err := ensureNetwork(ctx, s); err != nil {
			return err
		}
		spinner, _ := pterm.DefaultSpinner.Start("Reading contracts...")
		snap, err := s.Refresh(ctx)
		if spinner != nil {
			_ = spinner.Stop()
		}
		if err != nil {
			return err
		}
		return showSnapshot(snap)
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Compare the wallet's chain with the required network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, s, err := connect(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		defer s.Close()

		status, err := s.Network(ctx)
		if err != nil {
			return err
		}
		return showNetwork(status)
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Switch the wallet to the required network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, s, err := connect(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		defer s.Close()

		status, err := s.SwitchNetwork(ctx)
		if err != nil {
			return err
		}
		return showNetwork(status)
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run every configured internal balance strategy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, s, err := connect(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		defer s.Close()

		if err := ensureNetwork(ctx, s); err != nil {
			return err
		}
		resp, err := s.Probe(ctx)
		if err != nil {
			return err
		}
		return showProbe(resp)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <address>",
	Short: "Check whether an address is an ERC-20 token contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.wallet.CheckContract(ctx, args[0])
		if err != nil {
			return err
		}
		return showContract(resp)
	},
}
