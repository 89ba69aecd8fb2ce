package main

import (
	"github.com/AlexZinkM/ezkey-wallet/ezkey"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var estimateParams ezkey.ActionParams

var estimateCmd = &cobra.Command{
	Use:       "estimate <action>",
	Short:     "Estimate the gas and fee of an action",
	Long:      "Estimate the gas and fee of mint, claim, upgrade-silver, upgrade-gold, burn, transfer or approve without submitting it.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"mint", "claim", "upgrade-silver", "upgrade-gold", "burn", "transfer", "approve"},
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := ezkey.ParseAction(args[0])
		if err != nil {
			return err
		}

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
		est, err := s.Estimate(ctx, action, estimateParams)
		if err != nil {
			return err
		}
		return showEstimate(est)
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateParams.To, "to", "", "transfer destination")
	estimateCmd.Flags().StringVar(&estimateParams.Spender, "spender", "", "approve spender")
	estimateCmd.Flags().StringVar(&estimateParams.Amount, "amount", "", "approve amount in EZOCH")
}

// runAction connects, refreshes and executes one action
func runAction(cmd *cobra.Command, action ezkey.Action, params ezkey.ActionParams) error {
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
	if _, err := s.Refresh(ctx); err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Waiting for confirmation...")
	resp, err := s.Execute(ctx, action, params)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		log.Warn("action failed", zap.String("action", string(action)), zap.String("kind", string(ezkey.KindOf(err))), zap.Error(err))
		return err
	}
	return showActionResult(resp)
}

func actionCmds() []*cobra.Command {
	simple := func(action ezkey.Action, short string) *cobra.Command {
		return &cobra.Command{
			Use:   string(action),
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAction(cmd, action, ezkey.ActionParams{})
			},
		}
	}

	upgrade := &cobra.Command{
		Use:       "upgrade <silver|gold>",
		Short:     "Upgrade the EzKey to silver or gold",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"silver", "gold"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := ezkey.ParseAction("upgrade-" + args[0])
			if err != nil {
				return err
			}
			if action != ezkey.ActionUpgradeSilver && action != ezkey.ActionUpgradeGold {
				return cmd.Usage()
			}
			return runAction(cmd, action, ezkey.ActionParams{})
		},
	}

	transfer := &cobra.Command{
		Use:   "transfer <to>",
		Short: "Transfer the EzKey to another address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, ezkey.ActionTransfer, ezkey.ActionParams{To: args[0]})
		},
	}

	approve := &cobra.Command{
		Use:   "approve <spender> <amount>",
		Short: "Approve a spender for an EZOCH amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, ezkey.ActionApprove, ezkey.ActionParams{Spender: args[0], Amount: args[1]})
		},
	}

	return []*cobra.Command{
		simple(ezkey.ActionMint, "Mint an EzKey"),
		simple(ezkey.ActionClaim, "Claim EZOCH rewards"),
		simple(ezkey.ActionBurn, "Burn the EzKey for its EZOCH reward"),
		upgrade,
		transfer,
		approve,
	}
}
