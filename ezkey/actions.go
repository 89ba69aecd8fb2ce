package ezkey

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/common"
	"github.com/AlexZinkM/ezkey-wallet/internal/metrics"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Action is a state-changing contract call
type Action string

const (
	ActionMint          Action = "mint"
	ActionClaim         Action = "claim"
	ActionUpgradeSilver Action = "upgrade-silver"
	ActionUpgradeGold   Action = "upgrade-gold"
	ActionBurn          Action = "burn"
	ActionTransfer      Action = "transfer"
	ActionApprove       Action = "approve"
)

var actions = map[Action]bool{
	ActionMint:          true,
	ActionClaim:         true,
	ActionUpgradeSilver: true,
	ActionUpgradeGold:   true,
	ActionBurn:          true,
	ActionTransfer:      true,
	ActionApprove:       true,
}

// ParseAction validates an action name
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(s))
	if !actions[a] {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// ActionParams carries the arguments of transfer and approve
type ActionParams struct {
	To      string
	Spender string
	Amount  string
}

// txCall is one prepared transaction
type txCall struct {
	summary string
	to      ethcommon.Address
	data    []byte
	send    func(opts *bind.TransactOpts) (*types.Transaction, error)
}

// Execute validates the local precondition, submits one transaction, waits for
// one confirmation and refreshes the snapshot. Only one action runs per session.
func (s *Session) Execute(ctx context.Context, action Action, params ActionParams) (*model.ActionResponse, error) {
	if !s.actionMu.TryLock() {
		metrics.Actions.WithLabelValues(string(action), string(KindBusy)).Inc()
		return nil, &ActionError{Kind: KindBusy, Action: action, Message: kindMessages[KindBusy]}
	}
	defer s.actionMu.Unlock()

	resp, err := s.execute(ctx, action, params)
	if err != nil {
		ae := newActionError(action, err)
		ae.Action = action
		metrics.Actions.WithLabelValues(string(action), string(ae.Kind)).Inc()
		s.log.Warn("action failed", zap.String("action", string(action)), zap.String("kind", string(ae.Kind)), zap.Error(err))
		return nil, ae
	}
	metrics.Actions.WithLabelValues(string(action), "success").Inc()
	return resp, nil
}

func (s *Session) execute(ctx context.Context, action Action, params ActionParams) (*model.ActionResponse, error) {
	if s.closed.Load() {
		return nil, errSessionClosed
	}
	c, err := s.wallet.contracts(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.current(ctx, c)
	if err != nil {
		return nil, err
	}

	call, err := s.prepare(ctx, c, snap, action, params)
	if err != nil {
		return nil, err
	}

	opts, err := s.wallet.provider.TransactOpts(ctx, call.summary)
	if err != nil {
		return nil, err
	}
	opts.GasLimit = s.wallet.opts.GasLimit

	tx, err := call.send(opts)
	if err != nil {
		return nil, err
	}
	s.log.Info("transaction submitted", zap.String("action", string(action)), zap.String("tx", tx.Hash().Hex()))

	receipt, err := bind.WaitMined(ctx, c.Chain, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for confirmation of %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s: %w", tx.Hash().Hex(), errReceiptFailed)
	}

	resp := &model.ActionResponse{
		Action: string(action),
		Tx: model.TxResult{
			TxHash:      tx.Hash().Hex(),
			GasUsed:     receipt.GasUsed,
			ExplorerURL: s.wallet.opts.Required.TxURL(tx.Hash().Hex()),
			MinedAt:     s.wallet.opts.Now().UTC(),
		},
	}
	if receipt.BlockNumber != nil {
		resp.Tx.BlockNumber = receipt.BlockNumber.Uint64()
	}
	s.log.Info("transaction confirmed", zap.String("action", string(action)), zap.Uint64("block", resp.Tx.BlockNumber), zap.Uint64("gasUsed", receipt.GasUsed))

	refreshed, err := s.Refresh(ctx)
	if err != nil {
		resp.Warning = fmt.Sprintf("transaction confirmed but refresh failed: %v", err)
	} else {
		resp.Snapshot = refreshed
	}
	return resp, nil
}

// current returns the latest snapshot, building one when none exists yet
func (s *Session) current(ctx context.Context, c *Contracts) (*model.UserSnapshot, error) {
	if snap := s.snapshot.Load(); snap != nil {
		return snap, nil
	}
	snap, err := s.wallet.view.Build(ctx, c, s.address)
	if err != nil {
		return nil, err
	}
	s.snapshot.Store(snap)
	return snap, nil
}

// prepare checks the local precondition of action and packs its call
func (s *Session) prepare(ctx context.Context, c *Contracts, snap *model.UserSnapshot, action Action, params ActionParams) (*txCall, error) {
	key := c.Key
	keyCall := func(summary, method string, send func(*bind.TransactOpts) (*types.Transaction, error), args ...any) (*txCall, error) {
		data, err := key.Pack(method, args...)
		if err != nil {
			return nil, err
		}
		return &txCall{summary: summary, to: key.Address(), data: data, send: send}, nil
	}

	switch action {
	case ActionMint:
		if snap.HasKey {
			return nil, preconditionError(action, "you already own an EzKey")
		}
		if !snap.Gates.Mint {
			return nil, preconditionError(action, "insufficient EZOCH balance (minimum %d)", mintAmount)
		}
		return keyCall("mint an EzKey", client.MethodMintKey, key.MintKey)

	case ActionClaim:
		if !snap.HasKey {
			return nil, preconditionError(action, "you need an EzKey to claim")
		}
		if !snap.Gates.Claim {
			if snap.Gates.ClaimRequirement == "" {
				return nil, preconditionError(action, "cannot claim at an unknown level")
			}
			return nil, preconditionError(action, "you need at least %s to claim", snap.Gates.ClaimRequirement)
		}
		return keyCall("claim EzKey reward", client.MethodClaimReward, key.ClaimReward)

	case ActionUpgradeSilver:
		if err := upgradeAllowed(action, snap, LevelBronze, snap.Gates.UpgradeSilver, silverUpgradeAmount); err != nil {
			return nil, err
		}
		return keyCall("upgrade EzKey to Silver", client.MethodUpgradeToSilver, key.UpgradeToSilver)

	case ActionUpgradeGold:
		if err := upgradeAllowed(action, snap, LevelSilver, snap.Gates.UpgradeGold, goldUpgradeAmount); err != nil {
			return nil, err
		}
		return keyCall("upgrade EzKey to Gold", client.MethodUpgradeToGold, key.UpgradeToGold)

	case ActionBurn:
		if !snap.HasKey {
			return nil, preconditionError(action, "you need an EzKey to burn")
		}
		if !snap.Gates.Burn {
			return nil, preconditionError(action, "no internal balance to burn")
		}
		summary := fmt.Sprintf("burn EzKey for about %s EZOCH", snap.Reward.Display)
		return keyCall(summary, client.MethodBurnKey, key.BurnKeyForEzoch)

	case ActionTransfer:
		to, err := s.validateTransfer(snap, params.To)
		if err != nil {
			return nil, err
		}
		tokenID, err := s.tokenID(ctx, key, snap)
		if err != nil {
			return nil, err
		}
		send := func(opts *bind.TransactOpts) (*types.Transaction, error) {
			return key.TransferFrom(opts, s.address, to, tokenID)
		}
		summary := fmt.Sprintf("transfer EzKey #%s to %s", tokenID.String(), to.Hex())
		return keyCall(summary, client.MethodTransferFrom, send, s.address, to, tokenID)

	case ActionApprove:
		return s.prepareApprove(c, params)

	default:
		return nil, preconditionError(action, "unknown action %q", action)
	}
}

// upgradeAllowed checks the key, the holder's level and the internal balances
func upgradeAllowed(action Action, snap *model.UserSnapshot, from Level, gate bool, amount int64) error {
	if !snap.HasKey {
		return preconditionError(action, "you need an EzKey to upgrade")
	}
	if gate {
		return nil
	}
	if Level(snap.Level) != from || !snap.LevelKnown {
		return preconditionError(action, "only %s holders can do this upgrade", from)
	}
	return preconditionError(action, "you need at least %d Ez-POL and %d Ez-SUSHI internal", amount, amount)
}

// validateTransfer rejects malformed destinations and the sender's own address
func (s *Session) validateTransfer(snap *model.UserSnapshot, to string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(to) {
		return ethcommon.Address{}, preconditionError(ActionTransfer, "invalid destination address")
	}
	if strings.EqualFold(ethcommon.HexToAddress(to).Hex(), s.address.Hex()) {
		return ethcommon.Address{}, preconditionError(ActionTransfer, "cannot transfer to your own address")
	}
	if !snap.HasKey {
		return ethcommon.Address{}, preconditionError(ActionTransfer, "you need an EzKey to transfer")
	}
	return ethcommon.HexToAddress(to), nil
}

func (s *Session) tokenID(ctx context.Context, key KeyReader, snap *model.UserSnapshot) (*big.Int, error) {
	if id, ok := new(big.Int).SetString(snap.TokenID, 10); ok {
		return id, nil
	}
	id, err := key.TokenOfOwnerByIndex(ctx, s.address, new(big.Int))
	if err != nil {
		return nil, fmt.Errorf("failed to read token id: %w", err)
	}
	return id, nil
}

func (s *Session) prepareApprove(c *Contracts, params ActionParams) (*txCall, error) {
	if !ethcommon.IsHexAddress(params.Spender) {
		return nil, preconditionError(ActionApprove, "invalid spender address")
	}
	spender := ethcommon.HexToAddress(params.Spender)

	decimals := common.EtherDecimals
	if snap := s.snapshot.Load(); snap != nil {
		decimals = int(snap.Ezoch.Decimals)
	}
	amount, err := common.ParseUnits(params.Amount, decimals)
	if err != nil || amount.Sign() <= 0 {
		return nil, preconditionError(ActionApprove, "invalid amount %q", params.Amount)
	}

	data, err := c.Token.Pack(client.MethodApprove, spender, amount)
	if err != nil {
		return nil, err
	}
	return &txCall{
		summary: fmt.Sprintf("approve %s EZOCH for %s", params.Amount, spender.Hex()),
		to:      c.Token.Address(),
		data:    data,
		send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
			return c.Token.Approve(opts, spender, amount)
		},
	}, nil
}
