package ezkey

import (
	"context"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Contract checker outcomes
const (
	checkInvalidAddress = "invalid address"
	checkNotContract    = "not a contract"
	checkNotToken       = "not a valid ERC-20 token"
)

// CheckContract reports whether address is a deployed ERC-20 token on the active network
func (w *Wallet) CheckContract(ctx context.Context, address string) (*model.ContractCheckResponse, error) {
	resp := &model.ContractCheckResponse{Address: address}
	if !ethcommon.IsHexAddress(address) {
		resp.Error = checkInvalidAddress
		return resp, nil
	}
	addr := ethcommon.HexToAddress(address)
	resp.Address = addr.Hex()
	resp.Valid = true

	c, err := w.bind()
	if err != nil {
		return nil, err
	}

	isContract, err := client.HasCode(ctx, c.Chain, addr)
	if err != nil {
		return nil, err
	}
	if !isContract {
		resp.Error = checkNotContract
		return resp, nil
	}
	resp.IsContract = true

	token, err := c.NewToken(addr)
	if err != nil {
		return nil, err
	}
	name, err := token.Name(ctx)
	if err != nil {
		resp.Error = checkNotToken
		return resp, nil
	}
	symbol, err := token.Symbol(ctx)
	if err != nil {
		resp.Error = checkNotToken
		return resp, nil
	}
	decimals, err := token.Decimals(ctx)
	if err != nil {
		resp.Error = checkNotToken
		return resp, nil
	}

	resp.IsToken = true
	resp.Name = name
	resp.Symbol = symbol
	resp.Decimals = decimals
	return resp, nil
}
