package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/pterm/pterm"
)

func yesNo(b bool) string {
	if b {
		return pterm.LightGreen("yes")
	}
	return pterm.Gray("no")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func showNetwork(status model.NetworkStatus) error {
	pterm.DefaultSection.Println("Network")
	data := pterm.TableData{
		{"Wallet chain", fmt.Sprintf("%s (%d)", status.Name, status.ChainID)},
		{"Required", fmt.Sprintf("%s (%d)", status.RequiredName, status.RequiredChainID)},
		{"Correct", yesNo(status.Correct)},
	}
	if err := pterm.DefaultTable.WithHasHeader(false).WithData(data).Render(); err != nil {
		return err
	}
	if !status.Correct && status.SwitchAvailable {
		pterm.Warning.Printfln("Wrong network: run ezkey switch to move the wallet to %s", status.RequiredName)
	}
	return nil
}

func showSnapshot(snap *model.UserSnapshot) error {
	pterm.DefaultSection.Println("EzKey")

	level := snap.LevelName
	if !snap.LevelKnown {
		level = fmt.Sprintf("%s (%d)", snap.LevelName, snap.Level)
	}
	data := pterm.TableData{
		{"Address", snap.Address},
		{"Key", yesNo(snap.HasKey)},
		{"Level", level},
		{"Token ID", orDash(snap.TokenID)},
		{"Image", orDash(snap.Image)},
	}
	if snap.Metadata != nil && snap.Metadata.Name != "" {
		data = append(data, []string{"Name", snap.Metadata.Name})
	}
	data = append(data,
		[]string{"ezPOL", snap.EzPol},
		[]string{"ezSUSHI", snap.EzSushi},
		[]string{"Balance source", snap.BalanceSource},
		[]string{snap.Ezoch.Symbol, snap.Ezoch.Amount},
		[]string{"Burn reward", snap.Reward.Display},
		[]string{"Can claim", yesNo(snap.CanClaim)},
	)
	if snap.LastClaim != nil {
		data = append(data, []string{"Last claim", snap.LastClaim.Local().Format(time.RFC1123)})
	}
	if c := snap.Cooldown; c != nil {
		next := "ready"
		if !c.Ready {
			next = fmt.Sprintf("%s (in %s)", c.NextClaimAt.Local().Format(time.RFC1123), time.Duration(c.RemainingSeconds)*time.Second)
		}
		data = append(data, []string{"Next claim", next})
	}
	if err := pterm.DefaultTable.WithHasHeader(false).WithData(data).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Actions")
	g := snap.Gates
	claim := yesNo(g.Claim)
	if g.ClaimRequirement != "" {
		claim += " (needs " + g.ClaimRequirement + ")"
	}
	gates := pterm.TableData{
		{"Action", "Available"},
		{"mint", yesNo(g.Mint)},
		{"claim", claim},
		{"upgrade silver", yesNo(g.UpgradeSilver)},
		{"upgrade gold", yesNo(g.UpgradeGold)},
		{"burn", yesNo(g.Burn)},
		{"transfer", yesNo(g.Transfer)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(gates).Render(); err != nil {
		return err
	}
	if snap.BalanceSource == ezkey.SourceDefault && snap.HasKey {
		pterm.Warning.Println("Internal balances could not be read from the contract and are shown as 0")
	}
	return nil
}

func showEstimate(est *model.GasEstimate) error {
	if !est.Available {
		pterm.Warning.Printfln("Estimate for %s unavailable: %s", est.Action, orDash(est.Error))
		return nil
	}
	data := pterm.TableData{
		{"Action", est.Action},
		{"Gas", strconv.FormatUint(est.GasUnits, 10)},
		{"Gas price (gwei)", est.GasPrice},
		{"Cost (MATIC)", est.CostMATIC},
		{"Cost (USD)", orDash(est.CostUSD)},
	}
	return pterm.DefaultTable.WithHasHeader(false).WithData(data).Render()
}

func showActionResult(resp *model.ActionResponse) error {
	pterm.Success.Printfln("%s confirmed in block %d", resp.Action, resp.Tx.BlockNumber)
	data := pterm.TableData{
		{"Tx", resp.Tx.TxHash},
		{"Gas used", strconv.FormatUint(resp.Tx.GasUsed, 10)},
	}
	if resp.Tx.ExplorerURL != "" {
		data = append(data, []string{"Explorer", resp.Tx.ExplorerURL})
	}
	if err := pterm.DefaultTable.WithHasHeader(false).WithData(data).Render(); err != nil {
		return err
	}
	if resp.Warning != "" {
		pterm.Warning.Println(resp.Warning)
	}
	if resp.Snapshot != nil {
		return showSnapshot(resp.Snapshot)
	}
	return nil
}

func showProbe(resp *model.BalanceProbeResponse) error {
	pterm.DefaultSection.Printfln("Balance strategies for %s", resp.Address)
	data := pterm.TableData{{"Strategy", "ezPOL", "ezSUSHI", "Error"}}
	for _, r := range resp.Results {
		data = append(data, []string{r.Strategy, orDash(r.EzPol), orDash(r.EzSushi), orDash(r.Error)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showContract(resp *model.ContractCheckResponse) error {
	data := pterm.TableData{
		{"Address", resp.Address},
		{"Valid address", yesNo(resp.Valid)},
		{"Contract", yesNo(resp.IsContract)},
		{"ERC-20", yesNo(resp.IsToken)},
	}
	if resp.IsToken {
		data = append(data,
			[]string{"Name", resp.Name},
			[]string{"Symbol", resp.Symbol},
			[]string{"Decimals", strconv.Itoa(int(resp.Decimals))},
		)
	}
	if resp.Error != "" {
		data = append(data, []string{"Error", resp.Error})
	}
	return pterm.DefaultTable.WithHasHeader(false).WithData(data).Render()
}
