package layout

import (
	"fmt"
	"strconv"

	"tron-wallet-core/internal/tron"
	"tron-wallet-core/pkg/address"
)

const (
	titleSending     = "Confirm sending"
	titleTransaction = "Confirm transaction"
	titleProposal    = "Confirm proposal"
)

// Build 生成交易需要用户依次确认的全部内容。
// 附加数据非空时，"Data attached" 总是排在第一屏。
func Build(tx *tron.Transaction, owner address.Address) ([]PromptSpec, error) {
	if tx == nil || tx.Contract == nil {
		return nil, fmt.Errorf("nothing to confirm")
	}

	var prompts []PromptSpec
	if len(tx.Data) > 0 {
		prompts = append(prompts, *DataPrompt(string(tx.Data)))
	}

	contractPrompts, err := contractPrompts(tx.Contract, owner)
	if err != nil {
		return nil, err
	}
	return append(prompts, contractPrompts...), nil
}

// DataPrompt 显示交易附带的备注
func DataPrompt(data string) *PromptSpec {
	return newPrompt("Data attached", IconConfirm, ButtonConfirmOutput).
		normal(SplitText(data)...)
}

// AddressPrompt 在设备上展示地址供用户核对
func AddressPrompt(addr, path string) *PromptSpec {
	return newPrompt("Confirm address", IconReceive, ButtonAddress).
		mono(SplitAddress(addr)...).
		normal(path)
}

func contractPrompts(contract tron.Contract, owner address.Address) ([]PromptSpec, error) {
	var p *PromptSpec

	switch c := contract.(type) {
	case *tron.Transfer:
		p = newPrompt(titleSending, IconSend, ButtonSignTx).
			bold(FormatAmountTRX(c.Amount)).
			mono(SplitAddress("To: " + c.To.String())...)

	case *tron.TransferAsset:
		p = newPrompt(titleSending, IconSend, ButtonSignTx).
			bold(FormatAmountToken(c.Amount) + " " + c.AssetName).
			mono(SplitAddress("To: " + c.To.String())...)

	case *tron.VoteWitness:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("SR Voting").
			normal(fmt.Sprintf("N. Candidates: %d", len(c.Votes))).
			normal(fmt.Sprintf("Total Votes: %d", c.TotalVotes()))

	case *tron.WitnessCreate:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Apply for SR").
			mono(SplitText("URL: " + c.URL)...)

	case *tron.AssetIssue:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Create Token").
			normal(c.Name).
			normal(fmt.Sprintf("%d %s", c.TotalSupply, c.Abbr)).
			mono(fmt.Sprintf("Ratio %d:%d", c.TrxNum, c.Num))

	case *tron.WitnessUpdate:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Update Witness").
			normal(owner.String()).
			mono(SplitAddress("URL: " + c.UpdateURL)...)

	case *tron.ParticipateAssetIssue:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Token Participate:").
			mono(c.AssetName).
			bold("Amount:").
			mono(FormatAmountToken(c.Amount))

	case *tron.AccountUpdate:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Account Update").
			mono("Name:").
			mono(c.AccountName)

	case *tron.FreezeBalance:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Freeze Balance").
			mono("Amount:").
			bold(FormatAmountTRX(c.FrozenBalance)).
			mono(fmt.Sprintf("Days: %d", c.FrozenDuration))

	case *tron.UnfreezeBalance:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Unfreeze Balance").
			mono(SplitText("Total frozen balance will be unfreeze.")...)

	case *tron.WithdrawBalance:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Withdraw Balance").
			mono(SplitText("Total allowance withdraw to your account.")...)

	case *tron.UnfreezeAsset:
		p = newPrompt(titleTransaction, IconSend, ButtonSignTx).
			bold("Unfreeze Assets").
			mono(SplitText("Unfreeze expired frozen assets.")...)

	case *tron.UpdateAsset:
		p = newPrompt(titleTransaction, IconConfirm, ButtonSignTx).
			bold("Update Token").
			mono(SplitText(c.Description)...).
			mono(c.URL)

	case *tron.ProposalCreate:
		// 每个参数单独一屏
		prompts := make([]PromptSpec, 0, len(c.Parameters))
		for _, param := range c.Parameters {
			prompt := newPrompt(titleProposal, IconConfirm, ButtonSignTx).
				normal(SplitText("Parameter: " + ParameterText(param.Key))...).
				mono(SplitText("Value: " + strconv.FormatInt(param.Value, 10))...)
			prompts = append(prompts, *prompt)
		}
		return prompts, nil

	case *tron.ProposalApprove:
		p = newPrompt(titleTransaction, IconConfirm, ButtonSignTx).
			bold("Proposal Approval").
			mono(fmt.Sprintf("ID: %d", c.ProposalID)).
			mono("Approve: " + strconv.FormatBool(c.IsAddApproval))

	case *tron.ProposalDelete:
		p = newPrompt(titleTransaction, IconConfirm, ButtonSignTx).
			bold("Proposal Delete").
			mono(fmt.Sprintf("ID: %d", c.ProposalID))

	default:
		return nil, fmt.Errorf("no prompt for contract type %s", contract.Kind())
	}

	return []PromptSpec{*p}, nil
}
