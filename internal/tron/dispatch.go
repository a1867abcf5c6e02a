package tron

import (
	"fmt"
	"math"
	"strings"

	"tron-wallet-core/pkg/address"
	"tron-wallet-core/pkg/errno"
	"tron-wallet-core/pkg/wallet/types"
)

// Classify 确定请求中唯一被填充的合约类型并校验其字段。
// 没有填充或填充多个合约、字段缺失或格式错误时返回 ErrInvalidTransaction。
func Classify(req *types.SignTxRequest) (*Transaction, error) {
	if req == nil || req.Contract == nil {
		return nil, invalid("contract is missing")
	}

	populated := populatedKinds(req.Contract)
	switch len(populated) {
	case 0:
		return nil, invalid("no contract populated")
	case 1:
	default:
		names := make([]string, len(populated))
		for i, k := range populated {
			names[i] = k.String()
		}
		return nil, invalid(fmt.Sprintf("more than one contract populated (%s)", strings.Join(names, ", ")))
	}

	if err := getValidator().Struct(req); err != nil {
		return nil, invalid(errorMsg(err))
	}

	contract, err := convert(populated[0], req.Contract)
	if err != nil {
		return nil, invalid(err.Error())
	}

	tx := &Transaction{
		Path:          append([]uint32(nil), req.AddressN...),
		RefBlockBytes: append([]byte(nil), req.RefBlockBytes...),
		RefBlockHash:  append([]byte(nil), req.RefBlockHash...),
		Expiration:    req.Expiration,
		Timestamp:     req.Timestamp,
		FeeLimit:      req.FeeLimit,
		Contract:      contract,
	}
	if req.Data != "" {
		tx.Data = []byte(req.Data)
	}
	return tx, nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", errno.ErrInvalidTransaction, reason)
}

func populatedKinds(c *types.ContractMessage) []Kind {
	present := map[Kind]bool{
		KindTransfer:              c.TransferContract != nil,
		KindTransferAsset:         c.TransferAssetContract != nil,
		KindVoteWitness:           c.VoteWitnessContract != nil,
		KindWitnessCreate:         c.WitnessCreateContract != nil,
		KindAssetIssue:            c.AssetIssueContract != nil,
		KindWitnessUpdate:         c.WitnessUpdateContract != nil,
		KindParticipateAssetIssue: c.ParticipateAssetIssueContract != nil,
		KindAccountUpdate:         c.AccountUpdateContract != nil,
		KindFreezeBalance:         c.FreezeBalanceContract != nil,
		KindUnfreezeBalance:       c.UnfreezeBalanceContract != nil,
		KindWithdrawBalance:       c.WithdrawBalanceContract != nil,
		KindUnfreezeAsset:         c.UnfreezeAssetContract != nil,
		KindUpdateAsset:           c.UpdateAssetContract != nil,
		KindProposalCreate:        c.ProposalCreateContract != nil,
		KindProposalApprove:       c.ProposalApproveContract != nil,
		KindProposalDelete:        c.ProposalDeleteContract != nil,
	}

	var kinds []Kind
	for _, k := range Kinds {
		if present[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// convert 将已通过校验的线上结构转换为对应的 Contract
func convert(kind Kind, c *types.ContractMessage) (Contract, error) {
	switch kind {
	case KindTransfer:
		m := c.TransferContract
		to, err := decodeAddress("to_address", m.ToAddress)
		if err != nil {
			return nil, err
		}
		return &Transfer{To: to, Amount: m.Amount}, nil

	case KindTransferAsset:
		m := c.TransferAssetContract
		to, err := decodeAddress("to_address", m.ToAddress)
		if err != nil {
			return nil, err
		}
		return &TransferAsset{AssetName: m.AssetName, To: to, Amount: m.Amount}, nil

	case KindVoteWitness:
		m := c.VoteWitnessContract
		votes := make([]Vote, 0, len(m.Votes))
		var total int64
		for _, v := range m.Votes {
			addr, err := decodeAddress("vote_address", v.VoteAddress)
			if err != nil {
				return nil, err
			}
			// 显示的总票数必须与签名内容一致
			if total > math.MaxInt64-v.VoteCount {
				return nil, invalid("total vote count overflows")
			}
			total += v.VoteCount
			votes = append(votes, Vote{Address: addr, Count: v.VoteCount})
		}
		return &VoteWitness{Votes: votes, Support: m.Support}, nil

	case KindWitnessCreate:
		return &WitnessCreate{URL: c.WitnessCreateContract.URL}, nil

	case KindAssetIssue:
		m := c.AssetIssueContract
		frozen := make([]FrozenSupply, 0, len(m.FrozenSupply))
		for _, f := range m.FrozenSupply {
			frozen = append(frozen, FrozenSupply{Amount: f.FrozenAmount, Days: f.FrozenDays})
		}
		return &AssetIssue{
			Name:                    m.Name,
			Abbr:                    m.Abbr,
			TotalSupply:             m.TotalSupply,
			FrozenSupply:            frozen,
			TrxNum:                  m.TrxNum,
			Num:                     m.Num,
			Precision:               m.Precision,
			StartTime:               m.StartTime,
			EndTime:                 m.EndTime,
			Description:             m.Description,
			URL:                     m.URL,
			FreeAssetNetLimit:       m.FreeAssetNetLimit,
			PublicFreeAssetNetLimit: m.PublicFreeAssetNetLimit,
		}, nil

	case KindWitnessUpdate:
		return &WitnessUpdate{UpdateURL: c.WitnessUpdateContract.UpdateURL}, nil

	case KindParticipateAssetIssue:
		m := c.ParticipateAssetIssueContract
		to, err := decodeAddress("to_address", m.ToAddress)
		if err != nil {
			return nil, err
		}
		return &ParticipateAssetIssue{To: to, AssetName: m.AssetName, Amount: m.Amount}, nil

	case KindAccountUpdate:
		return &AccountUpdate{AccountName: c.AccountUpdateContract.AccountName}, nil

	case KindFreezeBalance:
		m := c.FreezeBalanceContract
		receiver, err := decodeOptionalAddress("receiver_address", m.ReceiverAddress)
		if err != nil {
			return nil, err
		}
		return &FreezeBalance{
			FrozenBalance:  m.FrozenBalance,
			FrozenDuration: m.FrozenDuration,
			Resource:       Resource(m.Resource),
			Receiver:       receiver,
		}, nil

	case KindUnfreezeBalance:
		m := c.UnfreezeBalanceContract
		receiver, err := decodeOptionalAddress("receiver_address", m.ReceiverAddress)
		if err != nil {
			return nil, err
		}
		return &UnfreezeBalance{Resource: Resource(m.Resource), Receiver: receiver}, nil

	case KindWithdrawBalance:
		return &WithdrawBalance{}, nil

	case KindUnfreezeAsset:
		return &UnfreezeAsset{}, nil

	case KindUpdateAsset:
		m := c.UpdateAssetContract
		return &UpdateAsset{
			Description:    m.Description,
			URL:            m.URL,
			NewLimit:       m.NewLimit,
			NewPublicLimit: m.NewPublicLimit,
		}, nil

	case KindProposalCreate:
		m := c.ProposalCreateContract
		params := make([]ProposalParameter, 0, len(m.Parameters))
		for _, p := range m.Parameters {
			params = append(params, ProposalParameter{Key: p.Key, Value: p.Value})
		}
		return &ProposalCreate{Parameters: params}, nil

	case KindProposalApprove:
		m := c.ProposalApproveContract
		return &ProposalApprove{ProposalID: m.ProposalID, IsAddApproval: m.IsAddApproval}, nil

	case KindProposalDelete:
		return &ProposalDelete{ProposalID: c.ProposalDeleteContract.ProposalID}, nil
	}

	return nil, fmt.Errorf("unsupported contract type %d", kind)
}

func decodeAddress(field, s string) (address.Address, error) {
	addr, err := address.Decode(s)
	if err != nil {
		return addr, fmt.Errorf("%s: %w", field, err)
	}
	return addr, nil
}

func decodeOptionalAddress(field, s string) (address.Address, error) {
	if s == "" {
		return address.Address{}, nil
	}
	return decodeAddress(field, s)
}
