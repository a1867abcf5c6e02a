// Package trontest 提供各合约类型的合法请求样例，供测试使用
package trontest

import (
	"tron-wallet-core/internal/tron"
	"tron-wallet-core/pkg/wallet/types"
)

const (
	// AddressOne 是私钥 1 对应的地址
	AddressOne = "TMVQGm1qAQYVdetCeGRRkTWYYrLXuHK2HC"
	// AddressAbandon 是 "abandon ... about" 在 m/44'/195'/0'/0/0 的地址
	AddressAbandon = "TUEZSdKsoDHQMeZwihtdoBiN46zxhGWYdH"
)

// DefaultPath 为 m/44'/195'/0'/0/0
var DefaultPath = []uint32{0x8000002c, 0x800000c3, 0x80000000, 0, 0}

// Contracts 返回每种合约类型各一个合法的 ContractMessage
func Contracts() map[tron.Kind]*types.ContractMessage {
	return map[tron.Kind]*types.ContractMessage{
		tron.KindTransfer: {TransferContract: &types.TransferContract{
			ToAddress: AddressOne, Amount: 5000000,
		}},
		tron.KindTransferAsset: {TransferAssetContract: &types.TransferAssetContract{
			AssetName: "1002000", ToAddress: AddressOne, Amount: 42,
		}},
		tron.KindVoteWitness: {VoteWitnessContract: &types.VoteWitnessContract{
			Votes: []types.Vote{
				{VoteAddress: AddressOne, VoteCount: 10},
				{VoteAddress: AddressAbandon, VoteCount: 5},
			},
		}},
		tron.KindWitnessCreate: {WitnessCreateContract: &types.WitnessCreateContract{
			URL: "https://witness.example.org",
		}},
		tron.KindAssetIssue: {AssetIssueContract: &types.AssetIssueContract{
			Name:         "TestToken",
			Abbr:         "TT",
			TotalSupply:  1000000,
			FrozenSupply: []types.FrozenSupply{{FrozenAmount: 1000, FrozenDays: 2}},
			TrxNum:       1,
			Num:          10,
			Precision:    6,
			StartTime:    1700000000000,
			EndTime:      1800000000000,
			Description:  "test token",
			URL:          "https://token.example.org",
		}},
		tron.KindWitnessUpdate: {WitnessUpdateContract: &types.WitnessUpdateContract{
			UpdateURL: "https://new.example.org",
		}},
		tron.KindParticipateAssetIssue: {ParticipateAssetIssueContract: &types.ParticipateAssetIssueContract{
			ToAddress: AddressOne, AssetName: "1002000", Amount: 300,
		}},
		tron.KindAccountUpdate: {AccountUpdateContract: &types.AccountUpdateContract{
			AccountName: "savings",
		}},
		tron.KindFreezeBalance: {FreezeBalanceContract: &types.FreezeBalanceContract{
			FrozenBalance: 2500000, FrozenDuration: 3, Resource: 1,
		}},
		tron.KindUnfreezeBalance: {UnfreezeBalanceContract: &types.UnfreezeBalanceContract{
			ReceiverAddress: AddressOne,
		}},
		tron.KindWithdrawBalance: {WithdrawBalanceContract: &types.WithdrawBalanceContract{}},
		tron.KindUnfreezeAsset:   {UnfreezeAssetContract: &types.UnfreezeAssetContract{}},
		tron.KindUpdateAsset: {UpdateAssetContract: &types.UpdateAssetContract{
			Description: "updated description", URL: "https://token.example.org", NewLimit: 100,
		}},
		tron.KindProposalCreate: {ProposalCreateContract: &types.ProposalCreateContract{
			Parameters: []types.ProposalParameter{{Key: 9, Value: 1}, {Key: 3, Value: 10}, {Key: 11, Value: 40}},
		}},
		tron.KindProposalApprove: {ProposalApproveContract: &types.ProposalApproveContract{
			ProposalID: 7, IsAddApproval: true,
		}},
		tron.KindProposalDelete: {ProposalDeleteContract: &types.ProposalDeleteContract{
			ProposalID: 7,
		}},
	}
}

// Request 返回带有区块引用字段的完整请求
func Request(contract *types.ContractMessage) *types.SignTxRequest {
	return &types.SignTxRequest{
		AddressN:      append([]uint32(nil), DefaultPath...),
		RefBlockBytes: types.HexBytes{0x4a, 0x1f},
		RefBlockHash:  types.HexBytes{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		Expiration:    1700000060000,
		Timestamp:     1700000000000,
		Contract:      contract,
	}
}

// Transaction 对请求执行 Classify，失败时 panic
func Transaction(contract *types.ContractMessage) *tron.Transaction {
	tx, err := tron.Classify(Request(contract))
	if err != nil {
		panic(err)
	}
	return tx
}
