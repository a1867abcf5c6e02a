package tron

import (
	"tron-wallet-core/pkg/address"
)

// Kind 与 TRON protocol.Transaction.Contract.ContractType 的枚举值一致
type Kind int32

const (
	KindTransfer              Kind = 1
	KindTransferAsset         Kind = 2
	KindVoteWitness           Kind = 4
	KindWitnessCreate         Kind = 5
	KindAssetIssue            Kind = 6
	KindWitnessUpdate         Kind = 8
	KindParticipateAssetIssue Kind = 9
	KindAccountUpdate         Kind = 10
	KindFreezeBalance         Kind = 11
	KindUnfreezeBalance       Kind = 12
	KindWithdrawBalance       Kind = 13
	KindUnfreezeAsset         Kind = 14
	KindUpdateAsset           Kind = 15
	KindProposalCreate        Kind = 16
	KindProposalApprove       Kind = 17
	KindProposalDelete        Kind = 18
)

// Kinds 为全部支持的合约类型，顺序即分发时的检查顺序
var Kinds = []Kind{
	KindTransfer,
	KindTransferAsset,
	KindVoteWitness,
	KindWitnessCreate,
	KindAssetIssue,
	KindWitnessUpdate,
	KindParticipateAssetIssue,
	KindAccountUpdate,
	KindFreezeBalance,
	KindUnfreezeBalance,
	KindWithdrawBalance,
	KindUnfreezeAsset,
	KindUpdateAsset,
	KindProposalCreate,
	KindProposalApprove,
	KindProposalDelete,
}

var kindNames = map[Kind]string{
	KindTransfer:              "TransferContract",
	KindTransferAsset:         "TransferAssetContract",
	KindVoteWitness:           "VoteWitnessContract",
	KindWitnessCreate:         "WitnessCreateContract",
	KindAssetIssue:            "AssetIssueContract",
	KindWitnessUpdate:         "WitnessUpdateContract",
	KindParticipateAssetIssue: "ParticipateAssetIssueContract",
	KindAccountUpdate:         "AccountUpdateContract",
	KindFreezeBalance:         "FreezeBalanceContract",
	KindUnfreezeBalance:       "UnfreezeBalanceContract",
	KindWithdrawBalance:       "WithdrawBalanceContract",
	KindUnfreezeAsset:         "UnfreezeAssetContract",
	KindUpdateAsset:           "UpdateAssetContract",
	KindProposalCreate:        "ProposalCreateContract",
	KindProposalApprove:       "ProposalApproveContract",
	KindProposalDelete:        "ProposalDeleteContract",
}

// String 返回 protobuf 消息名，同时用于 Any.type_url
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownContract"
}

// Resource 为冻结获得的资源类型
type Resource int32

const (
	ResourceBandwidth Resource = 0
	ResourceEnergy    Resource = 1
)

func (r Resource) String() string {
	if r == ResourceEnergy {
		return "ENERGY"
	}
	return "BANDWIDTH"
}

// Contract 是已校验的合约，只有本包内的类型可以实现
type Contract interface {
	Kind() Kind
	sealed()
}

type Transfer struct {
	To     address.Address
	Amount int64 // sun
}

type TransferAsset struct {
	AssetName string
	To        address.Address
	Amount    int64
}

type Vote struct {
	Address address.Address
	Count   int64
}

type VoteWitness struct {
	Votes   []Vote
	Support bool
}

// TotalVotes 返回所有候选人的票数之和
func (v *VoteWitness) TotalVotes() int64 {
	var total int64
	for _, vote := range v.Votes {
		total += vote.Count
	}
	return total
}

type WitnessCreate struct {
	URL string
}

type FrozenSupply struct {
	Amount int64
	Days   int64
}

type AssetIssue struct {
	Name                    string
	Abbr                    string
	TotalSupply             int64
	FrozenSupply            []FrozenSupply
	TrxNum                  int32
	Num                     int32
	Precision               int32
	StartTime               int64
	EndTime                 int64
	Description             string
	URL                     string
	FreeAssetNetLimit       int64
	PublicFreeAssetNetLimit int64
}

type WitnessUpdate struct {
	UpdateURL string
}

type ParticipateAssetIssue struct {
	To        address.Address
	AssetName string
	Amount    int64
}

type AccountUpdate struct {
	AccountName string
}

type FreezeBalance struct {
	FrozenBalance  int64 // sun
	FrozenDuration int64 // 天
	Resource       Resource
	Receiver       address.Address // 为零值表示冻结给自己
}

type UnfreezeBalance struct {
	Resource Resource
	Receiver address.Address
}

type WithdrawBalance struct{}

type UnfreezeAsset struct{}

type UpdateAsset struct {
	Description    string
	URL            string
	NewLimit       int64
	NewPublicLimit int64
}

type ProposalParameter struct {
	Key   int64
	Value int64
}

type ProposalCreate struct {
	Parameters []ProposalParameter // 保持请求中的顺序
}

type ProposalApprove struct {
	ProposalID    int64
	IsAddApproval bool
}

type ProposalDelete struct {
	ProposalID int64
}

func (*Transfer) Kind() Kind              { return KindTransfer }
func (*TransferAsset) Kind() Kind         { return KindTransferAsset }
func (*VoteWitness) Kind() Kind           { return KindVoteWitness }
func (*WitnessCreate) Kind() Kind         { return KindWitnessCreate }
func (*AssetIssue) Kind() Kind            { return KindAssetIssue }
func (*WitnessUpdate) Kind() Kind         { return KindWitnessUpdate }
func (*ParticipateAssetIssue) Kind() Kind { return KindParticipateAssetIssue }
func (*AccountUpdate) Kind() Kind         { return KindAccountUpdate }
func (*FreezeBalance) Kind() Kind         { return KindFreezeBalance }
func (*UnfreezeBalance) Kind() Kind       { return KindUnfreezeBalance }
func (*WithdrawBalance) Kind() Kind       { return KindWithdrawBalance }
func (*UnfreezeAsset) Kind() Kind         { return KindUnfreezeAsset }
func (*UpdateAsset) Kind() Kind           { return KindUpdateAsset }
func (*ProposalCreate) Kind() Kind        { return KindProposalCreate }
func (*ProposalApprove) Kind() Kind       { return KindProposalApprove }
func (*ProposalDelete) Kind() Kind        { return KindProposalDelete }

func (*Transfer) sealed()              {}
func (*TransferAsset) sealed()         {}
func (*VoteWitness) sealed()           {}
func (*WitnessCreate) sealed()         {}
func (*AssetIssue) sealed()            {}
func (*WitnessUpdate) sealed()         {}
func (*ParticipateAssetIssue) sealed() {}
func (*AccountUpdate) sealed()         {}
func (*FreezeBalance) sealed()         {}
func (*UnfreezeBalance) sealed()       {}
func (*WithdrawBalance) sealed()       {}
func (*UnfreezeAsset) sealed()         {}
func (*UpdateAsset) sealed()           {}
func (*ProposalCreate) sealed()        {}
func (*ProposalApprove) sealed()       {}
func (*ProposalDelete) sealed()        {}

// Transaction 是分发校验后的待签名交易
type Transaction struct {
	Path []uint32

	RefBlockBytes []byte
	RefBlockHash  []byte
	Expiration    int64
	Timestamp     int64
	FeeLimit      int64

	// Data 为附加备注的原始字节，为空表示没有附加数据
	Data []byte

	Contract Contract
}
