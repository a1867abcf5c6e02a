package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// SignTxRequest 是主机发给设备的待签名交易。
// contract 中各字段均可为空，设备在分发时检查恰好只有一个被填充。
type SignTxRequest struct {
	// AddressN 为签名密钥的派生路径，例如 m/44'/195'/0'/0/0
	AddressN []uint32 `json:"address_n" validate:"max=10"`

	RefBlockBytes HexBytes `json:"ref_block_bytes,omitempty" validate:"omitempty,len=2"`
	RefBlockHash  HexBytes `json:"ref_block_hash,omitempty" validate:"omitempty,len=8"`
	Expiration    int64    `json:"expiration,omitempty" validate:"gte=0"` // ms
	Timestamp     int64    `json:"timestamp,omitempty" validate:"gte=0"`  // ms
	FeeLimit      int64    `json:"fee_limit,omitempty" validate:"gte=0"`  // sun

	// Data 为附加备注，非空时需要用户单独确认
	Data string `json:"data,omitempty" validate:"max=1024"`

	Contract *ContractMessage `json:"contract"`
}

// ContractMessage 对应 TRON 的合约类型，一次只能填充其中一个
type ContractMessage struct {
	TransferContract              *TransferContract              `json:"transfer_contract,omitempty"`
	TransferAssetContract         *TransferAssetContract         `json:"transfer_asset_contract,omitempty"`
	VoteWitnessContract           *VoteWitnessContract           `json:"vote_witness_contract,omitempty"`
	WitnessCreateContract         *WitnessCreateContract         `json:"witness_create_contract,omitempty"`
	AssetIssueContract            *AssetIssueContract            `json:"asset_issue_contract,omitempty"`
	WitnessUpdateContract         *WitnessUpdateContract         `json:"witness_update_contract,omitempty"`
	ParticipateAssetIssueContract *ParticipateAssetIssueContract `json:"participate_asset_issue_contract,omitempty"`
	AccountUpdateContract         *AccountUpdateContract         `json:"account_update_contract,omitempty"`
	FreezeBalanceContract         *FreezeBalanceContract         `json:"freeze_balance_contract,omitempty"`
	UnfreezeBalanceContract       *UnfreezeBalanceContract       `json:"unfreeze_balance_contract,omitempty"`
	WithdrawBalanceContract       *WithdrawBalanceContract       `json:"withdraw_balance_contract,omitempty"`
	UnfreezeAssetContract         *UnfreezeAssetContract         `json:"unfreeze_asset_contract,omitempty"`
	UpdateAssetContract           *UpdateAssetContract           `json:"update_asset_contract,omitempty"`
	ProposalCreateContract        *ProposalCreateContract        `json:"proposal_create_contract,omitempty"`
	ProposalApproveContract       *ProposalApproveContract       `json:"proposal_approve_contract,omitempty"`
	ProposalDeleteContract        *ProposalDeleteContract        `json:"proposal_delete_contract,omitempty"`
}

// 地址字段均为 Base58Check 字符串 (T...)，金额单位为 sun (1 TRX = 1,000,000 sun)

type TransferContract struct {
	ToAddress string `json:"to_address" validate:"required,tronaddr"`
	Amount    int64  `json:"amount" validate:"gt=0"`
}

type TransferAssetContract struct {
	AssetName string `json:"asset_name" validate:"required,max=64"`
	ToAddress string `json:"to_address" validate:"required,tronaddr"`
	Amount    int64  `json:"amount" validate:"gt=0"`
}

type Vote struct {
	VoteAddress string `json:"vote_address" validate:"required,tronaddr"`
	VoteCount   int64  `json:"vote_count" validate:"gt=0"`
}

type VoteWitnessContract struct {
	Votes   []Vote `json:"votes" validate:"required,min=1,max=30,dive"`
	Support bool   `json:"support,omitempty"`
}

type WitnessCreateContract struct {
	URL string `json:"url" validate:"required,max=256"`
}

type FrozenSupply struct {
	FrozenAmount int64 `json:"frozen_amount" validate:"gt=0"`
	FrozenDays   int64 `json:"frozen_days" validate:"gt=0"`
}

type AssetIssueContract struct {
	Name                    string         `json:"name" validate:"required,max=32"`
	Abbr                    string         `json:"abbr,omitempty" validate:"max=5"`
	TotalSupply             int64          `json:"total_supply" validate:"gt=0"`
	FrozenSupply            []FrozenSupply `json:"frozen_supply,omitempty" validate:"dive"`
	TrxNum                  int32          `json:"trx_num" validate:"gt=0"`
	Num                     int32          `json:"num" validate:"gt=0"`
	Precision               int32          `json:"precision,omitempty" validate:"gte=0,lte=6"`
	StartTime               int64          `json:"start_time,omitempty" validate:"gte=0"`
	EndTime                 int64          `json:"end_time,omitempty" validate:"gte=0"`
	Description             string         `json:"description,omitempty" validate:"max=200"`
	URL                     string         `json:"url,omitempty" validate:"max=256"`
	FreeAssetNetLimit       int64          `json:"free_asset_net_limit,omitempty" validate:"gte=0"`
	PublicFreeAssetNetLimit int64          `json:"public_free_asset_net_limit,omitempty" validate:"gte=0"`
}

type WitnessUpdateContract struct {
	UpdateURL string `json:"update_url" validate:"required,max=256"`
}

type ParticipateAssetIssueContract struct {
	ToAddress string `json:"to_address" validate:"required,tronaddr"`
	AssetName string `json:"asset_name" validate:"required,max=64"`
	Amount    int64  `json:"amount" validate:"gt=0"`
}

type AccountUpdateContract struct {
	AccountName string `json:"account_name" validate:"required,max=200"`
}

// Resource: 0 = BANDWIDTH, 1 = ENERGY

type FreezeBalanceContract struct {
	FrozenBalance   int64  `json:"frozen_balance" validate:"gt=0"`
	FrozenDuration  int64  `json:"frozen_duration" validate:"gt=0"`
	Resource        int32  `json:"resource,omitempty" validate:"gte=0,lte=1"`
	ReceiverAddress string `json:"receiver_address,omitempty" validate:"omitempty,tronaddr"`
}

type UnfreezeBalanceContract struct {
	Resource        int32  `json:"resource,omitempty" validate:"gte=0,lte=1"`
	ReceiverAddress string `json:"receiver_address,omitempty" validate:"omitempty,tronaddr"`
}

type WithdrawBalanceContract struct{}

type UnfreezeAssetContract struct{}

type UpdateAssetContract struct {
	Description    string `json:"description,omitempty" validate:"max=200"`
	URL            string `json:"url,omitempty" validate:"max=256"`
	NewLimit       int64  `json:"new_limit,omitempty" validate:"gte=0"`
	NewPublicLimit int64  `json:"new_public_limit,omitempty" validate:"gte=0"`
}

type ProposalParameter struct {
	Key   int64 `json:"key" validate:"gte=0"`
	Value int64 `json:"value"`
}

type ProposalCreateContract struct {
	Parameters []ProposalParameter `json:"parameters" validate:"required,min=1,unique=Key,dive"`
}

type ProposalApproveContract struct {
	ProposalID    int64 `json:"proposal_id" validate:"gt=0"`
	IsAddApproval bool  `json:"is_add_approval"`
}

type ProposalDeleteContract struct {
	ProposalID int64 `json:"proposal_id" validate:"gt=0"`
}

// SignedTx 是签名结果
type SignedTx struct {
	Signature    HexBytes `json:"signature"`     // r(32) || s(32) || v(1)
	SerializedTx HexBytes `json:"serialized_tx"` // Transaction.raw 的 protobuf 编码
	TxID         string   `json:"tx_id"`         // SHA256(serialized_tx)
}

// GetAddressRequest 请求设备返回某路径的地址
type GetAddressRequest struct {
	AddressN    []uint32 `json:"address_n"`
	ShowDisplay bool     `json:"show_display,omitempty"`
}

type Address struct {
	Address string `json:"address"`
	Path    string `json:"path"`
}

// HexBytes 以 Hex 字符串 (可带 0x 前缀) 进行 JSON 编解码
type HexBytes []byte

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hex bytes must be a JSON string: %w", err)
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex bytes: %w", err)
	}
	*b = decoded
	return nil
}

func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}
