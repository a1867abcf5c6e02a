// Package serialize 将校验后的交易编码为 TRON protocol.Transaction.raw 的 protobuf 字节。
// 字段按编号升序写出，零值字段省略，与链上节点的编码结果一致。
package serialize

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"tron-wallet-core/internal/tron"
	"tron-wallet-core/pkg/address"
	"tron-wallet-core/pkg/errno"
)

const typeURLPrefix = "type.googleapis.com/protocol."

// Transaction.raw 字段编号
const (
	rawRefBlockBytes protowire.Number = 1
	rawRefBlockHash  protowire.Number = 4
	rawExpiration    protowire.Number = 8
	rawData          protowire.Number = 10
	rawContract      protowire.Number = 11
	rawTimestamp     protowire.Number = 14
	rawFeeLimit      protowire.Number = 18
)

const (
	refBlockBytesLen = 2
	refBlockHashLen  = 8
)

// Protobuf 实现 signer.Serializer
type Protobuf struct{}

func New() *Protobuf {
	return &Protobuf{}
}

// Serialize 编码 raw_data，owner 为签名者地址
func (*Protobuf) Serialize(tx *tron.Transaction, owner address.Address) ([]byte, error) {
	return Serialize(tx, owner)
}

func Serialize(tx *tron.Transaction, owner address.Address) ([]byte, error) {
	if tx == nil || tx.Contract == nil {
		return nil, failed("missing contract")
	}
	if owner.IsZero() {
		return nil, failed("missing owner address")
	}
	if n := len(tx.RefBlockBytes); n != 0 && n != refBlockBytesLen {
		return nil, failed("ref_block_bytes must be %d bytes, got %d", refBlockBytesLen, n)
	}
	if n := len(tx.RefBlockHash); n != 0 && n != refBlockHashLen {
		return nil, failed("ref_block_hash must be %d bytes, got %d", refBlockHashLen, n)
	}
	if tx.Expiration < 0 || tx.Timestamp < 0 || tx.FeeLimit < 0 {
		return nil, failed("negative expiration, timestamp or fee_limit")
	}

	value, err := encodeContract(tx.Contract, owner)
	if err != nil {
		return nil, err
	}

	// google.protobuf.Any
	var param message
	param = param.str(1, typeURLPrefix+tx.Contract.Kind().String())
	param = param.bytes(2, value)

	var contract message
	contract = contract.varint(1, int64(tx.Contract.Kind()))
	contract = contract.msg(2, param)

	var raw message
	raw = raw.bytes(rawRefBlockBytes, tx.RefBlockBytes)
	raw = raw.bytes(rawRefBlockHash, tx.RefBlockHash)
	raw = raw.varint(rawExpiration, tx.Expiration)
	raw = raw.bytes(rawData, tx.Data)
	raw = raw.msg(rawContract, contract)
	raw = raw.varint(rawTimestamp, tx.Timestamp)
	raw = raw.varint(rawFeeLimit, tx.FeeLimit)
	return raw, nil
}

func encodeContract(contract tron.Contract, owner address.Address) (message, error) {
	var m message

	switch c := contract.(type) {
	case *tron.Transfer:
		if err := positive("amount", c.Amount); err != nil {
			return nil, err
		}
		if c.To.IsZero() {
			return nil, failed("missing to_address")
		}
		m = m.bytes(1, owner.Bytes())
		m = m.bytes(2, c.To.Bytes())
		m = m.varint(3, c.Amount)

	case *tron.TransferAsset:
		if err := positive("amount", c.Amount); err != nil {
			return nil, err
		}
		if c.To.IsZero() || c.AssetName == "" {
			return nil, failed("missing to_address or asset_name")
		}
		m = m.str(1, c.AssetName)
		m = m.bytes(2, owner.Bytes())
		m = m.bytes(3, c.To.Bytes())
		m = m.varint(4, c.Amount)

	case *tron.VoteWitness:
		if len(c.Votes) == 0 {
			return nil, failed("empty vote list")
		}
		m = m.bytes(1, owner.Bytes())
		for _, vote := range c.Votes {
			if err := positive("vote_count", vote.Count); err != nil {
				return nil, err
			}
			var v message
			v = v.bytes(1, vote.Address.Bytes())
			v = v.varint(2, vote.Count)
			m = m.msg(2, v)
		}
		m = m.boolean(3, c.Support)

	case *tron.WitnessCreate:
		m = m.bytes(1, owner.Bytes())
		m = m.str(2, c.URL)

	case *tron.AssetIssue:
		if err := positive("total_supply", c.TotalSupply); err != nil {
			return nil, err
		}
		if c.TrxNum <= 0 || c.Num <= 0 || c.Precision < 0 {
			return nil, failed("invalid trx_num, num or precision")
		}
		if err := nonNegative(c.StartTime, c.EndTime, c.FreeAssetNetLimit, c.PublicFreeAssetNetLimit); err != nil {
			return nil, err
		}
		m = m.bytes(1, owner.Bytes())
		m = m.str(2, c.Name)
		m = m.str(3, c.Abbr)
		m = m.varint(4, c.TotalSupply)
		for _, frozen := range c.FrozenSupply {
			if frozen.Amount <= 0 || frozen.Days <= 0 {
				return nil, failed("invalid frozen_supply")
			}
			var f message
			f = f.varint(1, frozen.Amount)
			f = f.varint(2, frozen.Days)
			m = m.msg(5, f)
		}
		m = m.varint(6, int64(c.TrxNum))
		m = m.varint(7, int64(c.Precision))
		m = m.varint(8, int64(c.Num))
		m = m.varint(9, c.StartTime)
		m = m.varint(10, c.EndTime)
		m = m.str(20, c.Description)
		m = m.str(21, c.URL)
		m = m.varint(22, c.FreeAssetNetLimit)
		m = m.varint(23, c.PublicFreeAssetNetLimit)

	case *tron.WitnessUpdate:
		m = m.bytes(1, owner.Bytes())
		m = m.str(12, c.UpdateURL)

	case *tron.ParticipateAssetIssue:
		if err := positive("amount", c.Amount); err != nil {
			return nil, err
		}
		if c.To.IsZero() || c.AssetName == "" {
			return nil, failed("missing to_address or asset_name")
		}
		m = m.bytes(1, owner.Bytes())
		m = m.bytes(2, c.To.Bytes())
		m = m.str(3, c.AssetName)
		m = m.varint(4, c.Amount)

	case *tron.AccountUpdate:
		m = m.str(1, c.AccountName)
		m = m.bytes(2, owner.Bytes())

	case *tron.FreezeBalance:
		if err := positive("frozen_balance", c.FrozenBalance); err != nil {
			return nil, err
		}
		if err := positive("frozen_duration", c.FrozenDuration); err != nil {
			return nil, err
		}
		if err := resource(c.Resource); err != nil {
			return nil, err
		}
		m = m.bytes(1, owner.Bytes())
		m = m.varint(2, c.FrozenBalance)
		m = m.varint(3, c.FrozenDuration)
		m = m.varint(10, int64(c.Resource))
		m = m.address(15, c.Receiver)

	case *tron.UnfreezeBalance:
		if err := resource(c.Resource); err != nil {
			return nil, err
		}
		m = m.bytes(1, owner.Bytes())
		m = m.varint(10, int64(c.Resource))
		m = m.address(15, c.Receiver)

	case *tron.WithdrawBalance:
		m = m.bytes(1, owner.Bytes())

	case *tron.UnfreezeAsset:
		m = m.bytes(1, owner.Bytes())

	case *tron.UpdateAsset:
		if err := nonNegative(c.NewLimit, c.NewPublicLimit); err != nil {
			return nil, err
		}
		m = m.bytes(1, owner.Bytes())
		m = m.str(2, c.Description)
		m = m.str(3, c.URL)
		m = m.varint(4, c.NewLimit)
		m = m.varint(5, c.NewPublicLimit)

	case *tron.ProposalCreate:
		if len(c.Parameters) == 0 {
			return nil, failed("proposal without parameters")
		}
		m = m.bytes(1, owner.Bytes())
		// map<int64,int64> 按请求顺序写出，重复的 key 会被节点覆盖，直接拒绝
		seen := make(map[int64]struct{}, len(c.Parameters))
		for _, param := range c.Parameters {
			if _, dup := seen[param.Key]; dup {
				return nil, failed("duplicate proposal parameter %d", param.Key)
			}
			seen[param.Key] = struct{}{}

			var entry message
			entry = entry.varint(1, param.Key)
			entry = entry.varint(2, param.Value)
			m = m.msg(2, entry)
		}

	case *tron.ProposalApprove:
		if err := positive("proposal_id", c.ProposalID); err != nil {
			return nil, err
		}
		m = m.bytes(1, owner.Bytes())
		m = m.varint(2, c.ProposalID)
		m = m.boolean(3, c.IsAddApproval)

	case *tron.ProposalDelete:
		if err := positive("proposal_id", c.ProposalID); err != nil {
			return nil, err
		}
		m = m.bytes(1, owner.Bytes())
		m = m.varint(2, c.ProposalID)

	default:
		return nil, failed("unsupported contract type %s", contract.Kind())
	}

	return m, nil
}

func failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errno.ErrSerializationFailed, fmt.Sprintf(format, args...))
}

func positive(field string, v int64) error {
	if v <= 0 {
		return failed("%s must be positive, got %d", field, v)
	}
	return nil
}

func nonNegative(values ...int64) error {
	for _, v := range values {
		if v < 0 {
			return failed("negative value %d", v)
		}
	}
	return nil
}

func resource(r tron.Resource) error {
	if r != tron.ResourceBandwidth && r != tron.ResourceEnergy {
		return failed("unknown resource %d", r)
	}
	return nil
}
