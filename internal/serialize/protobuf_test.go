package serialize

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"tron-wallet-core/internal/tron"
	"tron-wallet-core/internal/tron/trontest"
	"tron-wallet-core/pkg/address"
	"tron-wallet-core/pkg/errno"
)

func mustDecode(s string) address.Address {
	addr, err := address.Decode(s)
	if err != nil {
		panic(err)
	}
	return addr
}

var owner = mustDecode(trontest.AddressAbandon)

func TestSerializeTransferGolden(t *testing.T) {
	tx := trontest.Transaction(trontest.Contracts()[tron.KindTransfer])

	raw, err := New().Serialize(tx, owner)
	require.NoError(t, err)
	assert.Equal(t,
		"0a024a1f2208010203040506070840e0a499ffbc315a68080112640a2d747970652e676f6f676c65617069732e636f6d2f70726f746f636f6c2e5472616e73666572436f6e747261637412330a1541c8599111f29c1e1e061265b4af93ea1f274ad78a1215417e5f4552091a69125d5dfcb7b8c2659029395bdf18c096b1027080d095ffbc31",
		hex.EncodeToString(raw))
}

func TestSerializeMinimal(t *testing.T) {
	tx := &tron.Transaction{Contract: &tron.WithdrawBalance{}}

	raw, err := Serialize(tx, owner)
	require.NoError(t, err)
	assert.Equal(t,
		"5a53080d124f0a34747970652e676f6f676c65617069732e636f6d2f70726f746f636f6c2e576974686472617742616c616e6365436f6e747261637412170a1541c8599111f29c1e1e061265b4af93ea1f274ad78a",
		hex.EncodeToString(raw))
}

type field struct {
	num   protowire.Number
	typ   protowire.Type
	value []byte
	v     uint64
}

// parse 解析一层 protobuf 字段
func parse(t *testing.T, b []byte) []field {
	t.Helper()
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0, "bad tag")
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.v, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.value, n = protowire.ConsumeBytes(b)
		default:
			t.Fatalf("unexpected wire type %d", typ)
		}
		require.GreaterOrEqual(t, n, 0, "bad value")
		b = b[n:]
		fields = append(fields, f)
	}
	return fields
}

func TestSerializeEveryKind(t *testing.T) {
	contracts := trontest.Contracts()
	for _, kind := range tron.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			tx := trontest.Transaction(contracts[kind])
			raw, err := Serialize(tx, owner)
			require.NoError(t, err)

			var contract []byte
			for _, f := range parse(t, raw) {
				if f.num == rawContract {
					contract = f.value
				}
			}
			require.NotNil(t, contract)

			fields := parse(t, contract)
			require.Len(t, fields, 2)
			assert.Equal(t, uint64(kind), fields[0].v)

			anyFields := parse(t, fields[1].value)
			require.Len(t, anyFields, 2)
			assert.Equal(t, "type.googleapis.com/protocol."+kind.String(), string(anyFields[0].value))

			// 字段编号必须升序
			var last protowire.Number
			for _, f := range parse(t, anyFields[1].value) {
				assert.GreaterOrEqual(t, f.num, last)
				last = f.num
			}
			// owner 地址一定出现在合约中
			assert.True(t, strings.Contains(string(anyFields[1].value), string(owner.Bytes())))
		})
	}
}

func TestSerializeDataAndFeeLimit(t *testing.T) {
	tx := trontest.Transaction(trontest.Contracts()[tron.KindTransfer])
	tx.Data = []byte("memo")
	tx.FeeLimit = 1000000

	raw, err := Serialize(tx, owner)
	require.NoError(t, err)

	fields := parse(t, raw)
	nums := make([]protowire.Number, len(fields))
	for i, f := range fields {
		nums[i] = f.num
	}
	assert.Equal(t, []protowire.Number{1, 4, 8, 10, 11, 14, 18}, nums)
	assert.Equal(t, "memo", string(fields[3].value))
	assert.Equal(t, uint64(1000000), fields[6].v)
}

func TestSerializeProposalOrder(t *testing.T) {
	tx := &tron.Transaction{Contract: &tron.ProposalCreate{Parameters: []tron.ProposalParameter{
		{Key: 9, Value: 1}, {Key: 3, Value: 10}, {Key: 0, Value: 0},
	}}}
	raw, err := Serialize(tx, owner)
	require.NoError(t, err)

	contract := parse(t, parse(t, raw)[0].value)
	value := parse(t, parse(t, contract[1].value)[1].value)
	require.Len(t, value, 4)

	first := parse(t, value[1].value)
	assert.Equal(t, uint64(9), first[0].v)
	// key=0 value=0 的条目仍然写出
	assert.Empty(t, value[3].value)
}

func TestSerializeRejects(t *testing.T) {
	to := mustDecode(trontest.AddressOne)

	tests := []struct {
		name  string
		tx    *tron.Transaction
		owner address.Address
	}{
		{"nil tx", nil, owner},
		{"nil contract", &tron.Transaction{}, owner},
		{"zero owner", &tron.Transaction{Contract: &tron.WithdrawBalance{}}, address.Address{}},
		{"negative amount", &tron.Transaction{Contract: &tron.Transfer{To: to, Amount: -1}}, owner},
		{"zero amount", &tron.Transaction{Contract: &tron.Transfer{To: to}}, owner},
		{"missing destination", &tron.Transaction{Contract: &tron.Transfer{Amount: 1}}, owner},
		{"bad ref block bytes", &tron.Transaction{RefBlockBytes: []byte{1}, Contract: &tron.WithdrawBalance{}}, owner},
		{"bad ref block hash", &tron.Transaction{RefBlockHash: []byte{1, 2, 3}, Contract: &tron.WithdrawBalance{}}, owner},
		{"negative expiration", &tron.Transaction{Expiration: -1, Contract: &tron.WithdrawBalance{}}, owner},
		{"empty votes", &tron.Transaction{Contract: &tron.VoteWitness{}}, owner},
		{"negative votes", &tron.Transaction{Contract: &tron.VoteWitness{Votes: []tron.Vote{{Address: to, Count: -3}}}}, owner},
		{"bad resource", &tron.Transaction{Contract: &tron.UnfreezeBalance{Resource: 5}}, owner},
		{"no proposal parameters", &tron.Transaction{Contract: &tron.ProposalCreate{}}, owner},
		{"duplicate proposal key", &tron.Transaction{Contract: &tron.ProposalCreate{Parameters: []tron.ProposalParameter{
			{Key: 1, Value: 1}, {Key: 1, Value: 2},
		}}}, owner},
		{"zero proposal id", &tron.Transaction{Contract: &tron.ProposalDelete{}}, owner},
		{"bad asset ratio", &tron.Transaction{Contract: &tron.AssetIssue{Name: "x", TotalSupply: 1, Num: 1}}, owner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Serialize(tt.tx, tt.owner)
			assert.Nil(t, raw)
			assert.True(t, errors.Is(err, errno.ErrSerializationFailed), "got %v", err)
		})
	}
}
