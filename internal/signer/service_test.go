package signer

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tron-wallet-core/internal/confirm"
	"tron-wallet-core/internal/layout"
	"tron-wallet-core/internal/serialize"
	"tron-wallet-core/internal/tron"
	"tron-wallet-core/internal/tron/trontest"
	"tron-wallet-core/pkg/address"
	"tron-wallet-core/pkg/crypto_util"
	"tron-wallet-core/pkg/errno"
	"tron-wallet-core/pkg/hdnode"
	"tron-wallet-core/pkg/wallet/types"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// spyDeriver 记录派生出的 Node，用于检查密钥是否被清除
type spyDeriver struct {
	wallet *hdnode.Wallet
	err    error

	mu    sync.Mutex
	nodes []*hdnode.Node
}

func newSpyDeriver(t *testing.T) *spyDeriver {
	t.Helper()
	wallet, err := hdnode.NewFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	return &spyDeriver{wallet: wallet}
}

func (d *spyDeriver) DeriveNode(ctx context.Context, path []uint32) (*hdnode.Node, error) {
	if d.err != nil {
		return nil, d.err
	}
	node, err := d.wallet.DeriveNode(ctx, path)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.nodes = append(d.nodes, node)
	d.mu.Unlock()
	return node, nil
}

func (d *spyDeriver) derived() []*hdnode.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*hdnode.Node(nil), d.nodes...)
}

func newTestService(t *testing.T, confirmer confirm.Confirmer, opts ...Option) (*Service, *spyDeriver) {
	t.Helper()
	deriver := newSpyDeriver(t)
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewService(deriver, serialize.New(), confirmer, opts...), deriver
}

func TestSignTransferEndToEnd(t *testing.T) {
	auto := confirm.AcceptAll()
	svc, deriver := newTestService(t, auto)

	req := trontest.Request(trontest.Contracts()[tron.KindTransfer])
	signed, err := svc.SignTx(context.Background(), req)
	require.NoError(t, err)

	// serialized_tx 与序列化器的输出一致
	owner, err := address.Decode(trontest.AddressAbandon)
	require.NoError(t, err)
	tx, err := tron.Classify(req)
	require.NoError(t, err)
	want, err := serialize.Serialize(tx, owner)
	require.NoError(t, err)
	assert.Equal(t, want, []byte(signed.SerializedTx))

	digest := crypto_util.SHA256(signed.SerializedTx)
	assert.Equal(t, crypto_util.CalculateSHA256(signed.SerializedTx), signed.TxID)
	assert.Equal(t, "dd34a8db0a836f8ba5a49bcfe259e44a6ab55eeae982d6fe2ed5ab612357019a", signed.TxID)

	// 签名可用设备公钥验证
	wallet, err := hdnode.NewFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	node, err := wallet.DeriveNode(context.Background(), trontest.DefaultPath)
	require.NoError(t, err)
	defer node.Zero()

	require.Len(t, signed.Signature, SignatureLength)
	var r, s btcec.ModNScalar
	r.SetByteSlice(signed.Signature[:32])
	s.SetByteSlice(signed.Signature[32:64])
	assert.True(t, ecdsa.NewSignature(&r, &s).Verify(digest, node.PublicKey()))

	recovered, err := RecoverPublicKey(signed.Signature, digest)
	require.NoError(t, err)
	assert.True(t, recovered.IsEqual(node.PublicKey()))

	// 展示的内容
	shown := auto.Shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "Confirm sending", shown[0].Title)
	assert.Equal(t, "5 TRX", shown[0].Lines[0].Text)

	// 私钥在调用结束后被清除
	nodes := deriver.derived()
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0].PrivateKey())
}

func TestSignRejectsBeforeDerive(t *testing.T) {
	tests := []struct {
		name     string
		contract *types.ContractMessage
	}{
		{"no contract", &types.ContractMessage{}},
		{"two contracts", &types.ContractMessage{
			WithdrawBalanceContract: &types.WithdrawBalanceContract{},
			UnfreezeAssetContract:   &types.UnfreezeAssetContract{},
		}},
		{"vote total overflows", &types.ContractMessage{VoteWitnessContract: &types.VoteWitnessContract{
			Votes: []types.Vote{
				{VoteAddress: trontest.AddressOne, VoteCount: math.MaxInt64},
				{VoteAddress: trontest.AddressAbandon, VoteCount: 2},
			},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auto := confirm.AcceptAll()
			svc, deriver := newTestService(t, auto)

			signed, err := svc.SignTx(context.Background(), trontest.Request(tt.contract))
			assert.Nil(t, signed)
			assert.True(t, errors.Is(err, errno.ErrInvalidTransaction))
			assert.Empty(t, auto.Shown(), "确认不应被调用")
			assert.Empty(t, deriver.derived(), "不应派生密钥")
		})
	}
}

func TestSignEveryKindRejected(t *testing.T) {
	contracts := trontest.Contracts()
	for _, kind := range tron.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			auto := confirm.NewAuto(false)
			svc, deriver := newTestService(t, auto)

			signed, err := svc.SignTx(context.Background(), trontest.Request(contracts[kind]))
			assert.Nil(t, signed)
			assert.True(t, errors.Is(err, errno.ErrUserRejected))
			assert.Len(t, auto.Shown(), 1)
			for _, node := range deriver.derived() {
				assert.Nil(t, node.PrivateKey())
			}
		})
	}
}

func TestSignEveryKindAccepted(t *testing.T) {
	contracts := trontest.Contracts()
	for _, kind := range tron.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			svc, _ := newTestService(t, confirm.AcceptAll())

			signed, err := svc.SignTx(context.Background(), trontest.Request(contracts[kind]))
			require.NoError(t, err)
			assert.Len(t, signed.Signature, SignatureLength)
			assert.NotEmpty(t, signed.SerializedTx)
		})
	}
}

func TestSignProposalRejectAtK(t *testing.T) {
	contract := &types.ContractMessage{ProposalCreateContract: &types.ProposalCreateContract{
		Parameters: []types.ProposalParameter{{Key: 0, Value: 1}, {Key: 1, Value: 2}, {Key: 2, Value: 3}, {Key: 3, Value: 4}},
	}}

	for k := 1; k <= 4; k++ {
		answers := make([]bool, k)
		for i := 0; i < k-1; i++ {
			answers[i] = true
		}
		auto := confirm.NewAuto(answers...)
		svc, _ := newTestService(t, auto)

		signed, err := svc.SignTx(context.Background(), trontest.Request(contract))
		assert.Nil(t, signed)
		assert.True(t, errors.Is(err, errno.ErrUserRejected))
		assert.Len(t, auto.Shown(), k)
	}

	auto := confirm.AcceptAll()
	svc, _ := newTestService(t, auto)
	signed, err := svc.SignTx(context.Background(), trontest.Request(contract))
	require.NoError(t, err)
	assert.NotNil(t, signed)
	assert.Len(t, auto.Shown(), 4)
}

func TestSignDataAttachedRejected(t *testing.T) {
	auto := confirm.NewAuto(false)
	svc, _ := newTestService(t, auto)

	req := trontest.Request(trontest.Contracts()[tron.KindTransfer])
	req.Data = "memo"
	_, err := svc.SignTx(context.Background(), req)
	assert.True(t, errors.Is(err, errno.ErrUserRejected))

	shown := auto.Shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "Data attached", shown[0].Title)
	assert.Equal(t, layout.ButtonConfirmOutput, shown[0].Button)
}

func TestSignRecoveryByte(t *testing.T) {
	for _, tt := range []struct {
		recovery byte
		want     byte
	}{{0, 1}, {1, 0}} {
		fixed := func(*btcec.PrivateKey, []byte) (byte, [32]byte, [32]byte, error) {
			return tt.recovery, [32]byte{1}, [32]byte{2}, nil
		}
		svc, _ := newTestService(t, confirm.AcceptAll(), WithSignFunc(fixed))

		signed, err := svc.SignTx(context.Background(), trontest.Request(trontest.Contracts()[tron.KindTransfer]))
		require.NoError(t, err)
		assert.Equal(t, tt.want, signed.Signature[64])
		assert.Equal(t, byte(1), signed.Signature[0])
		assert.Equal(t, byte(2), signed.Signature[32])
	}
}

type failingSerializer struct{ err error }

func (f failingSerializer) Serialize(*tron.Transaction, address.Address) ([]byte, error) {
	return nil, f.err
}

func TestSignFailures(t *testing.T) {
	req := func() *types.SignTxRequest {
		return trontest.Request(trontest.Contracts()[tron.KindTransfer])
	}

	t.Run("derivation", func(t *testing.T) {
		deriver := newSpyDeriver(t)
		deriver.err = errors.New("secure element busy")
		auto := confirm.AcceptAll()
		svc := NewService(deriver, serialize.New(), auto)

		_, err := svc.SignTx(context.Background(), req())
		assert.True(t, errors.Is(err, errno.ErrDerivationFailed))
		assert.Empty(t, auto.Shown())
	})

	t.Run("serialization", func(t *testing.T) {
		deriver := newSpyDeriver(t)
		svc := NewService(deriver, failingSerializer{errors.New("boom")}, confirm.AcceptAll())

		signed, err := svc.SignTx(context.Background(), req())
		assert.Nil(t, signed)
		assert.True(t, errors.Is(err, errno.ErrSerializationFailed))
		assert.Nil(t, deriver.derived()[0].PrivateKey())
	})

	t.Run("signing", func(t *testing.T) {
		broken := func(*btcec.PrivateKey, []byte) (byte, [32]byte, [32]byte, error) {
			return 0, [32]byte{}, [32]byte{}, errors.New("fault")
		}
		svc, _ := newTestService(t, confirm.AcceptAll(), WithSignFunc(broken))

		signed, err := svc.SignTx(context.Background(), req())
		assert.Nil(t, signed)
		assert.True(t, errors.Is(err, errno.ErrSigningFailed))
	})

	t.Run("serializer not reached on reject", func(t *testing.T) {
		svc := NewService(newSpyDeriver(t), failingSerializer{errors.New("boom")}, confirm.NewAuto(false))
		_, err := svc.SignTx(context.Background(), req())
		assert.True(t, errors.Is(err, errno.ErrUserRejected))
	})
}

// holdConfirmer 在第一个确认处阻塞，直到 release 被关闭
type holdConfirmer struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (h *holdConfirmer) Confirm(ctx context.Context, _ layout.PromptSpec) (bool, error) {
	h.once.Do(func() { close(h.entered) })
	select {
	case <-h.release:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func TestSignOneInFlight(t *testing.T) {
	hold := &holdConfirmer{entered: make(chan struct{}), release: make(chan struct{})}
	svc, _ := newTestService(t, hold)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SignTx(context.Background(), trontest.Request(trontest.Contracts()[tron.KindTransfer]))
		done <- err
	}()
	<-hold.entered

	// 第一个请求未完成前，第二个请求无法开始
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := svc.SignTx(ctx, trontest.Request(trontest.Contracts()[tron.KindWithdrawBalance]))
	assert.True(t, errors.Is(err, errno.ErrActionCancelled))

	close(hold.release)
	require.NoError(t, <-done)
}

func TestSignConfirmTimeout(t *testing.T) {
	hold := &holdConfirmer{entered: make(chan struct{}), release: make(chan struct{})}
	svc, deriver := newTestService(t, hold, WithConfirmTimeout(20*time.Millisecond))

	signed, err := svc.SignTx(context.Background(), trontest.Request(trontest.Contracts()[tron.KindTransfer]))
	assert.Nil(t, signed)
	assert.True(t, errors.Is(err, errno.ErrActionCancelled))
	assert.Nil(t, deriver.derived()[0].PrivateKey())
}

func TestGetAddress(t *testing.T) {
	svc, deriver := newTestService(t, confirm.NewAuto())

	addr, err := svc.GetAddress(context.Background(), trontest.DefaultPath, false)
	require.NoError(t, err)
	assert.Equal(t, trontest.AddressAbandon, addr.Address)
	assert.Equal(t, "m/44'/195'/0'/0/0", addr.Path)
	assert.Nil(t, deriver.derived()[0].PrivateKey())

	// 展示时被拒绝
	_, err = svc.GetAddress(context.Background(), trontest.DefaultPath, true)
	assert.True(t, errors.Is(err, errno.ErrUserRejected))

	auto := confirm.AcceptAll()
	svc, _ = newTestService(t, auto)
	addr, err = svc.GetAddress(context.Background(), trontest.DefaultPath, true)
	require.NoError(t, err)
	assert.Equal(t, trontest.AddressAbandon, addr.Address)
	require.Len(t, auto.Shown(), 1)
	assert.Equal(t, "Confirm address", auto.Shown()[0].Title)
}
