package signer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"tron-wallet-core/internal/confirm"
	"tron-wallet-core/internal/layout"
	"tron-wallet-core/internal/tron"
	"tron-wallet-core/pkg/address"
	"tron-wallet-core/pkg/crypto_util"
	"tron-wallet-core/pkg/errno"
	"tron-wallet-core/pkg/hdnode"
	"tron-wallet-core/pkg/monitor"
	"tron-wallet-core/pkg/wallet/types"
)

// Serializer 将交易编码为链上的 raw_data 字节
type Serializer interface {
	Serialize(tx *tron.Transaction, owner address.Address) ([]byte, error)
}

// KeyDeriver 按路径派生签名密钥，*hdnode.Wallet 是默认实现
type KeyDeriver = hdnode.Deriver

// Service 负责 TRON 交易签名，同一时间只处理一个请求
type Service struct {
	deriver    KeyDeriver
	serializer Serializer
	gate       *confirm.Gate
	sign       SignFunc
	sem        *semaphore.Weighted
	timeout    time.Duration
	log        *zap.Logger
}

type Option func(*Service)

// WithSignFunc 替换签名原语
func WithSignFunc(sign SignFunc) Option {
	return func(s *Service) { s.sign = sign }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithConfirmTimeout 限制等待用户确认的总时间，0 表示不限制
func WithConfirmTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(deriver KeyDeriver, serializer Serializer, confirmer confirm.Confirmer, opts ...Option) *Service {
	s := &Service{
		deriver:    deriver,
		serializer: serializer,
		sign:       SignCompact,
		sem:        semaphore.NewWeighted(1),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gate = confirm.NewGate(confirmer, s.log)
	return s
}

// SignTx 校验、确认并签名交易。
// 只有所有确认都被接受后才会序列化和签名，任何失败都不会返回签名。
func (s *Service) SignTx(ctx context.Context, req *types.SignTxRequest) (_ *types.SignedTx, err error) {
	start := time.Now()
	contract := "unknown"
	defer func() {
		monitor.Signing.ObserveSign(contract, outcomeOf(err), start)
	}()

	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	tx, err := tron.Classify(req)
	if err != nil {
		s.log.Warn("交易校验失败", zap.Error(err))
		return nil, err
	}
	contract = tx.Contract.Kind().String()
	log := s.log.With(zap.String("contract", contract), zap.String("path", hdnode.FormatPath(tx.Path)))

	node, err := s.derive(ctx, tx.Path)
	if err != nil {
		log.Error("派生密钥失败", zap.Error(err))
		return nil, err
	}
	defer node.Zero()

	owner := address.FromPublicKey(node.PublicKey())
	log = log.With(zap.String("owner", owner.String()))

	prompts, err := layout.Build(tx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errno.ErrInvalidTransaction, err)
	}
	monitor.Signing.PromptsShownTotal.Add(float64(len(prompts)))

	outcome, err := s.confirm(ctx, prompts)
	if err != nil {
		log.Warn("确认中断", zap.Error(err))
		return nil, err
	}
	if outcome != confirm.Accepted {
		log.Info("用户拒绝签名")
		return nil, errno.ErrUserRejected
	}

	raw, err := s.serializer.Serialize(tx, owner)
	if err != nil {
		if !errors.Is(err, errno.ErrSerializationFailed) {
			err = fmt.Errorf("%w: %v", errno.ErrSerializationFailed, err)
		}
		log.Error("序列化失败", zap.Error(err))
		return nil, err
	}

	digest := crypto_util.SHA256(raw)
	recovery, r, sv, err := s.sign(node.PrivateKey(), digest)
	if err != nil {
		log.Error("签名失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errno.ErrSigningFailed, err)
	}

	txID := crypto_util.CalculateSHA256(raw)
	log.Info("交易已签名", zap.String("tx_id", txID), zap.Duration("elapsed", time.Since(start)))

	return &types.SignedTx{
		Signature:    EncodeSignature(recovery, r, sv),
		SerializedTx: raw,
		TxID:         txID,
	}, nil
}

// GetAddress 返回路径对应的地址，show 为 true 时先在设备上展示供用户核对
func (s *Service) GetAddress(ctx context.Context, path []uint32, show bool) (*types.Address, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	monitor.Signing.AddressRequestsTotal.WithLabelValues(fmt.Sprint(show)).Inc()

	node, err := s.derive(ctx, path)
	if err != nil {
		return nil, err
	}
	addr := address.FromPublicKey(node.PublicKey())
	node.Zero()

	result := &types.Address{Address: addr.String(), Path: hdnode.FormatPath(path)}
	if !show {
		return result, nil
	}

	outcome, err := s.confirm(ctx, []layout.PromptSpec{*layout.AddressPrompt(result.Address, result.Path)})
	if err != nil {
		return nil, err
	}
	if outcome != confirm.Accepted {
		return nil, errno.ErrUserRejected
	}
	return result, nil
}

func (s *Service) acquire(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: %v", errno.ErrActionCancelled, err)
	}
	return nil
}

func (s *Service) derive(ctx context.Context, path []uint32) (*hdnode.Node, error) {
	node, err := s.deriver.DeriveNode(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", errno.ErrActionCancelled, err)
		}
		return nil, fmt.Errorf("%w: %v", errno.ErrDerivationFailed, err)
	}
	return node, nil
}

func (s *Service) confirm(ctx context.Context, prompts []layout.PromptSpec) (confirm.Outcome, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.gate.Run(ctx, prompts)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return monitor.OutcomeSigned
	case errors.Is(err, errno.ErrUserRejected):
		return monitor.OutcomeRejected
	case errors.Is(err, errno.ErrInvalidTransaction):
		return monitor.OutcomeInvalid
	case errors.Is(err, errno.ErrActionCancelled):
		return monitor.OutcomeCancelled
	default:
		return monitor.OutcomeFailed
	}
}
