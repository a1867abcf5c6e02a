package confirm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tron-wallet-core/internal/layout"
	"tron-wallet-core/pkg/errno"
)

// Outcome 是一组确认的结果
type Outcome int

const (
	Rejected Outcome = iota
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Confirmer 向用户展示一屏内容并等待确认，可能长时间阻塞，必须响应 ctx 取消
type Confirmer interface {
	Confirm(ctx context.Context, prompt layout.PromptSpec) (bool, error)
}

// Gate 依次展示多屏确认内容，任意一屏被拒绝即终止
type Gate struct {
	confirmer Confirmer
	log       *zap.Logger
}

func NewGate(confirmer Confirmer, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{confirmer: confirmer, log: log}
}

// Run 按顺序展示 prompts。
// 第一个未被接受的确认之后的内容不会再展示；全部接受才返回 Accepted。
// 等待期间 ctx 被取消时返回 ErrActionCancelled。
func (g *Gate) Run(ctx context.Context, prompts []layout.PromptSpec) (Outcome, error) {
	if len(prompts) == 0 {
		return Rejected, errors.New("no prompts to confirm")
	}

	for i, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return Rejected, cancelled(err)
		}

		accepted, err := g.confirmer.Confirm(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Rejected, cancelled(err)
			}
			return Rejected, fmt.Errorf("confirm %q: %w", prompt.Title, err)
		}
		if !accepted {
			g.log.Info("用户拒绝", zap.String("title", prompt.Title), zap.Int("step", i+1), zap.Int("total", len(prompts)))
			return Rejected, nil
		}
		g.log.Debug("用户确认", zap.String("title", prompt.Title), zap.Int("step", i+1), zap.Int("total", len(prompts)))
	}
	return Accepted, nil
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %v", errno.ErrActionCancelled, err)
}
