package confirm

import (
	"context"
	"sync"

	"tron-wallet-core/internal/layout"
)

// Auto 按预设的答案依次回答，答案用完后使用最后一个。
// 用于 --yes 非交互运行和测试。
type Auto struct {
	mu      sync.Mutex
	answers []bool
	shown   []layout.PromptSpec
}

// NewAuto 创建 Auto，不传答案时全部拒绝
func NewAuto(answers ...bool) *Auto {
	return &Auto{answers: answers}
}

// AcceptAll 对所有确认回答 yes
func AcceptAll() *Auto {
	return NewAuto(true)
}

func (a *Auto) Confirm(ctx context.Context, prompt layout.PromptSpec) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	idx := len(a.shown)
	a.shown = append(a.shown, prompt)

	switch {
	case len(a.answers) == 0:
		return false, nil
	case idx < len(a.answers):
		return a.answers[idx], nil
	default:
		return a.answers[len(a.answers)-1], nil
	}
}

// Shown 返回已展示过的内容
func (a *Auto) Shown() []layout.PromptSpec {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]layout.PromptSpec(nil), a.shown...)
}
