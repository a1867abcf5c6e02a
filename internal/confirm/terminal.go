package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"tron-wallet-core/internal/layout"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
	monoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)
)

// Terminal 在终端上展示确认内容，从输入流读取 y/N
type Terminal struct {
	in         io.Reader
	out        io.Writer
	drainStale bool

	once  sync.Once
	lines chan string
	done  chan struct{}
	err   error // pump 退出原因，done 关闭后可读
}

type TerminalOption func(*Terminal)

// DrainStaleInput 每次确认前丢弃已输入但未读取的内容，避免提前敲入的回车被当作确认。
// 只应在交互式终端上启用。
func DrainStaleInput() TerminalOption {
	return func(t *Terminal) { t.drainStale = true }
}

func NewTerminal(in io.Reader, out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:    in,
		out:   out,
		lines: make(chan string, 16),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// pump 是唯一读取输入流的 goroutine，输入结束时退出
func (t *Terminal) pump() {
	defer close(t.done)

	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		t.lines <- scanner.Text()
	}
	t.err = scanner.Err()
	if t.err == nil {
		t.err = io.EOF
	}
}

func (t *Terminal) Confirm(ctx context.Context, prompt layout.PromptSpec) (bool, error) {
	t.once.Do(func() { go t.pump() })

	if err := ctx.Err(); err != nil {
		return false, err
	}
	if t.drainStale {
		t.drain()
	}

	fmt.Fprintln(t.out, Render(prompt))
	fmt.Fprint(t.out, "Confirm? [y/N]: ")

	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return false, ctx.Err()
	case line := <-t.lines:
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	case <-t.done:
		// done 关闭前写入的行仍需读取
		select {
		case line := <-t.lines:
			answer := strings.ToLower(strings.TrimSpace(line))
			return answer == "y" || answer == "yes", nil
		default:
		}
		fmt.Fprintln(t.out)
		return false, fmt.Errorf("read confirmation: %w", t.err)
	}
}

func (t *Terminal) drain() {
	for {
		select {
		case <-t.lines:
		default:
			return
		}
	}
}

// Render 将 PromptSpec 渲染为终端文本
func Render(prompt layout.PromptSpec) string {
	rendered := make([]string, 0, len(prompt.Lines)+1)
	rendered = append(rendered, titleStyle.Render(prompt.Title))
	for _, seg := range prompt.Lines {
		switch seg.Style {
		case layout.Bold:
			rendered = append(rendered, boldStyle.Render(seg.Text))
		case layout.Mono:
			rendered = append(rendered, monoStyle.Render(seg.Text))
		default:
			rendered = append(rendered, seg.Text)
		}
	}
	return boxStyle.Render(strings.Join(rendered, "\n"))
}
