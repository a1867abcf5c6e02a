package layout

import "strings"

// Style 是单行文本的显示样式
type Style int

const (
	Normal Style = iota
	Bold
	Mono
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Mono:
		return "mono"
	default:
		return "normal"
	}
}

type Icon string

const (
	IconSend    Icon = "send"
	IconConfirm Icon = "confirm"
	IconReceive Icon = "receive"
)

type Color string

const ColorGreen Color = "green"

// ButtonRequest 告知主机设备当前在等待哪一类确认
type ButtonRequest int

const (
	ButtonSignTx ButtonRequest = iota
	ButtonConfirmOutput
	ButtonAddress
)

func (b ButtonRequest) String() string {
	switch b {
	case ButtonConfirmOutput:
		return "ConfirmOutput"
	case ButtonAddress:
		return "Address"
	default:
		return "SignTx"
	}
}

type Segment struct {
	Style Style
	Text  string
}

// PromptSpec 描述一屏确认内容
type PromptSpec struct {
	Title     string
	Icon      Icon
	IconColor Color
	Button    ButtonRequest
	Lines     []Segment
}

func newPrompt(title string, icon Icon, button ButtonRequest) *PromptSpec {
	return &PromptSpec{Title: title, Icon: icon, IconColor: ColorGreen, Button: button}
}

func (p *PromptSpec) add(style Style, lines ...string) *PromptSpec {
	for _, line := range lines {
		p.Lines = append(p.Lines, Segment{Style: style, Text: line})
	}
	return p
}

func (p *PromptSpec) normal(lines ...string) *PromptSpec { return p.add(Normal, lines...) }
func (p *PromptSpec) bold(lines ...string) *PromptSpec   { return p.add(Bold, lines...) }
func (p *PromptSpec) mono(lines ...string) *PromptSpec   { return p.add(Mono, lines...) }

// Texts 返回所有行的纯文本
func (p PromptSpec) Texts() []string {
	texts := make([]string, len(p.Lines))
	for i, seg := range p.Lines {
		texts[i] = seg.Text
	}
	return texts
}

func (p PromptSpec) String() string {
	return p.Title + "\n" + strings.Join(p.Texts(), "\n")
}
