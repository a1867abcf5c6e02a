package serialize

import (
	"google.golang.org/protobuf/encoding/protowire"

	"tron-wallet-core/pkg/address"
)

// message 按 proto3 规则追加字段，零值字段不写出
type message []byte

func (m message) bytes(num protowire.Number, b []byte) message {
	if len(b) == 0 {
		return m
	}
	out := protowire.AppendTag(m, num, protowire.BytesType)
	return protowire.AppendBytes(out, b)
}

func (m message) str(num protowire.Number, s string) message {
	if s == "" {
		return m
	}
	out := protowire.AppendTag(m, num, protowire.BytesType)
	return protowire.AppendString(out, s)
}

func (m message) varint(num protowire.Number, v int64) message {
	if v == 0 {
		return m
	}
	out := protowire.AppendTag(m, num, protowire.VarintType)
	return protowire.AppendVarint(out, uint64(v))
}

func (m message) boolean(num protowire.Number, v bool) message {
	if !v {
		return m
	}
	out := protowire.AppendTag(m, num, protowire.VarintType)
	return protowire.AppendVarint(out, protowire.EncodeBool(v))
}

// msg 写出子消息，空消息也会写出 (repeated 字段中的元素不能省略)
func (m message) msg(num protowire.Number, sub message) message {
	out := protowire.AppendTag(m, num, protowire.BytesType)
	return protowire.AppendBytes(out, sub)
}

func (m message) address(num protowire.Number, addr address.Address) message {
	if addr.IsZero() {
		return m
	}
	return m.bytes(num, addr.Bytes())
}
