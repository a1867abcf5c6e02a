package hdnode

import (
	"context"
	"errors"
)

// HardenedKeyStart BIP-32 强化派生起始索引 (2^31)
const HardenedKeyStart uint32 = 0x80000000

// Deriver 根据路径派生节点。每次调用返回独立的 Node，调用方用完后必须 Zero()
type Deriver interface {
	DeriveNode(ctx context.Context, path []uint32) (*Node, error)
}

var (
	ErrInvalidSeed     = errors.New("无效的种子")
	ErrInvalidPath     = errors.New("无效的派生路径")
	ErrInvalidMnemonic = errors.New("无效的助记词")
	ErrZeroed          = errors.New("密钥已清除")
)
