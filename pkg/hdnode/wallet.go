package hdnode

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// Node 是一次签名调用内使用的派生密钥 (私钥 + 公钥)
type Node struct {
	key  *hdkeychain.ExtendedKey
	priv *btcec.PrivateKey
	pub  *btcec.PublicKey
}

// PrivateKey 返回私钥，Zero() 之后返回 nil
func (n *Node) PrivateKey() *btcec.PrivateKey {
	return n.priv
}

func (n *Node) PublicKey() *btcec.PublicKey {
	return n.pub
}

// Zero 清除私钥材料。可重复调用
func (n *Node) Zero() {
	if n == nil {
		return
	}
	if n.priv != nil {
		n.priv.Zero()
		n.priv = nil
	}
	if n.key != nil {
		n.key.Zero()
		n.key = nil
	}
}

// Wallet 持有主扩展私钥，实现 Deriver
type Wallet struct {
	master *hdkeychain.ExtendedKey
}

// NewMasterKeyFromSeed 使用 BIP-39 种子生成主密钥
func NewMasterKeyFromSeed(seed []byte) (*Wallet, error) {
	if len(seed) < hdkeychain.MinSeedBytes || len(seed) > hdkeychain.MaxSeedBytes {
		return nil, ErrInvalidSeed
	}

	// 网络参数只影响 xprv 版本字节，不影响派生结果
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("生成主密钥失败: %w", err)
	}
	return &Wallet{master: master}, nil
}

// NewFromMnemonic 校验助记词并生成主密钥
func NewFromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	seed, err := MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer zero(seed)
	return NewMasterKeyFromSeed(seed)
}

// MnemonicToSeed 将助记词转换为 BIP-39 种子
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}

// GenerateMnemonic 生成新的随机助记词。bitSize: 128 (12 词) 或 256 (24 词)
func GenerateMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", fmt.Errorf("生成熵失败: %w", err)
	}
	defer zero(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("生成助记词失败: %w", err)
	}
	return mnemonic, nil
}

// DeriveNode 逐级派生子密钥
func (w *Wallet) DeriveNode(ctx context.Context, path []uint32) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.master == nil {
		return nil, ErrZeroed
	}

	current := w.master
	for i, index := range path {
		next, err := current.Derive(index)
		if current != w.master {
			current.Zero()
		}
		if err != nil {
			return nil, fmt.Errorf("派生第 %d 级 (%d) 失败: %w", i, index, err)
		}
		current = next
	}

	priv, err := current.ECPrivKey()
	if err != nil {
		if current != w.master {
			current.Zero()
		}
		return nil, fmt.Errorf("获取私钥失败: %w", err)
	}

	// 路径为空时 ECPrivKey 已复制了私钥字节，Node 不持有主密钥，避免 Zero() 清掉 Wallet 本身
	node := &Node{priv: priv, pub: priv.PubKey()}
	if current != w.master {
		node.key = current
	}
	return node, nil
}

// Zero 清除主密钥
func (w *Wallet) Zero() {
	if w.master != nil {
		w.master.Zero()
		w.master = nil
	}
}

// ParsePath 解析路径 (如 "m/44'/195'/0'/0/0")，支持 ' 或 h 表示 hardened
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "m")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return []uint32{}, nil
	}

	segments := strings.Split(path, "/")
	indices := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		hardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			hardened = true
			segment = segment[:len(segment)-1]
		}

		val, err := strconv.ParseUint(segment, 10, 32)
		if err != nil || uint32(val) >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: 路径段 %q", ErrInvalidPath, segment)
		}

		index := uint32(val)
		if hardened {
			index += HardenedKeyStart
		}
		indices = append(indices, index)
	}
	return indices, nil
}

// FormatPath 是 ParsePath 的逆操作
func FormatPath(path []uint32) string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range path {
		sb.WriteString("/")
		if index >= HardenedKeyStart {
			sb.WriteString(strconv.FormatUint(uint64(index-HardenedKeyStart), 10))
			sb.WriteString("'")
		} else {
			sb.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return sb.String()
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
