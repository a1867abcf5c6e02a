package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"

	"tron-wallet-core/pkg/crypto_util"
)

const (
	// MainnetPrefix 是 TRON 主网地址的版本字节，Base58 编码后以 "T" 开头
	MainnetPrefix byte = 0x41
	// Length 为带版本字节的原始地址长度
	Length = 21
)

var (
	ErrInvalidChecksum = errors.New("地址校验和错误")
	ErrInvalidPrefix   = errors.New("地址版本字节错误")
	ErrInvalidLength   = errors.New("地址长度错误")
)

// Address 是 21 字节的 TRON 地址 (0x41 + 20 字节公钥哈希)
type Address [Length]byte

// String 返回 Base58Check 编码
func (a Address) String() string {
	return base58.CheckEncode(a[1:], a[0])
}

// Bytes 返回原始 21 字节，用于序列化
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Decode 解析 Base58Check 编码的 TRON 地址
func Decode(s string) (Address, error) {
	var addr Address
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return addr, ErrInvalidChecksum
		}
		return addr, fmt.Errorf("无效的 Base58 地址 %q: %w", s, err)
	}
	if version != MainnetPrefix {
		return addr, ErrInvalidPrefix
	}
	if len(payload) != Length-1 {
		return addr, ErrInvalidLength
	}
	addr[0] = version
	copy(addr[1:], payload)
	return addr, nil
}

// FromPublicKey 由 secp256k1 公钥推导地址: 0x41 + Keccak256(X||Y)[12:]
func FromPublicKey(pub *btcec.PublicKey) Address {
	var addr Address
	uncompressed := pub.SerializeUncompressed()
	hash := crypto_util.Keccak256(uncompressed[1:])
	addr[0] = MainnetPrefix
	copy(addr[1:], hash[12:])
	return addr
}
