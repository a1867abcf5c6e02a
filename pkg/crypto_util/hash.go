package crypto_util

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// SHA256 计算输入的 SHA256 摘要。TRON 交易签名的就是 raw_data 的 SHA256。
func SHA256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// CalculateSHA256 计算输入的 SHA256 哈希值 (Hex)。
// 对 raw_data 调用时结果即为 TRON 的交易 ID。
func CalculateSHA256(data []byte) string {
	return hex.EncodeToString(SHA256(data))
}

// Keccak256 计算输入的 Keccak256 哈希值。
// TRON 与以太坊一样用它从公钥推导地址。
func Keccak256(data ...[]byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return hash.Sum(nil)
}
