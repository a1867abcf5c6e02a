package safe_random

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Reader 是全局共享的加密安全随机数来源，测试中可以替换
var Reader io.Reader = rand.Reader

// GenerateRandomBytes 生成指定长度的安全随机字节 (Keystore 的 salt 和 nonce)。
// 随机数来源读取不足 n 字节时返回错误。
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, fmt.Errorf("生成随机字节失败: %w", err)
	}
	return b, nil
}
