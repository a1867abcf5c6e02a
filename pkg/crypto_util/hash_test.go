package crypto_util

import (
	"encoding/hex"
	"testing"
)

func TestHashes(t *testing.T) {
	input := []byte("hello world")

	sha := CalculateSHA256(input)
	if sha != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("SHA256 不匹配: %s", sha)
	}
	if len(SHA256(input)) != 32 {
		t.Errorf("SHA256 摘要长度不匹配: 得到 %d, 期望 32", len(SHA256(input)))
	}

	keccak := hex.EncodeToString(Keccak256(input))
	if keccak != "47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fad" {
		t.Errorf("Keccak256 不匹配: %s", keccak)
	}

	// 分段输入与整体输入结果一致
	split := hex.EncodeToString(Keccak256([]byte("hello"), []byte(" world")))
	if split != keccak {
		t.Errorf("分段 Keccak256 不一致: %s", split)
	}
}
