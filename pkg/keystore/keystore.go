package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"tron-wallet-core/pkg/safe_random"
)

// EncryptedKeyJSON 遵循 Ethereum Keystore V3 的结构风格，
// 存储的是设备的助记词 (Mnemonic) 而不是单个私钥
type EncryptedKeyJSON struct {
	Crypto  CryptoJSON `json:"crypto"`
	Id      string     `json:"id"`      // UUID
	Version int        `json:"version"` // 3
}

type CryptoJSON struct {
	Cipher       string       `json:"cipher"`       // "aes-256-gcm"
	CipherText   string       `json:"ciphertext"`   // Hex string
	CipherParams CipherParams `json:"cipherparams"` // IV
	KDF          string       `json:"kdf"`          // "scrypt"
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"` // Hex string
}

type CipherParams struct {
	IV string `json:"iv"` // Hex string
}

type KDFParams struct {
	DKLen int    `json:"dklen"` // Derived Key Length (32)
	N     int    `json:"n"`     // Scrypt N
	R     int    `json:"r"`     // Scrypt r
	P     int    `json:"p"`     // Scrypt p
	Salt  string `json:"salt"`  // Hex string
}

// ScryptParams 控制加密强度
type ScryptParams struct {
	N int
	R int
	P int
}

var (
	// StandardScrypt 与 geth 的标准参数一致 (约 1s / 256MB)
	StandardScrypt = ScryptParams{N: 1 << 18, R: 8, P: 1}
	// LightScrypt 用于测试和低内存设备
	LightScrypt = ScryptParams{N: 1 << 12, R: 8, P: 6}
)

const (
	keystoreVersion = 3
	cipherName      = "aes-256-gcm"
	kdfName         = "scrypt"
	scryptDKLen     = 32
)

var (
	ErrMACMismatch        = errors.New("invalid password or corrupted data (MAC mismatch)")
	ErrUnsupportedVersion = errors.New("unsupported keystore version")
	ErrUnsupportedCipher  = errors.New("unsupported keystore cipher or kdf")
)

// EncryptMnemonic 将助记词使用密码加密为 JSON 结构
func EncryptMnemonic(mnemonic, password string, params ScryptParams) (*EncryptedKeyJSON, error) {
	salt, err := safe_random.GenerateRandomBytes(32)
	if err != nil {
		return nil, err
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, scryptDKLen)
	if err != nil {
		return nil, err
	}
	defer zero(derivedKey)

	gcm, err := newGCM(derivedKey)
	if err != nil {
		return nil, err
	}

	nonce, err := safe_random.GenerateRandomBytes(gcm.NonceSize())
	if err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(mnemonic), nil)

	return &EncryptedKeyJSON{
		Version: keystoreVersion,
		Id:      uuid.NewString(),
		Crypto: CryptoJSON{
			Cipher:     cipherName,
			CipherText: hex.EncodeToString(ciphertext),
			CipherParams: CipherParams{
				IV: hex.EncodeToString(nonce),
			},
			KDF: kdfName,
			KDFParams: KDFParams{
				DKLen: scryptDKLen,
				N:     params.N,
				R:     params.R,
				P:     params.P,
				Salt:  hex.EncodeToString(salt),
			},
			MAC: hex.EncodeToString(mac(derivedKey, ciphertext)),
		},
	}, nil
}

// DecryptMnemonic 解密 Keystore JSON 获取助记词
func DecryptMnemonic(keyJSON *EncryptedKeyJSON, password string) (string, error) {
	if keyJSON.Version != keystoreVersion {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, keyJSON.Version)
	}
	if keyJSON.Crypto.Cipher != cipherName || keyJSON.Crypto.KDF != kdfName {
		return "", ErrUnsupportedCipher
	}

	salt, err := hex.DecodeString(keyJSON.Crypto.KDFParams.Salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt: %w", err)
	}
	nonce, err := hex.DecodeString(keyJSON.Crypto.CipherParams.IV)
	if err != nil {
		return "", fmt.Errorf("invalid iv: %w", err)
	}
	ciphertext, err := hex.DecodeString(keyJSON.Crypto.CipherText)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext: %w", err)
	}
	expectedMAC, err := hex.DecodeString(keyJSON.Crypto.MAC)
	if err != nil {
		return "", fmt.Errorf("invalid mac: %w", err)
	}

	kdf := keyJSON.Crypto.KDFParams
	derivedKey, err := scrypt.Key([]byte(password), salt, kdf.N, kdf.R, kdf.P, kdf.DKLen)
	if err != nil {
		return "", err
	}
	defer zero(derivedKey)

	if subtle.ConstantTimeCompare(expectedMAC, mac(derivedKey, ciphertext)) != 1 {
		return "", ErrMACMismatch
	}

	gcm, err := newGCM(derivedKey)
	if err != nil {
		return "", err
	}
	if len(nonce) != gcm.NonceSize() {
		return "", fmt.Errorf("invalid iv length %d", len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	return string(plaintext), nil
}

// SaveToFile 保存到文件，拒绝覆盖已有文件
func (k *EncryptedKeyJSON) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFromFile 从文件加载
func LoadFromFile(filename string) (*EncryptedKeyJSON, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var k EncryptedKeyJSON
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse keystore %s: %w", filename, err)
	}
	return &k, nil
}

// --- Helpers ---

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// mac = SHA256(derivedKey + ciphertext)
func mac(derivedKey, ciphertext []byte) []byte {
	h := sha256.New()
	h.Write(derivedKey)
	h.Write(ciphertext)
	return h.Sum(nil)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
