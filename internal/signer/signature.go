package signer

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

const (
	DigestLength    = 32
	SignatureLength = 65
)

// SignFunc 对 32 字节摘要做确定性签名 (RFC6979)。
// recovery 为签名原语给出的恢复标识字节。
type SignFunc func(priv *btcec.PrivateKey, digest []byte) (recovery byte, r, s [32]byte, err error)

// SignCompact 是默认的 SignFunc。
// btcec 的紧凑签名首字节为 27 + recid (未压缩公钥)，原样作为恢复标识返回。
func SignCompact(priv *btcec.PrivateKey, digest []byte) (byte, [32]byte, [32]byte, error) {
	var r, s [32]byte
	if priv == nil {
		return 0, r, s, fmt.Errorf("missing private key")
	}
	if len(digest) != DigestLength {
		return 0, r, s, fmt.Errorf("digest must be %d bytes, got %d", DigestLength, len(digest))
	}

	sig := ecdsa.SignCompact(priv, digest, false)
	copy(r[:], sig[1:33])
	copy(s[:], sig[33:65])
	return sig[0], r, s, nil
}

// EncodeSignature 输出 r || s || v，v = (^recovery) & 1。
// 对 btcec 的首字节 27 + recid 而言 v 恰好等于 recid。
func EncodeSignature(recovery byte, r, s [32]byte) []byte {
	sig := make([]byte, SignatureLength)
	copy(sig[0:32], r[:])
	copy(sig[32:64], s[:])
	sig[64] = ^recovery & 1
	return sig
}

// RecoverPublicKey 从 r || s || v 格式的签名恢复公钥
func RecoverPublicKey(sig, digest []byte) (*btcec.PublicKey, error) {
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	if sig[64] > 1 {
		return nil, fmt.Errorf("invalid recovery id %d", sig[64])
	}

	compact := make([]byte, SignatureLength)
	compact[0] = 27 + sig[64]
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, fmt.Errorf("recover public key: %w", err)
	}
	return pub, nil
}
