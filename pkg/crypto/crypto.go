// Package crypto 提供空间码与文件名的静态加密能力：
// 对标识符做带密钥的单向哈希（HMAC-SHA256），对敏感字符串做 AES-256-GCM 对称加密.
// 密钥在进程启动时由配置中的 secret 派生一次，之后全程不变.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// envelopeSep 分隔 nonce 与密文的定界符，信封格式为 hex(nonce):hex(ciphertext).
const envelopeSep = ":"

// ErrDecrypt 表示信封格式非法或密钥不匹配，解密失败.
var ErrDecrypt = errors.New("crypto: decrypt failed")

// Cipher 持有派生后的密钥材料，进程内只构造一次并注入到各使用方.
type Cipher struct {
	key  []byte
	aead cipher.AEAD
}

// New 由配置 secret 派生 32 字节密钥（SHA-256）并构造 AEAD.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("crypto: empty secret")
	}

	sum := sha256.Sum256([]byte(secret))
	key := sum[:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	return &Cipher{key: key, aead: aead}, nil
}

// Hash 计算带密钥的 HMAC-SHA256 十六进制摘要.
// 同一 secret 下对相同输入是确定的，跨进程重启稳定，是空间码的唯一查找机制.
func (c *Cipher) Hash(plaintext string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(plaintext))

	return hex.EncodeToString(mac.Sum(nil))
}

// Encrypt 加密字符串并返回自包含的信封.
// 每次调用生成新的随机 nonce，相同明文两次加密产生不同信封.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto: read nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)

	return hex.EncodeToString(nonce) + envelopeSep + hex.EncodeToString(sealed), nil
}

// Decrypt 解密信封，信封损坏或密钥不匹配时返回 ErrDecrypt.
func (c *Cipher) Decrypt(envelope string) (string, error) {
	nonceHex, cipherHex, found := strings.Cut(envelope, envelopeSep)
	if !found {
		return "", ErrDecrypt
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", ErrDecrypt
	}

	sealed, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", ErrDecrypt
	}

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plain), nil
}

// DecryptOrRaw 尝试解密，任何失败都回退为原始存储值.
// 这是对引入加密之前写入的旧数据的兼容策略，不是安全边界，调用方不应将其视为错误路径.
func (c *Cipher) DecryptOrRaw(value string) string {
	if value == "" {
		return ""
	}

	plain, err := c.Decrypt(value)
	if err != nil {
		return value
	}

	return plain
}
