package crypto_test

import (
	"strings"
	"testing"

	"github.com/yeisme/filespad/pkg/crypto"
)

// TestNewEmptySecret 空 secret 应拒绝构造.
func TestNewEmptySecret(t *testing.T) {
	if _, err := crypto.New(""); err == nil {
		t.Error("Expected error for empty secret, got nil")
	}
}

// TestHashDeterministic 同一 secret 下哈希确定且跨实例稳定.
func TestHashDeterministic(t *testing.T) {
	c1, err := crypto.New("test-secret")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c2, err := crypto.New("test-secret")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c1.Hash("TEAM1") != c1.Hash("TEAM1") {
		t.Error("Hash is not deterministic within one instance")
	}

	// 模拟进程重启：新实例、相同 secret
	if c1.Hash("TEAM1") != c2.Hash("TEAM1") {
		t.Error("Hash differs across instances with the same secret")
	}

	if c1.Hash("TEAM1") == c1.Hash("TEAM2") {
		t.Error("Different inputs produced the same digest")
	}
}

// TestHashDifferentSecrets 不同 secret 产生不同摘要.
func TestHashDifferentSecrets(t *testing.T) {
	c1, _ := crypto.New("secret-a")
	c2, _ := crypto.New("secret-b")

	if c1.Hash("TEAM1") == c2.Hash("TEAM1") {
		t.Error("Different secrets produced the same digest")
	}
}

// TestEncryptDecryptRoundTrip 加解密往返一致，且两次加密信封不同.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := crypto.New("test-secret")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, plain := range []string{"notes.pdf", "", "带中文的文件名.txt", strings.Repeat("x", 4096)} {
		env1, err := c.Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		env2, err := c.Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		if env1 == env2 {
			t.Errorf("Two encryptions of %q produced identical envelopes", plain)
		}

		got, err := c.Decrypt(env1)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}

		if got != plain {
			t.Errorf("Round trip mismatch: got %q, want %q", got, plain)
		}
	}
}

// TestDecryptMalformed 非法信封返回 ErrDecrypt.
func TestDecryptMalformed(t *testing.T) {
	c, _ := crypto.New("test-secret")

	for _, envelope := range []string{"", "no-separator", "zz:zz", "abcd:", "abcd:1234"} {
		if _, err := c.Decrypt(envelope); err == nil {
			t.Errorf("Expected error for malformed envelope %q, got nil", envelope)
		}
	}
}

// TestDecryptWrongKey 不同密钥下的信封解密失败.
func TestDecryptWrongKey(t *testing.T) {
	c1, _ := crypto.New("secret-a")
	c2, _ := crypto.New("secret-b")

	env, err := c1.Encrypt("notes.pdf")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := c2.Decrypt(env); err == nil {
		t.Error("Expected error decrypting with wrong key, got nil")
	}
}

// TestDecryptOrRaw 解密失败时回退为原始值（旧明文数据兼容）.
func TestDecryptOrRaw(t *testing.T) {
	c, _ := crypto.New("test-secret")

	// 正常信封返回明文
	env, _ := c.Encrypt("notes.pdf")
	if got := c.DecryptOrRaw(env); got != "notes.pdf" {
		t.Errorf("DecryptOrRaw(envelope) = %q, want %q", got, "notes.pdf")
	}

	// 旧的未加密值按原样返回
	if got := c.DecryptOrRaw("legacy-plain.txt"); got != "legacy-plain.txt" {
		t.Errorf("DecryptOrRaw(legacy) = %q, want raw value", got)
	}

	// 空值返回空
	if got := c.DecryptOrRaw(""); got != "" {
		t.Errorf("DecryptOrRaw(\"\") = %q, want empty", got)
	}
}
