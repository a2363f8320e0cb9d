package rule_test

import (
	"testing"

	"github.com/yeisme/filespad/pkg/rule"
)

// configStruct 用于测试 ValidateStruct，标签与配置结构体一致使用 rule.
type configStruct struct {
	Port    int    `rule:"min=1,max=65535"`
	BaseURL string `rule:"url"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	if rule.Engine() == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	valid := configStruct{Port: 5000, BaseURL: "http://localhost:5000"}
	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 端口越界
	invalidPort := configStruct{Port: 70000, BaseURL: "http://localhost:5000"}
	if err := rule.ValidateStruct(invalidPort); err == nil {
		t.Error("Expected error for out-of-range port, got nil")
	}

	// base_url 不是合法 URL
	invalidURL := configStruct{Port: 5000, BaseURL: "not a url"}
	if err := rule.ValidateStruct(invalidURL); err == nil {
		t.Error("Expected error for invalid base url, got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("TEAM1", "required,min=3"); err != nil {
		t.Errorf("Expected no error for valid code, got %v", err)
	}

	if err := rule.ValidateVar("", "required"); err == nil {
		t.Error("Expected error for empty required value, got nil")
	}

	if err := rule.ValidateVar(0.5, "gt=0"); err != nil {
		t.Errorf("Expected no error for positive duration, got %v", err)
	}

	if err := rule.ValidateVar(-1.0, "gt=0"); err == nil {
		t.Error("Expected error for negative duration, got nil")
	}
}
