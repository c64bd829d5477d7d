package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"silabo_backend/internal/config"
	"silabo_backend/internal/util"
	"silabo_backend/pkg/logger"

	"go.uber.org/zap"
)

// ChatMessage OpenAI兼容的消息结构
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// KeyInfo 诊断端点返回的密钥元信息，绝不包含完整密钥
type KeyInfo struct {
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	APIKeyLength     int    `json:"apiKeyLength"`
	APIKeyPrefix     string `json:"apiKeyPrefix"`
	Environment      string `json:"environment"`
}

// AIService DeepSeek chat-completions 客户端
type AIService struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Client  *http.Client
}

func NewAIService(cfg *config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &AIService{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Chat 单轮补全。apiKey 为空时使用服务端配置的密钥
func (s *AIService) Chat(ctx context.Context, apiKey string, messages []ChatMessage, maxTokens int) (string, error) {
	key := apiKey
	if key == "" {
		key = s.APIKey
	}
	if key == "" {
		return "", util.ErrAIKeyNotSet
	}

	body, err := json.Marshal(chatRequest{
		Model:       s.Model,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return "", util.ErrAITimeout
		}
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", util.ErrAIUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", util.ErrAIRateLimited
	case resp.StatusCode != http.StatusOK:
		logger.Log.Error("Upstream model request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(raw), 500)))
		return "", fmt.Errorf("upstream devolvió estado %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", util.ErrAIEmptyResponse
	}

	return parsed.Choices[0].Message.Content, nil
}

// KeyInfo 只暴露前8个字符，用于排查配置问题
func (s *AIService) KeyInfo(environment string) KeyInfo {
	info := KeyInfo{
		APIKeyConfigured: s.APIKey != "",
		APIKeyLength:     len(s.APIKey),
		Environment:      environment,
	}
	if len(s.APIKey) >= 8 {
		info.APIKeyPrefix = s.APIKey[:8] + "..."
	}
	return info
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
