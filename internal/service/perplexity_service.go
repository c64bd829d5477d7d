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

// PerplexityService 联网检索型补全客户端，接口与DeepSeek同为OpenAI兼容
type PerplexityService struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Client  *http.Client
}

func NewPerplexityService(cfg *config.ResearchConfig) *PerplexityService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &PerplexityService{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *PerplexityService) Chat(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error) {
	if s.APIKey == "" {
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
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

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
		logger.Log.Error("Research backend request failed",
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
