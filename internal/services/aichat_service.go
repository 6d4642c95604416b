package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// FallbackReply is returned whenever the upstream AI endpoint cannot be
// reached or answers with garbage. Keyword-based canned responses stay on
// the client.
const FallbackReply = "I'm having trouble reaching the career assistant right now. " +
	"Please try again in a moment, or message one of our counselors directly."

type AIChatService struct {
	url    string
	apiKey string
	client *http.Client
	logger zerolog.Logger
}

// NewAIChatService builds the passthrough client. The HTTP client
// deliberately carries no timeout; upstream generation can be slow and
// the original integration ran without one.
func NewAIChatService(url, apiKey string, logger zerolog.Logger) *AIChatService {
	return &AIChatService{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{},
		logger: logger,
	}
}

type AIChatResult struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// Chat forwards the prompt upstream and degrades to FallbackReply on any
// failure instead of surfacing an error to the caller.
func (s *AIChatService) Chat(ctx context.Context, prompt string) (*AIChatResult, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}
	if s.url == "" {
		return &AIChatResult{Reply: FallbackReply, Fallback: true}, nil
	}

	body, err := json.Marshal(map[string]string{"message": trimmed})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ai chat upstream unreachable")
		return &AIChatResult{Reply: FallbackReply, Fallback: true}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("ai chat upstream error")
		return &AIChatResult{Reply: FallbackReply, Fallback: true}, nil
	}

	var upstream struct {
		Reply    string `json:"reply"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		s.logger.Warn().Err(err).Msg("ai chat upstream returned invalid JSON")
		return &AIChatResult{Reply: FallbackReply, Fallback: true}, nil
	}

	reply := upstream.Reply
	if reply == "" {
		reply = upstream.Response
	}
	if reply == "" {
		return &AIChatResult{Reply: FallbackReply, Fallback: true}, nil
	}
	return &AIChatResult{Reply: reply}, nil
}
