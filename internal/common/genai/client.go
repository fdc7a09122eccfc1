// internal/common/genai/client.go
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"automation-advisor/internal/common/config"
	apperrors "automation-advisor/internal/common/errors"
	apphttp "automation-advisor/internal/common/http"
)

const completePath = "/api/ai/complete"

// Request is one structured completion: the prompt plus the raw job text and
// language so the gateway can log and route it.
type Request struct {
	Prompt  string `json:"prompt"`
	JobText string `json:"jobText"`
	Lang    string `json:"lang"`
}

// Completer turns a prompt into structured JSON. Implementations make exactly
// one attempt.
type Completer interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}

// Client talks to the GenAI gateway.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	http    *apphttp.Client
}

func NewClient(cfg config.GenAIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: config.GetDuration(cfg.Timeout),
		http:    apphttp.NewClient(0),
	}
}

// Missing lists the configuration keys that must be set before Complete can work.
func (c *Client) Missing() []string {
	var missing []string
	if c.apiKey == "" {
		missing = append(missing, "apis.genai.api_key")
	}
	if c.baseURL == "" {
		missing = append(missing, "apis.genai.base_url")
	}
	return missing
}

func (c *Client) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	if missing := c.Missing(); len(missing) > 0 {
		return nil, apperrors.NewGenAINotConfiguredError(missing)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := map[string]interface{}{
		"prompt":          req.Prompt,
		"jobText":         req.JobText,
		"lang":            req.Lang,
		"response_format": "json",
	}
	if c.model != "" {
		body["model"] = c.model
	}

	var resp struct {
		Output json.RawMessage `json:"output"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, c.baseURL+completePath,
		map[string]string{"Authorization": "Bearer " + c.apiKey}, body, &resp)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewCompletionTimeoutError(c.timeout, err)
		}
		return nil, apperrors.NewCompletionFailedError(err)
	}

	if len(resp.Output) == 0 || string(resp.Output) == "null" {
		return nil, apperrors.NewCompletionFailedError(errors.New("empty output"))
	}
	return resp.Output, nil
}
