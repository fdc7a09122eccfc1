// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"automation-advisor/internal/common/config"
	"automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
)

type Client struct {
	client zbc.Client
	config *ClientConfig
	logger logger.Logger
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RetryConfig            *RetryConfig
}

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 5,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// ConfigFrom derives the client settings from the camunda config section.
func ConfigFrom(cfg config.CamundaConfig) *ClientConfig {
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.RequestTimeout),
		RetryConfig:            DefaultRetryConfig,
	}
}

// NewClient dials the gateway and waits until its topology answers.
func NewClient(ctx context.Context, cfg *ClientConfig, log logger.Logger) (*Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = DefaultRetryConfig
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = 10 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, errors.NewBrokerUnavailableError("connect", err)
	}

	c := &Client{
		client: zeebeClient,
		config: cfg,
		logger: logger.ForComponent(log, "zeebe-client"),
	}

	err = withRetry(ctx, cfg.RetryConfig, "topology", c.logger, c.HealthCheck)
	if err != nil {
		_ = zeebeClient.Close()
		return nil, err
	}

	c.logger.Info("connected to Zeebe", map[string]interface{}{"gateway": cfg.GatewayAddress})
	return c, nil
}

func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck asks the gateway for its topology.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return mapZeebeError(err, "topology")
	}
	return nil
}

// withRetry retries op with exponential backoff while the error stays
// retryable.
func withRetry(ctx context.Context, rc *RetryConfig, operation string, log logger.Logger, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		stdErr, ok := errors.AsStandardError(err)
		if (ok && !stdErr.Retryable) || attempt == rc.MaxRetries {
			break
		}

		delay := backoff(rc, attempt)
		log.Warn("zeebe operation failed, retrying", map[string]interface{}{
			"operation": operation,
			"attempt":   attempt + 1,
			"delay":     delay.String(),
			"error":     err.Error(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.NewBrokerUnavailableError(operation, ctx.Err())
		}
	}

	return lastErr
}

func backoff(rc *RetryConfig, attempt int) time.Duration {
	delay := rc.BaseDelay * time.Duration(1<<attempt)
	if delay > rc.MaxDelay || delay <= 0 {
		delay = rc.MaxDelay
	}
	return delay
}

func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

func mapZeebeError(err error, operation string) error {
	wrapped := fmt.Errorf("zeebe operation %q failed: %w", operation, err)
	if isRetryableZeebeError(err) {
		return errors.NewBrokerUnavailableError(operation, wrapped)
	}
	return errors.NewBrokerRejectedError(operation, wrapped)
}
