// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automation-advisor/internal/common/config"
	"automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
)

// ==========================
// Error mapping
// ==========================

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  errors.ErrorCode
		retryable bool
	}{
		{name: "connection refused", err: stderrors.New("rpc error: connection refused"), wantCode: errors.ErrCodeBrokerUnavailable, retryable: true},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: errors.ErrCodeBrokerUnavailable, retryable: true},
		{name: "grpc unavailable", err: stderrors.New("code = Unavailable desc = no gateway"), wantCode: errors.ErrCodeBrokerUnavailable, retryable: true},
		{name: "not found", err: stderrors.New("job not found"), wantCode: errors.ErrCodeBrokerRejected},
		{name: "permission", err: stderrors.New("permission denied"), wantCode: errors.ErrCodeBrokerRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapZeebeError(tt.err, "topology")
			assert.True(t, errors.IsCode(mapped, tt.wantCode))

			stdErr, ok := errors.AsStandardError(mapped)
			require.True(t, ok)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.True(t, stderrors.Is(mapped, tt.err))
		})
	}
}

// ==========================
// Retry
// ==========================

func fastRetry() *RetryConfig {
	return &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func TestWithRetry_RecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), fastRetry(), "topology", logger.NewTestLogger(t), func(context.Context) error {
		calls++
		if calls < 3 {
			return mapZeebeError(stderrors.New("connection refused"), "topology")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnRejection(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), fastRetry(), "topology", logger.NewTestLogger(t), func(context.Context) error {
		calls++
		return mapZeebeError(stderrors.New("permission denied"), "topology")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBrokerRejected))
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), fastRetry(), "topology", logger.NewTestLogger(t), func(context.Context) error {
		calls++
		return mapZeebeError(stderrors.New("unavailable"), "topology")
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBrokerUnavailable))
}

func TestWithRetry_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rc := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	err := withRetry(ctx, rc, "topology", logger.NewNoOpLogger(), func(context.Context) error {
		cancel()
		return mapZeebeError(stderrors.New("unavailable"), "topology")
	})

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestBackoff(t *testing.T) {
	rc := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, backoff(rc, 0))
	assert.Equal(t, 4*time.Second, backoff(rc, 2))
	assert.Equal(t, 5*time.Second, backoff(rc, 3))
	assert.Equal(t, 5*time.Second, backoff(rc, 70))
}

func TestConfigFrom(t *testing.T) {
	cc := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 15000})

	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.Equal(t, 15*time.Second, cc.ConnectionTimeout)
	assert.Same(t, DefaultRetryConfig, cc.RetryConfig)
}

// ==========================
// Registry
// ==========================

func TestRegistry_DisabledWorkerNotOpened(t *testing.T) {
	r := NewRegistry(nil, logger.NewTestLogger(t))

	started := r.Start("analyze-job-text", config.WorkerConfig{Enabled: false}, nil)

	assert.False(t, started)
	assert.Empty(t, r.Running())
	r.Close()
}
