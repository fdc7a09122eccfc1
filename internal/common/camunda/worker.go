// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"automation-advisor/internal/common/config"
	"automation-advisor/internal/common/logger"
)

// Registry opens job workers and closes them together on shutdown.
type Registry struct {
	client  zbc.Client
	logger  logger.Logger
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewRegistry(client zbc.Client, log logger.Logger) *Registry {
	return &Registry{
		client:  client,
		logger:  logger.ForComponent(log, "worker-registry"),
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType unless the config disables it. It
// reports whether a worker was opened.
func (r *Registry) Start(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		r.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workers[taskType]; exists {
		r.logger.Warn("worker already started", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := r.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()
	r.workers[taskType] = jw

	r.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Running lists the task types with an open worker.
func (r *Registry) Running() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.workers))
	for taskType := range r.workers {
		out = append(out, taskType)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for taskType, jw := range r.workers {
		r.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		jw.Close()
		jw.AwaitClose()
		delete(r.workers, taskType)
	}
}
