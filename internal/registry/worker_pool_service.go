package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/panjf2000/ants/v2"
)

// Registrar registers a single document
type Registrar interface {
	RegisterDocument(ctx context.Context, req document.RegistrationRequest) (string, error)
}

// BatchResult is the outcome of one registration in a batch
type BatchResult struct {
	DocID string `json:"docId"`
	Hash  string `json:"hash,omitempty"`
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// WorkerPoolRegistrar fans batch registrations out over a bounded worker pool,
// so a large batch pays the simulated finality latency once per pool slot
// rather than once per document.
type WorkerPoolRegistrar struct {
	base   Registrar
	pool   *ants.Pool
	logger *slog.Logger
}

func NewWorkerPoolRegistrar(base Registrar, cfg config.WorkerPoolConfig, logger *slog.Logger) (*WorkerPoolRegistrar, error) {
	pool, err := ants.NewPool(cfg.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolRegistrar{
		base:   base,
		pool:   pool,
		logger: logger,
	}, nil
}

// RegisterBatch registers every request and returns the results in request order.
// Requests that cannot be submitted to the pool carry the submit error.
func (r *WorkerPoolRegistrar) RegisterBatch(ctx context.Context, reqs []document.RegistrationRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))
	var wg sync.WaitGroup

	for i, req := range reqs {
		results[i].DocID = req.DocID

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			hash, err := r.base.RegisterDocument(ctx, req)
			results[i].Hash = hash
			results[i].setErr(err)
		})
		if err != nil {
			wg.Done()
			results[i].setErr(err)
			r.logger.Error("Failed to submit registration to worker pool",
				"doc_id", req.DocID,
				"error", err,
			)
		}
	}

	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.logger.Info("Batch registration finished", "documents", len(reqs), "failed", failed)
	return results
}

func (b *BatchResult) setErr(err error) {
	b.Err = err
	if err != nil {
		b.Error = err.Error()
	}
}

// Shutdown gracefully shuts down the worker pool.
func (r *WorkerPoolRegistrar) Shutdown() {
	r.logger.Info("Shutting down worker pool", "running_workers", r.pool.Running())
	r.pool.Release()
}

// Running returns the number of running workers in the pool.
func (r *WorkerPoolRegistrar) Running() int {
	return r.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (r *WorkerPoolRegistrar) Capacity() int {
	return r.pool.Cap()
}
