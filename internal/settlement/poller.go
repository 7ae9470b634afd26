// Package settlement moves pending cross-chain transactions to a terminal status.
package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
)

// Ledger exposes the pending transactions and their status changes
type Ledger interface {
	Pending(ctx context.Context, limit int) []crosschain.Transaction
	UpdateStatus(ctx context.Context, id string, status crosschain.Status, reason string) (crosschain.Transaction, error)
}

// Poller settles pending transactions in batches. A settlement attempt that hits an
// injected fault is retried on later ticks until MaxRetry attempts have failed.
type Poller struct {
	ledger       Ledger
	engine       *simulation.Engine
	logger       *slog.Logger
	pollInterval time.Duration
	batchSize    int
	maxRetry     int

	attempts map[string]int
}

func NewPoller(cfg *config.SettlementConfig, ledger Ledger, engine *simulation.Engine, logger *slog.Logger) *Poller {
	if engine == nil {
		engine = simulation.Immediate()
	}
	return &Poller{
		ledger:       ledger,
		engine:       engine,
		logger:       logger,
		pollInterval: cfg.PollingInterval,
		batchSize:    cfg.BatchSize,
		maxRetry:     cfg.MaxRetry,
		attempts:     make(map[string]int),
	}
}

// Start begins polling until context is canceled
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting settlement poller",
		"poll_interval", p.pollInterval.String(),
		"batch_size", p.batchSize,
		"max_retry", p.maxRetry,
	)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Settlement poller stopping due to context cancellation")
			return
		case <-ticker.C:
			settled := p.settlePending(ctx)
			if settled > 0 {
				p.logger.Info("Settled pending transactions", "count", settled)
			}
		}
	}
}

// settlePending processes one batch and returns how many transactions reached a terminal status.
func (p *Poller) settlePending(ctx context.Context) int {
	pending := p.ledger.Pending(ctx, p.batchSize)
	if len(pending) == 0 {
		p.logger.Debug("No pending transactions found")
		return 0
	}

	settled := 0
	for _, tx := range pending {
		if ctx.Err() != nil {
			return settled
		}
		logger := p.logger.With("transaction_id", tx.ID)

		status, reason := crosschain.StatusCompleted, ""
		if faultErr := p.engine.Fault(simulation.OpSettle); faultErr != nil {
			p.attempts[tx.ID]++
			attempts := p.attempts[tx.ID]
			logger.Warn("Settlement attempt failed", "attempts", attempts, "error", faultErr)
			if attempts < p.maxRetry {
				continue
			}
			status = crosschain.StatusFailed
			reason = fmt.Sprintf("settlement failed after %d attempts: %v", attempts, faultErr)
		}

		if _, err := p.ledger.UpdateStatus(ctx, tx.ID, status, reason); err != nil {
			logger.Error("Failed to update transaction status", "status", status, "error", err)
			continue
		}
		delete(p.attempts, tx.ID)
		settled++
		logger.Info("Transaction settled", "status", status)
	}
	return settled
}
