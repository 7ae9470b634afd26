// Package upload simulates document uploads whose progress is observed by polling.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/metrics"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
)

// Status is the state of an upload
type Status string

const (
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

const (
	progressStep = 10
	// Faults are only injected once an upload is this far along.
	faultThreshold = 80
)

// ErrTrackerClosed is returned by Start once Close has been called.
var ErrTrackerClosed = errors.New("upload tracker is closed")

// Upload is a polled snapshot of one upload
type Upload struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	Size      int64     `json:"size"`
	Progress  int       `json:"progress"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrUploadNotFound indicates no upload carries the id
type ErrUploadNotFound struct {
	ID string
}

func (e ErrUploadNotFound) Error() string {
	return "upload not found: " + e.ID
}

// Is implements the errors.Is interface for ErrUploadNotFound
func (e ErrUploadNotFound) Is(target error) bool {
	_, ok := target.(ErrUploadNotFound)
	return ok
}

// Tracker advances uploads in the background. Step pacing and failures come
// from the engine's upload_step latency and fault policy.
type Tracker struct {
	engine  *simulation.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu guards closed so no run is added to wg once Close is waiting.
	mu      sync.RWMutex
	closed  bool
	uploads map[string]*Upload
}

func NewTracker(logger *slog.Logger, engine *simulation.Engine, m *metrics.Metrics) *Tracker {
	if engine == nil {
		engine = simulation.Immediate()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		engine:  engine,
		metrics: m,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		uploads: make(map[string]*Upload),
	}
}

// Start begins a new upload and returns its initial snapshot.
func (t *Tracker) Start(_ context.Context, fileName string, size int64) (Upload, error) {
	if strings.TrimSpace(fileName) == "" {
		return Upload{}, shared.Required("fileName")
	}
	if size < 0 {
		return Upload{}, shared.ValidationError{Field: "size", Reason: "must not be negative"}
	}
	now := t.engine.Now()
	u := &Upload{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Size:      size,
		Status:    StatusUploading,
		StartedAt: now,
		UpdatedAt: now,
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Upload{}, ErrTrackerClosed
	}
	t.uploads[u.ID] = u
	snapshot := *u
	t.wg.Add(1)
	t.mu.Unlock()

	go t.run(u.ID)

	t.logger.Info("Upload started", "upload_id", u.ID, "file_name", fileName, "size", size)
	return snapshot, nil
}

func (t *Tracker) run(id string) {
	defer t.wg.Done()

	for progress := progressStep; progress <= 100; progress += progressStep {
		if err := t.engine.Wait(t.ctx, simulation.OpUploadStep); err != nil {
			t.finish(id, StatusError, "upload aborted: "+err.Error())
			return
		}
		if progress >= faultThreshold {
			if err := t.engine.Fault(simulation.OpUploadStep); err != nil {
				t.finish(id, StatusError, fmt.Sprintf("upload failed at %d%%: %v", progress, err))
				return
			}
		}
		if progress == 100 {
			t.update(id, progress)
			t.finish(id, StatusCompleted, "")
			return
		}
		t.update(id, progress)
	}
}

func (t *Tracker) update(id string, progress int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u := t.uploads[id]
	u.Progress = progress
	u.UpdatedAt = t.engine.Now()
}

func (t *Tracker) finish(id string, status Status, message string) {
	t.mu.Lock()
	u := t.uploads[id]
	u.Status = status
	u.Message = message
	u.UpdatedAt = t.engine.Now()
	progress := u.Progress
	t.mu.Unlock()

	t.metrics.IncrementUploadFinished(string(status))
	if status == StatusError {
		t.logger.Warn("Upload failed", "upload_id", id, "progress", progress, "message", message)
		return
	}
	t.logger.Info("Upload completed", "upload_id", id)
}

// Status returns the current snapshot of an upload.
func (t *Tracker) Status(_ context.Context, id string) (Upload, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.uploads[id]
	if !ok {
		return Upload{}, ErrUploadNotFound{ID: id}
	}
	return *u, nil
}

// List returns every upload, most recently started first.
func (t *Tracker) List(_ context.Context) []Upload {
	t.mu.RLock()
	out := make([]Upload, 0, len(t.uploads))
	for _, u := range t.uploads {
		out = append(out, *u)
	}
	t.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

// Close aborts running uploads and waits for them to stop. Later Starts fail
// with ErrTrackerClosed.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
}
