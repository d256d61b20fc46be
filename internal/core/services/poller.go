package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// Ensure DashboardPoller implements the interface.
var _ driving.DashboardPoller = (*DashboardPoller)(nil)

// User-visible dashboard notices.
const (
	NoticeFetchFailed   = "Failed to fetch dashboard data"
	NoticeDetailFailed  = "Failed to load document details"
	NoticeDeleteFailed  = "Failed to delete document"
	NoticeDeleteSuccess = "Document deleted successfully"
	DeleteConfirmPrompt = "Are you sure you want to delete this document?"
)

// DashboardPoller keeps a health, documents and stats snapshot refreshed.
type DashboardPoller struct {
	api       driven.DocumentAPI
	observer  driving.DashboardObserver
	telemetry driven.Telemetry
	interval  time.Duration
	username  string
	now       func() time.Time

	mu          sync.Mutex
	snapshot    domain.DashboardSnapshot
	hasSnapshot bool
	detail      *domain.DocumentRecord
	lastErr     error
	nextGen     uint64
	appliedGen  uint64
	running     bool
	stopped     bool

	// emitMu orders OnSnapshot calls by generation.
	emitMu     sync.Mutex
	emittedGen uint64

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDashboardPoller creates a poller. The observer and telemetry are optional.
// A non-empty settings.Username restricts the document list to that user.
func NewDashboardPoller(
	api driven.DocumentAPI,
	settings domain.ClientSettings,
	observer driving.DashboardObserver,
	telemetry driven.Telemetry,
) *DashboardPoller {
	if observer == nil {
		observer = driving.NopDashboardObserver{}
	}
	interval := settings.PollInterval
	if interval <= 0 {
		interval = domain.DefaultPollInterval
	}
	return &DashboardPoller{
		api:       api,
		observer:  observer,
		telemetry: telemetry,
		interval:  interval,
		username:  settings.Username,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start refreshes immediately and then on every interval. It does not block.
func (p *DashboardPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return domain.ErrPollerStopped
	}
	if p.running {
		p.mu.Unlock()
		return nil // Already running
	}
	p.running = true
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(ctx)
	return nil
}

// Stop cancels the timer and waits for the loop to exit.
// Refreshes already in flight complete and are discarded.
func (p *DashboardPoller) Stop() error {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.running = false
		p.mu.Unlock()
		close(p.stopCh)
	})
	p.wg.Wait()
	return nil
}

func (p *DashboardPoller) run(ctx context.Context) {
	defer p.wg.Done()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	p.spawnRefresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.spawnRefresh(ctx)
		}
	}
}

// spawnRefresh runs a refresh without holding up the ticker.
func (p *DashboardPoller) spawnRefresh(ctx context.Context) {
	go func() {
		if err := p.RefreshAll(ctx); err != nil && !errors.Is(err, domain.ErrPollerStopped) {
			logger.Debug("dashboard: scheduled refresh failed: %v", err)
		}
	}()
}

// RefreshAll fetches health, documents and stats concurrently and applies
// them together once all three have settled.
func (p *DashboardPoller) RefreshAll(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return domain.ErrPollerStopped
	}
	p.nextGen++
	gen := p.nextGen
	p.mu.Unlock()

	start := time.Now()
	var (
		health *domain.HealthSnapshot
		docs   []domain.DocumentRecord
		stats  *domain.StatsSnapshot
	)

	// A plain Group: a failed fetch must not cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		h, err := p.api.Health(ctx)
		if err != nil {
			return fmt.Errorf("health: %w", err)
		}
		health = h
		return nil
	})
	g.Go(func() error {
		d, err := p.api.ListDocuments(ctx, p.username)
		if err != nil {
			return fmt.Errorf("documents: %w", err)
		}
		docs = d
		return nil
	})
	g.Go(func() error {
		s, err := p.api.Stats(ctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		stats = s
		return nil
	})
	fetchErr := g.Wait()

	return p.apply(gen, health, docs, stats, fetchErr, time.Since(start))
}

func (p *DashboardPoller) apply(
	gen uint64,
	health *domain.HealthSnapshot,
	docs []domain.DocumentRecord,
	stats *domain.StatsSnapshot,
	fetchErr error,
	took time.Duration,
) error {
	p.mu.Lock()

	if p.stopped {
		p.mu.Unlock()
		logger.Debug("dashboard: discarding refresh %d after stop", gen)
		return nil
	}

	if gen < p.appliedGen {
		p.mu.Unlock()
		logger.Debug("dashboard: discarding stale refresh %d (applied %d)", gen, p.appliedGen)
		if p.telemetry != nil {
			p.telemetry.RefreshDiscarded()
		}
		return nil
	}

	if fetchErr != nil {
		p.lastErr = fmt.Errorf("%w: %w", domain.ErrFetchFailed, fetchErr)
		err := p.lastErr
		p.mu.Unlock()

		logger.Warn("dashboard: refresh %d failed: %v", gen, fetchErr)
		if p.telemetry != nil {
			p.telemetry.RefreshFailed()
		}
		p.observer.OnNotice(domain.Notice{Level: domain.NoticeError, Message: NoticeFetchFailed})
		return err
	}

	snap := domain.DashboardSnapshot{
		Documents:  append([]domain.DocumentRecord(nil), docs...),
		Generation: gen,
		FetchedAt:  p.now(),
	}
	if health != nil {
		snap.Health = *health
	}
	if stats != nil {
		snap.Stats = *stats
	}
	p.snapshot = snap
	p.hasSnapshot = true
	p.appliedGen = gen
	p.lastErr = nil
	p.mu.Unlock()

	logger.Debug("dashboard: applied refresh %d in %s", gen, took)
	if p.telemetry != nil {
		p.telemetry.RefreshApplied(took)
	}
	p.emitSnapshot(snap)
	return nil
}

func (p *DashboardPoller) emitSnapshot(snap domain.DashboardSnapshot) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	if snap.Generation < p.emittedGen {
		return
	}
	p.emittedGen = snap.Generation
	p.observer.OnSnapshot(snap)
}

// Snapshot returns the last applied snapshot.
func (p *DashboardPoller) Snapshot() (domain.DashboardSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := p.snapshot
	snap.Documents = append([]domain.DocumentRecord(nil), p.snapshot.Documents...)
	return snap, p.hasSnapshot
}

// LastError returns the error of the last failed refresh.
func (p *DashboardPoller) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// ViewDocument fetches a record for the detail view.
// The current detail is kept if the fetch fails.
func (p *DashboardPoller) ViewDocument(ctx context.Context, id int) (*domain.DocumentRecord, error) {
	rec, err := p.api.GetDocument(ctx, id)
	if err != nil {
		logger.Warn("dashboard: get document %d: %v", id, err)
		p.observer.OnNotice(domain.Notice{Level: domain.NoticeError, Message: NoticeDetailFailed})
		return nil, fmt.Errorf("view document %d: %w", id, err)
	}

	detail := *rec
	p.mu.Lock()
	p.detail = &detail
	p.mu.Unlock()

	p.observer.OnDetail(detail)
	return rec, nil
}

// Detail returns a copy of the current detail, nil when none is open.
func (p *DashboardPoller) Detail() *domain.DocumentRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detail == nil {
		return nil
	}
	detail := *p.detail
	return &detail
}

// CloseDetail clears the current detail.
func (p *DashboardPoller) CloseDetail() {
	p.mu.Lock()
	p.detail = nil
	p.mu.Unlock()
}

// DeleteDocument deletes a record once confirmed and then refreshes once.
func (p *DashboardPoller) DeleteDocument(ctx context.Context, id int, confirm driving.ConfirmFunc) error {
	if confirm == nil || !confirm(DeleteConfirmPrompt) {
		return domain.ErrNotConfirmed
	}

	err := p.api.DeleteDocument(ctx, id)
	if p.telemetry != nil {
		p.telemetry.DeleteFinished(err)
	}
	if err != nil {
		logger.Warn("dashboard: delete document %d: %v", id, err)
		p.observer.OnNotice(domain.Notice{Level: domain.NoticeError, Message: NoticeDeleteFailed})
		return fmt.Errorf("delete document %d: %w", id, err)
	}

	logger.Info("dashboard: deleted document %d", id)
	p.observer.OnNotice(domain.Notice{Level: domain.NoticeInfo, Message: NoticeDeleteSuccess})

	// The refresh reports its own failure through the observer.
	if err := p.RefreshAll(ctx); err != nil {
		logger.Debug("dashboard: refresh after delete: %v", err)
	}
	return nil
}
