package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
)

// mockDocumentAPI implements driven.DocumentAPI with overridable funcs.
type mockDocumentAPI struct {
	UploadFunc         func(ctx context.Context, batch domain.UploadBatch) ([]domain.ProcessingResult, error)
	HealthFunc         func(ctx context.Context) (*domain.HealthSnapshot, error)
	ListDocumentsFunc  func(ctx context.Context, username string) ([]domain.DocumentRecord, error)
	GetDocumentFunc    func(ctx context.Context, id int) (*domain.DocumentRecord, error)
	DeleteDocumentFunc func(ctx context.Context, id int) error
	StatsFunc          func(ctx context.Context) (*domain.StatsSnapshot, error)

	mu      sync.Mutex
	uploads []domain.UploadBatch
	health  int
	lists   []string
	deletes []int
}

var _ driven.DocumentAPI = (*mockDocumentAPI)(nil)

func (m *mockDocumentAPI) Upload(ctx context.Context, batch domain.UploadBatch) ([]domain.ProcessingResult, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, batch)
	m.mu.Unlock()
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, batch)
	}
	return nil, nil
}

func (m *mockDocumentAPI) Health(ctx context.Context) (*domain.HealthSnapshot, error) {
	m.mu.Lock()
	m.health++
	m.mu.Unlock()
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.HealthSnapshot{Status: domain.StatusHealthy}, nil
}

func (m *mockDocumentAPI) ListDocuments(ctx context.Context, username string) ([]domain.DocumentRecord, error) {
	m.mu.Lock()
	m.lists = append(m.lists, username)
	m.mu.Unlock()
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockDocumentAPI) GetDocument(ctx context.Context, id int) (*domain.DocumentRecord, error) {
	if m.GetDocumentFunc != nil {
		return m.GetDocumentFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentAPI) DeleteDocument(ctx context.Context, id int) error {
	m.mu.Lock()
	m.deletes = append(m.deletes, id)
	m.mu.Unlock()
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, id)
	}
	return nil
}

func (m *mockDocumentAPI) Stats(ctx context.Context) (*domain.StatsSnapshot, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.StatsSnapshot{}, nil
}

func (m *mockDocumentAPI) uploadCalls() []domain.UploadBatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.UploadBatch(nil), m.uploads...)
}

func (m *mockDocumentAPI) healthCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.health
}

func (m *mockDocumentAPI) deleteCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.deletes...)
}

// recordingUploadObserver records upload events.
type recordingUploadObserver struct {
	mu        sync.Mutex
	started   []domain.UploadBatch
	completed [][]domain.ProcessingResult
	failures  []domain.Notice
}

var _ driving.UploadObserver = (*recordingUploadObserver)(nil)

func (o *recordingUploadObserver) OnStart(batch domain.UploadBatch) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, batch)
}

func (o *recordingUploadObserver) OnComplete(results []domain.ProcessingResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed = append(o.completed, results)
}

func (o *recordingUploadObserver) OnFailure(notice domain.Notice) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, notice)
}

// recordingDashboardObserver records dashboard events.
type recordingDashboardObserver struct {
	mu        sync.Mutex
	snapshots []domain.DashboardSnapshot
	details   []domain.DocumentRecord
	notices   []domain.Notice
}

var _ driving.DashboardObserver = (*recordingDashboardObserver)(nil)

func (o *recordingDashboardObserver) OnSnapshot(s domain.DashboardSnapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshots = append(o.snapshots, s)
}

func (o *recordingDashboardObserver) OnDetail(r domain.DocumentRecord) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.details = append(o.details, r)
}

func (o *recordingDashboardObserver) OnNotice(n domain.Notice) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notices = append(o.notices, n)
}

func (o *recordingDashboardObserver) noticeList() []domain.Notice {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.Notice(nil), o.notices...)
}

func (o *recordingDashboardObserver) snapshotList() []domain.DashboardSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.DashboardSnapshot(nil), o.snapshots...)
}

// recordingTelemetry counts telemetry events.
type recordingTelemetry struct {
	mu        sync.Mutex
	uploads   int
	applied   int
	discarded int
	failed    int
	deletes   int
}

var _ driven.Telemetry = (*recordingTelemetry)(nil)

func (t *recordingTelemetry) UploadFinished(int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.uploads++
}

func (t *recordingTelemetry) RefreshApplied(time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applied++
}

func (t *recordingTelemetry) RefreshDiscarded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.discarded++
}

func (t *recordingTelemetry) RefreshFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed++
}

func (t *recordingTelemetry) DeleteFinished(error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deletes++
}

func pdfFile(name string) domain.SelectedFile {
	return domain.SelectedFile{Name: name, Path: "/tmp/" + name, SizeBytes: 1024, MimeKind: domain.MimeKindPDF}
}

func pngFile(name string) domain.SelectedFile {
	return domain.SelectedFile{Name: name, Path: "/tmp/" + name, SizeBytes: 2048, MimeKind: domain.MimeKindImage}
}
