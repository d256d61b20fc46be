package tui

import (
	"context"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
)

// MockPoller implements driving.DashboardPoller for testing.
type MockPoller struct {
	StartFunc        func(ctx context.Context) error
	ViewDocumentFunc func(ctx context.Context, id int) (*domain.DocumentRecord, error)
	DeleteFunc       func(ctx context.Context, id int, confirm driving.ConfirmFunc) error
	closedDetail     int
}

func (m *MockPoller) Start(ctx context.Context) error {
	if m.StartFunc != nil {
		return m.StartFunc(ctx)
	}
	return nil
}

func (m *MockPoller) Stop() error { return nil }

func (m *MockPoller) RefreshAll(ctx context.Context) error { return nil }

func (m *MockPoller) Snapshot() (domain.DashboardSnapshot, bool) {
	return domain.DashboardSnapshot{}, false
}

func (m *MockPoller) ViewDocument(ctx context.Context, id int) (*domain.DocumentRecord, error) {
	if m.ViewDocumentFunc != nil {
		return m.ViewDocumentFunc(ctx, id)
	}
	return &domain.DocumentRecord{ID: id}, nil
}

func (m *MockPoller) Detail() *domain.DocumentRecord { return nil }

func (m *MockPoller) CloseDetail() { m.closedDetail++ }

func (m *MockPoller) DeleteDocument(ctx context.Context, id int, confirm driving.ConfirmFunc) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, confirm)
	}
	return nil
}

func (m *MockPoller) LastError() error { return nil }

// MockUploads implements driving.UploadOrchestrator for testing.
type MockUploads struct {
	queue []domain.SelectedFile
}

func (m *MockUploads) AddFiles(files ...domain.SelectedFile) error {
	m.queue = append(m.queue, files...)
	return nil
}

func (m *MockUploads) RemoveFile(index int) error {
	if index < 0 || index >= len(m.queue) {
		return domain.ErrIndexOutOfRange
	}
	m.queue = append(m.queue[:index], m.queue[index+1:]...)
	return nil
}

func (m *MockUploads) Queue() []domain.SelectedFile {
	return append([]domain.SelectedFile(nil), m.queue...)
}

func (m *MockUploads) Results() []domain.ProcessingResult { return nil }

func (m *MockUploads) InFlight() bool { return false }

func (m *MockUploads) CanSubmit(username string) bool {
	return domain.UploadBatch{Username: username, Files: m.queue}.Validate() == nil
}

func (m *MockUploads) Submit(ctx context.Context, username string) ([]domain.ProcessingResult, error) {
	return nil, domain.UploadBatch{Username: username, Files: m.queue}.Validate()
}

func inspectStub(path string) (domain.SelectedFile, error) {
	return domain.SelectedFile{Name: path, Path: path, SizeBytes: 10, MimeKind: domain.MimeKindPDF}, nil
}
