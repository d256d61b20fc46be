// Package domain defines the core business entities for docparse.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SelectedFile: A local file queued for upload
//   - UploadBatch: The queued files plus the submitting username
//   - ProcessingResult: The service's per-file outcome within a batch
//   - DocumentRecord: A document persisted by the service
//   - HealthSnapshot, StatsSnapshot: Dashboard observations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
