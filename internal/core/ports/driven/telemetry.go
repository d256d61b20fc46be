package driven

import "time"

// Telemetry records operational counters. Services accept a nil Telemetry.
type Telemetry interface {
	// UploadFinished records a submitted batch and its outcome.
	UploadFinished(files int, err error)

	// RefreshApplied records a dashboard refresh that replaced the snapshot.
	RefreshApplied(took time.Duration)

	// RefreshDiscarded records a refresh superseded by a newer one.
	RefreshDiscarded()

	// RefreshFailed records a refresh that kept the previous snapshot.
	RefreshFailed()

	// DeleteFinished records a delete request and its outcome.
	DeleteFinished(err error)
}
