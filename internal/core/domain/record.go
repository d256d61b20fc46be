package domain

import "time"

// DocumentRecord is a document persisted by the service.
// The client only caches records; the service is the source of truth.
type DocumentRecord struct {
	// ID is the unique record identifier.
	ID int

	// Username is who uploaded the document.
	Username string

	// OriginalFilename is the name the file was uploaded with.
	OriginalFilename string

	// DocumentType is the classified category.
	DocumentType string

	// Timestamp is when the document was processed. Zero if unparseable.
	Timestamp time.Time

	// TimestampRaw is the timestamp as sent by the service.
	TimestampRaw string

	// Skills are the extracted skills. Empty in list responses.
	Skills []string

	// Metadata holds extracted fields. Empty in list responses.
	Metadata Metadata

	// JobRecommendations are matched jobs. Empty in list responses.
	JobRecommendations []JobRecommendation

	// OCRText is the full recognised text, only present on detail fetch.
	OCRText string
}

// HasTimestamp reports whether the timestamp was parsed.
func (r DocumentRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}
