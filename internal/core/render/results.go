package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// Headlines shown on result cards.
const (
	HeadlineSuccess = "Successfully processed"
	HeadlineFailure = "Processing failed"
)

// TimeLayout is how processed-at timestamps are shown.
const TimeLayout = "2006-01-02 15:04:05"

// NotAvailable is shown for missing values.
const NotAvailable = "N/A"

// Field is a labelled value.
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// JobCard is one job recommendation ready for display.
type JobCard struct {
	Title          string   `json:"title" yaml:"title"`
	Company        string   `json:"company" yaml:"company"`
	Location       string   `json:"location,omitempty" yaml:"location,omitempty"`
	Salary         string   `json:"salary,omitempty" yaml:"salary,omitempty"`
	PostedDate     string   `json:"posted_date,omitempty" yaml:"posted_date,omitempty"`
	EmploymentType string   `json:"type,omitempty" yaml:"type,omitempty"`
	Experience     string   `json:"experience,omitempty" yaml:"experience,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	MatchBadge     string   `json:"match,omitempty" yaml:"match,omitempty"`
	Skills         []string `json:"skills" yaml:"skills"`
}

// ResultCard is one file's processing outcome.
type ResultCard struct {
	Filename     string    `json:"filename" yaml:"filename"`
	Succeeded    bool      `json:"succeeded" yaml:"succeeded"`
	Headline     string    `json:"headline" yaml:"headline"`
	DocumentID   int       `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	DocumentType string    `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	Skills       []string  `json:"skills,omitempty" yaml:"skills,omitempty"`
	Metadata     []Field   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	OCRPreview   string    `json:"ocr_preview,omitempty" yaml:"ocr_preview,omitempty"`
	Jobs         []JobCard `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	Error        string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// RecordDetail is a stored document's full view.
type RecordDetail struct {
	ID           string    `json:"id" yaml:"id"`
	Username     string    `json:"username" yaml:"username"`
	Filename     string    `json:"filename" yaml:"filename"`
	DocumentType string    `json:"document_type" yaml:"document_type"`
	ProcessedAt  string    `json:"processed_at" yaml:"processed_at"`
	Skills       []string  `json:"skills,omitempty" yaml:"skills,omitempty"`
	Metadata     []Field   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Jobs         []JobCard `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	OCRText      string    `json:"ocr_text,omitempty" yaml:"ocr_text,omitempty"`
}

// Results renders results in the order given. The order is never changed.
func Results(results []domain.ProcessingResult) []ResultCard {
	cards := make([]ResultCard, 0, len(results))
	for _, r := range results {
		cards = append(cards, Result(r))
	}
	return cards
}

// Result renders a single processing result.
func Result(r domain.ProcessingResult) ResultCard {
	if !r.Succeeded() {
		msg := r.Error
		if msg == "" {
			msg = "unknown error"
		}
		return ResultCard{
			Filename: r.Filename,
			Headline: HeadlineFailure,
			Error:    msg,
		}
	}
	return ResultCard{
		Filename:     r.Filename,
		Succeeded:    true,
		Headline:     HeadlineSuccess,
		DocumentID:   r.DocumentID,
		DocumentType: r.Data.DocumentType,
		Skills:       append([]string(nil), r.Data.Skills...),
		Metadata:     MetadataFields(r.Data.Metadata),
		OCRPreview:   r.Data.OCRPreview,
		Jobs:         Jobs(r.Data.JobRecommendations),
	}
}

// Record renders a stored document.
func Record(rec domain.DocumentRecord) RecordDetail {
	return RecordDetail{
		ID:           DocumentID(rec.ID),
		Username:     rec.Username,
		Filename:     rec.OriginalFilename,
		DocumentType: rec.DocumentType,
		ProcessedAt:  Timestamp(rec.Timestamp, rec.TimestampRaw),
		Skills:       append([]string(nil), rec.Skills...),
		Metadata:     MetadataFields(rec.Metadata),
		Jobs:         Jobs(rec.JobRecommendations),
		OCRText:      rec.OCRText,
	}
}

// DocumentID formats a record id for display.
func DocumentID(id int) string {
	return fmt.Sprintf("#%d", id)
}

// Timestamp formats a parsed timestamp in local time, falling back to the raw text.
func Timestamp(t time.Time, raw string) string {
	if !t.IsZero() {
		return t.Local().Format(TimeLayout)
	}
	if raw != "" {
		return raw
	}
	return NotAvailable
}

// MetadataFields returns the displayable metadata in server order.
// Underscores in keys become spaces and lists are comma separated.
func MetadataFields(m domain.Metadata) []Field {
	fields := make([]Field, 0, len(m))
	for _, e := range m.Displayable() {
		fields = append(fields, Field{
			Label: MetadataLabel(e.Key),
			Value: e.Value.String(),
		})
	}
	return fields
}

// MetadataLabel turns a metadata key into a label.
func MetadataLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// Jobs renders job recommendations in order.
func Jobs(jobs []domain.JobRecommendation) []JobCard {
	cards := make([]JobCard, 0, len(jobs))
	for _, j := range jobs {
		cards = append(cards, Job(j))
	}
	return cards
}

// Job renders a single recommendation. A zero score has no badge.
func Job(j domain.JobRecommendation) JobCard {
	card := JobCard{
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		Salary:         j.Salary,
		PostedDate:     j.PostedDate,
		EmploymentType: j.EmploymentType,
		Experience:     j.Experience,
		Description:    j.Description,
		Skills:         j.SurfacedSkills(),
	}
	if j.HasMatchScore() {
		card.MatchBadge = MatchBadge(j.MatchScorePercent)
	}
	return card
}

// MatchBadge formats a match score.
func MatchBadge(percent int) string {
	return fmt.Sprintf("%d%% Match", percent)
}
