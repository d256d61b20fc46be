package api

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// unknownDocumentType is used when the service could not classify a document.
const unknownDocumentType = "Unknown"

// timestampLayouts are tried in order. Naive timestamps are server local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func decodeError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrDecode, fmt.Sprintf(format, args...))
}

func (r uploadResponse) toDomain() ([]domain.ProcessingResult, error) {
	if r.Results == nil {
		return nil, decodeError("missing results")
	}
	results := make([]domain.ProcessingResult, 0, len(*r.Results))
	for i, w := range *r.Results {
		res, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (w resultWire) toDomain() (domain.ProcessingResult, error) {
	res := domain.ProcessingResult{
		Filename: w.Filename,
		Status:   domain.ResultStatus(w.Status),
	}
	if w.DocumentID != nil {
		res.DocumentID = *w.DocumentID
	}

	switch res.Status {
	case domain.ResultSuccess:
		if w.Data == nil {
			return domain.ProcessingResult{}, decodeError("successful result %q has no data", w.Filename)
		}
		analysis := w.Data.toDomain()
		res.Data = &analysis
	case domain.ResultError:
		res.Error = "unknown error"
		if w.Error != nil && strings.TrimSpace(*w.Error) != "" {
			res.Error = *w.Error
		}
	default:
		return domain.ProcessingResult{}, decodeError("unknown result status %q", w.Status)
	}
	return res, nil
}

func (w analysisWire) toDomain() domain.DocumentAnalysis {
	return domain.DocumentAnalysis{
		DocumentType:       documentType(w.DocumentType),
		Skills:             nonNil(w.Skills),
		Metadata:           w.Metadata.entries,
		OCRPreview:         w.OCRPreview,
		JobRecommendations: jobsToDomain(w.JobRecommendations),
	}
}

func jobsToDomain(jobs []jobWire) []domain.JobRecommendation {
	out := make([]domain.JobRecommendation, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, domain.JobRecommendation{
			Title:             j.Title,
			Company:           j.Company,
			Location:          j.Location,
			Salary:            j.Salary,
			PostedDate:        j.PostedDate,
			Description:       j.Description,
			EmploymentType:    j.Type,
			Experience:        j.Experience,
			MatchScorePercent: matchScore(j.MatchScore),
			RequiredSkills:    nonNil(j.RequiredSkills),
		})
	}
	return out
}

// matchScore rounds to a whole percent and clamps to 0-100.
func matchScore(score *float64) int {
	if score == nil || math.IsNaN(*score) {
		return 0
	}
	n := math.Round(*score)
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return int(n)
	}
}

func (r healthResponse) toDomain() (*domain.HealthSnapshot, error) {
	if r.Status == nil {
		return nil, decodeError("missing health status")
	}
	h := &domain.HealthSnapshot{
		Status:    domain.HealthStatus(*r.Status),
		Timestamp: parseTimestamp(r.Timestamp),
		Services:  make(map[string]domain.ServiceState, len(r.Services)),
	}
	for name, state := range r.Services {
		h.Services[name] = domain.ServiceState(state)
	}
	if r.Stats != nil {
		h.TotalProcessed = r.Stats.TotalDocumentsProcessed
	}
	return h, nil
}

func (r documentsResponse) toDomain() ([]domain.DocumentRecord, error) {
	if r.Documents == nil {
		return nil, decodeError("missing documents")
	}
	docs := make([]domain.DocumentRecord, 0, len(*r.Documents))
	for i, w := range *r.Documents {
		rec, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, rec)
	}
	return docs, nil
}

func (r documentResponse) toDomain() (*domain.DocumentRecord, error) {
	if r.Document == nil {
		return nil, decodeError("missing document")
	}
	rec, err := r.Document.toDomain()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (w recordWire) toDomain() (domain.DocumentRecord, error) {
	if w.ID == nil || *w.ID <= 0 {
		return domain.DocumentRecord{}, decodeError("document id must be a positive integer")
	}
	raw := w.Timestamp
	if raw == "" {
		raw = w.CreatedAt
	}
	return domain.DocumentRecord{
		ID:                 *w.ID,
		Username:           w.Username,
		OriginalFilename:   w.OriginalFilename,
		DocumentType:       documentType(w.DocumentType),
		Timestamp:          parseTimestamp(raw),
		TimestampRaw:       raw,
		Skills:             nonNil(w.Skills),
		Metadata:           w.Metadata.entries,
		JobRecommendations: jobsToDomain(w.JobRecommendations),
		OCRText:            w.OCRText,
	}, nil
}

func (r statsResponse) toDomain() (*domain.StatsSnapshot, error) {
	if r.Stats == nil {
		return nil, decodeError("missing stats")
	}
	return &domain.StatsSnapshot{
		TotalDocuments: r.Stats.TotalDocuments,
		ByUser:         nonNilMap(r.Stats.ByUser),
		ByDocumentType: nonNilMap(r.Stats.ByDocumentType),
		Recent24h:      r.Stats.Recent24h,
	}, nil
}

// parseTimestamp returns the zero time for empty or unrecognised input.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func documentType(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return unknownDocumentType
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
