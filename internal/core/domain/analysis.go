package domain

// ResultStatus is the per-file outcome of a batch.
type ResultStatus string

// Result statuses reported by the service.
const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s ResultStatus) IsValid() bool {
	return s == ResultSuccess || s == ResultError
}

// ProcessingResult is the service's outcome for one submitted file.
// Data is set iff Status is success; Error is set iff Status is error.
type ProcessingResult struct {
	// Filename is the original name of the submitted file.
	Filename string

	// Status is success or error.
	Status ResultStatus

	// DocumentID is the id of the stored record, 0 when not stored.
	DocumentID int

	// Data is the analysis for a successful file.
	Data *DocumentAnalysis

	// Error explains a failed file.
	Error string
}

// Succeeded reports whether the file was processed.
func (r ProcessingResult) Succeeded() bool {
	return r.Status == ResultSuccess && r.Data != nil
}

// DocumentAnalysis is what the service extracted from one document.
type DocumentAnalysis struct {
	// DocumentType is the classified category (e.g. "Internship Certificate").
	DocumentType string

	// Skills are the extracted skills, possibly empty.
	Skills []string

	// Metadata holds extracted fields in service order.
	Metadata Metadata

	// OCRPreview is the leading part of the recognised text.
	OCRPreview string

	// JobRecommendations are matched jobs, in service order.
	JobRecommendations []JobRecommendation
}

// MaxSurfacedSkills is how many required skills a job card shows.
const MaxSurfacedSkills = 5

// JobRecommendation is a job matched against extracted skills.
type JobRecommendation struct {
	Title          string
	Company        string
	Location       string
	Salary         string
	PostedDate     string
	Description    string
	EmploymentType string
	Experience     string

	// MatchScorePercent is 0-100. Zero means no score applies.
	MatchScorePercent int

	// RequiredSkills is the full list; only the first MaxSurfacedSkills are shown.
	RequiredSkills []string
}

// HasMatchScore reports whether the score should be displayed.
func (j JobRecommendation) HasMatchScore() bool {
	return j.MatchScorePercent > 0
}

// SurfacedSkills returns the required skills to display.
// The returned slice is a copy; the model keeps the full list.
func (j JobRecommendation) SurfacedSkills() []string {
	n := len(j.RequiredSkills)
	if n > MaxSurfacedSkills {
		n = MaxSurfacedSkills
	}
	out := make([]string, n)
	copy(out, j.RequiredSkills[:n])
	return out
}
