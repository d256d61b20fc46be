package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// Wire formats returned by the service. Pointer fields distinguish a
// missing key from a zero value so required keys can be enforced.

type uploadResponse struct {
	Results *[]resultWire `json:"results"`
}

type resultWire struct {
	Filename   string        `json:"filename"`
	Status     string        `json:"status"`
	DocumentID *int          `json:"document_id"`
	Data       *analysisWire `json:"data"`
	Error      *string       `json:"error"`
}

type analysisWire struct {
	DocumentType       *string      `json:"document_type"`
	Skills             []string     `json:"skills"`
	Metadata           metadataWire `json:"metadata"`
	OCRPreview         string       `json:"ocr_preview"`
	JobRecommendations []jobWire    `json:"job_recommendations"`
}

type jobWire struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	Experience     string   `json:"experience"`
	Salary         string   `json:"salary"`
	RequiredSkills []string `json:"required_skills"`
	Description    string   `json:"description"`
	PostedDate     string   `json:"posted_date"`
	MatchScore     *float64 `json:"match_score"`
}

type healthResponse struct {
	Status    *string           `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Stats     *struct {
		TotalDocumentsProcessed int `json:"total_documents_processed"`
	} `json:"stats"`
}

type documentsResponse struct {
	Documents *[]recordWire `json:"documents"`
}

type documentResponse struct {
	Document *recordWire `json:"document"`
}

type recordWire struct {
	ID                 *int         `json:"id"`
	Username           string       `json:"username"`
	OriginalFilename   string       `json:"original_filename"`
	DocumentType       *string      `json:"document_type"`
	Timestamp          string       `json:"timestamp"`
	CreatedAt          string       `json:"created_at"`
	Skills             []string     `json:"skills"`
	Metadata           metadataWire `json:"metadata"`
	JobRecommendations []jobWire    `json:"job_recommendations"`
	OCRText            string       `json:"ocr_text"`
}

type statsResponse struct {
	Stats *statsWire `json:"stats"`
}

type statsWire struct {
	TotalDocuments int            `json:"total_documents"`
	ByDocumentType map[string]int `json:"by_document_type"`
	ByUser         map[string]int `json:"by_user"`
	Recent24h      int            `json:"recent_24h"`
}

// metadataWire decodes a JSON object while keeping key order.
type metadataWire struct {
	entries domain.Metadata
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *metadataWire) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		m.entries = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("metadata must be an object")
	}

	entries := domain.Metadata{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metadata key must be a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := decodeMetadataValue(raw)
		if err != nil {
			return fmt.Errorf("metadata %q: %w", key, err)
		}
		entries = append(entries, domain.MetadataEntry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	m.entries = entries
	return nil
}

// decodeMetadataValue accepts a string, a list, a number, a bool or null.
// Nested objects and arrays are kept as compact JSON text.
func decodeMetadataValue(raw json.RawMessage) (domain.MetadataValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.AbsentValue(), nil
	}

	switch trimmed[0] {
	case '{':
		s, ok, err := compactJSON(trimmed)
		if err != nil || !ok {
			return domain.AbsentValue(), err
		}
		return domain.TextValue(s), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return domain.MetadataValue{}, err
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			s, ok, err := scalarString(item)
			if err != nil {
				return domain.MetadataValue{}, err
			}
			if ok {
				list = append(list, s)
			}
		}
		return domain.ListValue(list...), nil
	default:
		s, ok, err := scalarString(trimmed)
		if err != nil {
			return domain.MetadataValue{}, err
		}
		if !ok {
			return domain.AbsentValue(), nil
		}
		return domain.TextValue(s), nil
	}
}

// scalarString renders a JSON value as text. ok is false for null and
// for empty objects or arrays.
func scalarString(raw json.RawMessage) (string, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false, nil
	}
	switch trimmed[0] {
	case '{', '[':
		return compactJSON(trimmed)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", false, err
		}
		return n.String(), true, nil
	}
}

func compactJSON(raw []byte) (string, bool, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", false, err
	}
	s := buf.String()
	if s == "{}" || s == "[]" {
		return "", false, nil
	}
	return s, true, nil
}
