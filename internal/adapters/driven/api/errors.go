package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// maxErrorBody bounds the raw body kept on an APIError.
const maxErrorBody = 4 << 10

// errorResponse is the service's error body: {"detail": ...}.
// detail is a string for raised errors and a list of {msg} objects for
// request validation failures.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

func newAPIError(status int, body []byte) *domain.APIError {
	raw := body
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	return &domain.APIError{
		StatusCode: status,
		Detail:     extractDetail(body),
		Body:       string(raw),
	}
}

// extractDetail returns the structured error detail, or "" when the body has none.
func extractDetail(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return ""
	}

	trimmed := bytes.TrimSpace(resp.Detail)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case trimmed[0] == '[':
		var items []validationDetail
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ""
		}
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	default:
		return string(trimmed)
	}
}
