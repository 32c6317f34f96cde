package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/songdash/internal/shared"
)

// APIError is a non-2xx answer from the backend.
//
// Detail carries FastAPI's {"detail": ...} when the body has one. Validation
// errors (422) send a list, which is kept as compact JSON.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Unwrap exposes [shared.ErrAPIRequest], plus [shared.ErrSongNotFound] for 404s.
func (e *APIError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{shared.ErrAPIRequest, shared.ErrSongNotFound}
	}
	return []error{shared.ErrAPIRequest}
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var errResp struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
		apiErr.Detail = detail
	} else if string(errResp.Detail) != "null" {
		apiErr.Detail = string(errResp.Detail)
	}
	return apiErr
}
