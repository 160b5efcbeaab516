package client

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error body is read for the detail text.
const maxErrorBody = 64 << 10

// outcome tags the result of classifying an HTTP response.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeUnauthorized
	outcomeServerError
)

// classification is the pure result of interpreting a response: a tag plus
// the error to surface for the non-success cases. It carries no side
// effects; the recovery protocol for the unauthorized tag is the dispatch
// layer's job.
type classification struct {
	outcome outcome
	err     *APIError
}

// classify interprets an HTTP response. Success is any 2xx status. For
// everything else the error body is read best-effort: the backend's detail
// field when the body is JSON, the raw body text otherwise, and the
// status's standard reason phrase when no body could be read at all.
func classify(resp *http.Response) classification {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return classification{outcome: outcomeOK}
	}

	apiErr := &APIError{
		Status: resp.StatusCode,
		Detail: readErrorDetail(resp),
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return classification{outcome: outcomeUnauthorized, err: apiErr}
	}
	return classification{outcome: outcomeServerError, err: apiErr}
}

// readErrorDetail extracts a human-readable message from an error response.
// Body read failures degrade to the status text; they never propagate.
func readErrorDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		body = nil
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}

	var payload errorResponse
	if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return text
}
