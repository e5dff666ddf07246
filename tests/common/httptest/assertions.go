//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"slot-reservation/internal/handler/httperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// AssertSuccessResponse checks the status and, for 2xx with a target,
// decodes the body into it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "undecodable body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and the error envelope. An empty
// expectedErrorMsg only checks that the envelope decodes.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var envelope httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "undecodable error body: %s", w.Body.String()) {
		return
	}
	assert.NotEmpty(t, envelope.Error.Message, "error envelope without a message")
	if expectedErrorMsg != "" {
		assert.Contains(t, envelope.Error.Message, expectedErrorMsg)
	}
}

// AssertRequestID checks that the response carries a request id.
func AssertRequestID(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err, "X-Request-ID is not a uuid")
}
