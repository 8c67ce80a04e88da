package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamfinder-app/teamfinder/internal/api/response"
)

func TestNewMeta_GeneratesUUID(t *testing.T) {
	meta := response.NewMeta("")

	_, err := uuid.Parse(meta.RequestID)
	assert.NoError(t, err, "requestId should be a valid UUID")
}

func TestNewMeta_UsesProvidedRequestID(t *testing.T) {
	customID := "my-custom-request-id"

	meta := response.NewMeta(customID)

	assert.Equal(t, customID, meta.RequestID)
}

func TestNewMeta_TimestampIsRFC3339(t *testing.T) {
	before := time.Now().UTC().Add(-1 * time.Second)

	meta := response.NewMeta("")

	parsed, err := time.Parse(time.RFC3339, meta.Timestamp)
	require.NoError(t, err, "timestamp should be valid RFC3339")
	assert.True(t, parsed.After(before) || parsed.Equal(before),
		"timestamp should be recent")
}

func TestSuccess_WritesCorrectEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}
	requestID := "test-req-id"

	response.Success(w, http.StatusOK, data, requestID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err)

	assert.NotNil(t, env["data"])
	assert.Nil(t, env["error"])

	meta := env["meta"].(map[string]interface{})
	assert.Equal(t, requestID, meta["requestId"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestSuccessList_ReportsTotalAndTruncation(t *testing.T) {
	w := httptest.NewRecorder()

	response.SuccessList(w, http.StatusOK, []string{"a", "b"}, 12, true, "req-1")

	assert.Equal(t, http.StatusOK, w.Code)

	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err)

	meta := env["meta"].(map[string]interface{})
	assert.Equal(t, float64(12), meta["total"])
	assert.Equal(t, true, meta["truncated"])
	assert.Equal(t, "req-1", meta["requestId"])
}

func TestErr_WritesErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", "err-req-id")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err)

	assert.Nil(t, env["data"])

	apiErr := env["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", apiErr["code"])
	assert.Equal(t, "invalid input", apiErr["message"])
}

func TestErrWithDetails_IncludesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	details := []map[string]string{{"field": "name", "message": "too short"}}

	response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", details, "req-2")

	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err)

	apiErr := env["error"].(map[string]interface{})
	assert.NotNil(t, apiErr["details"])
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	response.NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
