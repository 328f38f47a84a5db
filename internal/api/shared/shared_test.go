package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/signdeck/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	first := GetTraceID(ctx)
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, GetTraceID(SetTraceID(context.Background())))
}

func TestLearnerID(t *testing.T) {
	t.Parallel()

	_, ok := GetLearnerID(context.Background())
	assert.False(t, ok)

	_, ok = GetLearnerID(WithLearnerID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetLearnerID(WithLearnerID(context.Background(), "alice"))
	assert.True(t, ok)
	assert.Equal(t, "alice", id)
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RespondWithJSON(rec, req, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondWithJSON(rec, req, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()
	ctx := SetTraceID(logger.WithLogger(context.Background(), log))
	req := httptest.NewRequest(http.MethodGet, "/api/items/x", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	secret := errors.New("dial postgres://admin:hunter2@db:5432/app failed")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred", secret)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.Equal(t, GetTraceID(ctx), body.TraceID)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	assert.True(t, buf.HasMessage("ERROR", "API error response"))
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestRespondWithErrorAndLog_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		opts   []ResponseOption
		level  string
	}{
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusUnauthorized, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
		{"server error", http.StatusServiceUnavailable, nil, "ERROR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			log, buf := logger.NewTestLogger()
			req := httptest.NewRequest(http.MethodGet, "/", nil).
				WithContext(logger.WithLogger(context.Background(), log))
			RespondWithErrorAndLog(httptest.NewRecorder(), req, tt.status, "msg", errors.New("boom"), tt.opts...)
			assert.True(t, buf.HasMessage(tt.level, "API error response"))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Rating string `json:"rating" validate:"required"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"rating":"well"}`, false},
		{"empty", ``, true},
		{"malformed", `{"rating":`, true},
		{"unknown field", `{"rating":"well","extra":1}`, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "well", p.Rating)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type payload struct {
		Count int `validate:"gte=0"`
	}
	assert.NoError(t, ValidateRequest(&payload{Count: 1}))
	assert.Error(t, ValidateRequest(&payload{Count: -1}))
}
