package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
	"github.com/iudanet/coachsync/pkg/api"
)

func TestTranscriptHandler_Get(t *testing.T) {
	store := setupTestStorage(t)
	seedSession(t, store, "session-1", 42, true)
	seedSession(t, store, "session-2", 77, true)
	require.NoError(t, store.SaveTranscript(context.Background(), &models.Transcript{
		CallID: 42,
		Words: []models.Word{
			{Text: "hello", StartTime: 0, EndTime: 0.4, Turn: 1},
			{Text: "there", StartTime: 0.4, EndTime: 0.9, Turn: 1},
		},
	}))

	handler := NewTranscriptHandler(setupTestLogger(), store, store)

	tests := []struct {
		name        string
		callID      string
		sessionID   string
		wantStatus  int
		wantSuccess bool
		wantError   string
	}{
		{"coach without scope", "42", "", http.StatusOK, true, ""},
		{"spectator of the call", "42", "session-1", http.StatusOK, true, ""},
		{"spectator of another call", "42", "session-2", http.StatusForbidden, false, "call does not belong to the session"},
		{"spectator of missing session", "42", "gone-session", http.StatusForbidden, false, "session not found"},
		{"no transcript stored", "77", "session-2", http.StatusNotFound, false, "transcription not found"},
		{"non numeric call id", "abc", "", http.StatusBadRequest, false, `invalid call id "abc"`},
		{"zero call id", "0", "", http.StatusBadRequest, false, "call id must be positive, got 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/api/v1/calls/"+tt.callID+"/transcription", nil, map[string]string{"callID": tt.callID})
			if tt.sessionID != "" {
				req = req.WithContext(WithSpectator(req.Context(), tt.sessionID, "jti"))
			}
			w := httptest.NewRecorder()

			handler.Get(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			var resp api.TranscriptResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantSuccess, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)

			if tt.wantSuccess {
				require.NotNil(t, resp.Transcription)
				assert.Equal(t, int64(42), resp.Transcription.CallID)
				require.Len(t, resp.Transcription.Words, 2)
				assert.Equal(t, "there", resp.Transcription.Words[1].Text)
			} else {
				assert.Nil(t, resp.Transcription)
			}
		})
	}
}

func TestTranscriptHandler_Get_StorageError(t *testing.T) {
	store := &storage.StorageMock{
		GetTranscriptFunc: func(ctx context.Context, callID int64) (*models.Transcript, error) {
			return nil, errors.New("boom")
		},
	}
	handler := NewTranscriptHandler(setupTestLogger(), store, store)

	req := newRequest(http.MethodGet, "/api/v1/calls/5/transcription", nil, map[string]string{"callID": "5"})
	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp api.TranscriptResponse
	decodeBody(t, w, &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Error)
}

func TestTranscriptHandler_Save(t *testing.T) {
	tests := []struct {
		name       string
		callID     string
		body       string
		wantStatus int
	}{
		{"stores words", "42", `{"words":[{"text":"hi","start_time":0,"end_time":0.3,"turn":1}]}`, http.StatusNoContent},
		{"empty words", "42", `{"words":[]}`, http.StatusBadRequest},
		{"invalid json", "42", `{"words":`, http.StatusBadRequest},
		{"invalid call id", "-4", `{"words":[{"text":"hi"}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStorage(t)
			handler := NewTranscriptHandler(setupTestLogger(), store, store)

			req := newRequest(http.MethodPut, "/api/v1/calls/"+tt.callID+"/transcription", strings.NewReader(tt.body), map[string]string{"callID": tt.callID})
			w := httptest.NewRecorder()
			handler.Save(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNoContent {
				got, err := store.GetTranscript(context.Background(), 42)
				require.NoError(t, err)
				require.Len(t, got.Words, 1)
				assert.Equal(t, "hi", got.Words[0].Text)
			}
		})
	}
}
