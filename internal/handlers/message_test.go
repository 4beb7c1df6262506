package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duetchat/backend/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	limit    int
	messages []models.Message
	err      error
}

func (f *fakeLister) ListMessages(limit int) ([]models.Message, error) {
	f.limit = limit
	return f.messages, f.err
}

func TestGetMessagesDefaultLimit(t *testing.T) {
	req := require.New(t)
	lister := &fakeLister{messages: []models.Message{{ID: "m1"}}}
	handler := NewMessageHandler(lister)

	rec := httptest.NewRecorder()
	handler.GetMessages(rec, httptest.NewRequest("GET", "/api/messages", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.Equal(50, lister.limit)

	var resp models.GetMessagesResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.True(resp.Success)
	req.Len(resp.Messages, 1)
}

func TestGetMessagesLimitValidation(t *testing.T) {
	handler := NewMessageHandler(&fakeLister{})

	for _, limit := range []string{"0", "101", "-5", "abc"} {
		rec := httptest.NewRecorder()
		handler.GetMessages(rec, httptest.NewRequest("GET", "/api/messages?limit="+limit, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestGetMessagesStoreFailure(t *testing.T) {
	handler := NewMessageHandler(&fakeLister{err: fmt.Errorf("store down")})

	rec := httptest.NewRecorder()
	handler.GetMessages(rec, httptest.NewRequest("GET", "/api/messages", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetMessagesEmptyHistory(t *testing.T) {
	req := require.New(t)
	handler := NewMessageHandler(&fakeLister{})

	rec := httptest.NewRecorder()
	handler.GetMessages(rec, httptest.NewRequest("GET", "/api/messages?limit=10", nil))

	req.Equal(http.StatusOK, rec.Code)
	// Empty history serializes as [], not null
	req.Contains(rec.Body.String(), `"messages":[]`)
}
