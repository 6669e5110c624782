package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/botfleet/coordinator/domain"
)

func TestSendCommandValidation(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/command", bytes.NewBufferString(`{"bot_id":"bot_001"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SendCommand(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendCommandUnknownBot(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"bot_id":"bot_999","command":"test"}`
	req := httptest.NewRequest(http.MethodPost, "/command", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SendCommand(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendCommandBlocked(t *testing.T) {
	e := echo.New()
	h, st := newTestHandler(t)
	st.RegisterBot(context.Background(), "bot_001", nil)

	body := `{"bot_id":"bot_001","command":"self_destruct"}`
	req := httptest.NewRequest(http.MethodPost, "/command", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SendCommand(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	entries, _ := st.ListCommands(context.Background(), "bot_001")
	assert.Empty(t, entries)
}

func TestGetCommandsUnknownBotIsEmpty(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/commands/bot_999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("bot_id")
	c.SetParamValues("bot_999")

	err := h.GetCommands(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Commands []domain.CommandEntry `json:"commands"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Empty(t, resp.Commands)
}

func TestClearCommandsUnknownBotReportsZero(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/commands/bot_999/clear", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("bot_id")
	c.SetParamValues("bot_999")

	err := h.ClearCommands(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ClearedCount int `json:"cleared_count"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, 0, resp.ClearedCount)
}

// TestCommandLifecycle walks the full operator/bot exchange:
// register, queue a command, poll it, clear it, poll again.
func TestCommandLifecycle(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	// Register bot_001.
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{"bot_id":"bot_001"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	assert.NoError(t, h.RegisterBot(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Queue start_monitoring with params.
	body := `{"bot_id":"bot_001","command":"start_monitoring","params":{"interval":30}}`
	req = httptest.NewRequest(http.MethodPost, "/command", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	assert.NoError(t, h.SendCommand(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Poll: one pending entry with the queued params.
	req = httptest.NewRequest(http.MethodGet, "/commands/bot_001", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("bot_id")
	c.SetParamValues("bot_001")
	assert.NoError(t, h.GetCommands(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var pollResp struct {
		Commands []domain.CommandEntry `json:"commands"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pollResp))
	assert.Len(t, pollResp.Commands, 1)
	assert.Equal(t, "start_monitoring", pollResp.Commands[0].Command)
	assert.Equal(t, json.RawMessage(`30`), pollResp.Commands[0].Params["interval"])
	assert.Equal(t, domain.CommandStatePending, pollResp.Commands[0].State)

	// Clear: exactly one entry removed.
	req = httptest.NewRequest(http.MethodPost, "/commands/bot_001/clear", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("bot_id")
	c.SetParamValues("bot_001")
	assert.NoError(t, h.ClearCommands(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var clearResp struct {
		ClearedCount int `json:"cleared_count"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clearResp))
	assert.Equal(t, 1, clearResp.ClearedCount)

	// Poll again: queue is empty.
	req = httptest.NewRequest(http.MethodGet, "/commands/bot_001", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("bot_id")
	c.SetParamValues("bot_001")
	assert.NoError(t, h.GetCommands(c))
	pollResp.Commands = nil
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pollResp))
	assert.Empty(t, pollResp.Commands)
}
