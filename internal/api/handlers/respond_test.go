package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusConflict, KindSlotFull, "слот заполнен")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "SlotFull", body.ErrorKind)
	assert.Equal(t, "слот заполнен", body.Message)
}

func TestRespondStoreUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondStoreUnavailable(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorKind":"StoreUnavailable"`)
}

func TestRespondData(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondData(rec, http.StatusOK, []int{1, 2})

	assert.JSONEq(t, `{"success":true,"data":[1,2]}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(r, &dst))
}
