package client

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rows []cryptotaxcalculator.Row
	err  error
}

func (f fakeStore) GetEntriesForAddress(string) ([]cryptotaxcalculator.Row, error) {
	return f.rows, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func mkRow(date time.Time, id string) cryptotaxcalculator.Row {
	return cryptotaxcalculator.Row{
		WalletExchange: "thor1alice",
		Date:           date,
		Type:           cryptotaxcalculator.Receive,
		BaseCurrency:   "RUNE",
		BaseAmount:     "1",
		ID:             id,
	}
}

func post(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(http.MethodPost, "/events.csv", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEventsCSV(t *testing.T) {
	store := fakeStore{rows: []cryptotaxcalculator.Row{
		mkRow(time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), "a"),
		mkRow(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC), "b"),
		mkRow(time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC), "c"),
	}}
	r := NewRouter(store, t.TempDir())

	w := post(t, r, `{"address": "thor1alice", "startDate": "2023-01-01", "endDate": "2023-12-31"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Timestamp (UTC),Type"))
	assert.True(t, strings.HasPrefix(lines[1], "2023-03-05 00:00:00,receive"))
	assert.True(t, strings.HasPrefix(lines[2], "2023-01-05 00:00:00,receive"))

	w = post(t, r, `{"address": "thor1alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, strings.Split(strings.TrimSpace(w.Body.String()), "\n"), 4)
}

func TestEventsCSVErrors(t *testing.T) {
	r := NewRouter(fakeStore{}, t.TempDir())

	assert.Equal(t, http.StatusUnprocessableEntity, post(t, r, `{}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, post(t, r, `{"address": "thor1alice", "startDate": "01-01-2023"}`).Code)
	assert.Equal(t, http.StatusNotFound, post(t, r, `{"address": "thor1alice"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, r, `not json`).Code)

	r = NewRouter(fakeStore{err: errors.New("db down")}, t.TempDir())
	assert.Equal(t, http.StatusInternalServerError, post(t, r, `{"address": "thor1alice"}`).Code)
}

func TestReports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thor1alice.html"), []byte("<h1>thor1alice</h1>"), 0o600))
	r := NewRouter(fakeStore{}, dir)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, path, nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/reports/thor1alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>thor1alice</h1>")

	assert.Equal(t, http.StatusNotFound, get("/reports/thor1bob").Code)
	assert.Equal(t, http.StatusBadRequest, get("/reports/..").Code)
	assert.Equal(t, http.StatusOK, get("/healthz").Code)
}
