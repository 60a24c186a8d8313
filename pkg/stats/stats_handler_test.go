package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/repocard/internal/rest"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/klokku/repocard/pkg/timecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) *mux.Router {
	service, _, teardown := setup(t)
	t.Cleanup(teardown)
	handler := NewStatsHandler(service, NewCsvStatsTransformer())
	r := mux.NewRouter()
	r.HandleFunc("/api/repo/{owner}/{name}/stats", handler.GetStats).Methods("GET")
	return r
}

func TestStatsHandler_GetStats_Json(t *testing.T) {
	// given
	router := setupHandlerTest(t)
	source.timecard = singleDay(
		timecard.TimeRange{Start: "1:00:00", End: "5:00:00", By: "user"},
		timecard.TimeRange{Start: "6:00:00", End: "6:30:00", By: "user two"},
	)
	source.commits = commitsAt("2016-03-26T10:45:00Z", "2016-03-26T10:50:00Z", "2016-03-26T10:55:00Z")
	req := httptest.NewRequest(http.MethodGet, "/api/repo/1egoman/waltz/stats?branch=dev", nil)
	w := httptest.NewRecorder()

	// when
	router.ServeHTTP(w, req)

	// then
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, []repo.Ref{{Owner: "1egoman", Name: "waltz", Branch: "dev"}}, source.requested)

	var body StatsSummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "1egoman", body.Owner)
	assert.Equal(t, "waltz", body.Name)
	assert.Equal(t, "dev", body.Branch)
	assert.Equal(t, 3, body.CommitCount)
	assert.Equal(t, "ok", body.AverageWorkPeriodLength.Status)
	assert.Equal(t, float64(2.25*60*60*1000), body.AverageWorkPeriodLength.Value)
	assert.Equal(t, "2 hours and 15 minutes", body.AverageWorkPeriodLengthText)
	assert.Equal(t, float64(5*60*1000), body.AverageCommitTime.Value)
	assert.Equal(t, map[string]any{"user": float64(1), "user two": float64(1)}, body.Contributors.Value)
}

func TestStatsHandler_GetStats_MalformedTimecard(t *testing.T) {
	// given
	router := setupHandlerTest(t)
	source.timecard = timecard.Timecard{}
	source.commits = commitsAt("2016-03-26T10:45:00Z")
	req := httptest.NewRequest(http.MethodGet, "/api/repo/1egoman/waltz/stats", nil)
	w := httptest.NewRecorder()

	// when
	router.ServeHTTP(w, req)

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	contributors := body["contributors"].(map[string]any)
	assert.Nil(t, contributors["value"])
	assert.Equal(t, "malformed", contributors["status"])
	perContributor := body["averageCommitsPerContributorPerWorkPeriod"].(map[string]any)
	assert.Equal(t, "unavailable", perContributor["status"])
	_, hasText := body["averageWorkPeriodLengthText"]
	assert.False(t, hasText)
}

func TestStatsHandler_GetStats_Csv(t *testing.T) {
	// given
	router := setupHandlerTest(t)
	source.timecard = sampleTimecard
	source.commits = commitsAt("2016-03-26T10:45:00Z", "2016-03-26T10:50:00Z")
	req := httptest.NewRequest(http.MethodGet, "/api/repo/1egoman/waltz/stats", nil)
	req.Header.Set("Accept", "text/csv")
	w := httptest.NewRecorder()

	// when
	router.ServeHTTP(w, req)

	// then
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Statistic,Value,Status\n"))
	assert.Contains(t, w.Body.String(), "Average work period length,09:00:00,ok\n")
}

func TestStatsHandler_GetStats_UnknownRepository(t *testing.T) {
	// given
	router := setupHandlerTest(t)
	source.timecardErr = repo.ErrTimecardNotFound
	source.commitsErr = repo.ErrRepoNotFound
	req := httptest.NewRequest(http.MethodGet, "/api/repo/nobody/nothing/stats", nil)
	w := httptest.NewRecorder()

	// when
	router.ServeHTTP(w, req)

	// then
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body rest.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Repository not found", body.Error)
	assert.Contains(t, body.Details, "repository not found")
}

func TestStatsHandler_GetStats_SourceError(t *testing.T) {
	router := setupHandlerTest(t)
	source.commitsErr = errors.New("github is down")
	req := httptest.NewRequest(http.MethodGet, "/api/repo/1egoman/waltz/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "github is down")
}
