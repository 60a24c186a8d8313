package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/repocard/internal/rest"
	"github.com/klokku/repocard/pkg/repo"
	log "github.com/sirupsen/logrus"
)

// ResultDTO carries a statistic; Value is null unless Status is "ok".
type ResultDTO struct {
	Value  any    `json:"value"`
	Status string `json:"status"`
}

type StatsSummaryDTO struct {
	Owner                                     string    `json:"owner"`
	Name                                      string    `json:"name"`
	Branch                                    string    `json:"branch,omitempty"`
	CommitCount                               int       `json:"commitCount"`
	WorkPeriodCount                           int       `json:"workPeriodCount"`
	AverageWorkPeriodLength                   ResultDTO `json:"averageWorkPeriodLength"`
	AverageWorkPeriodLengthText               string    `json:"averageWorkPeriodLengthText,omitempty"`
	AverageCommitTime                         ResultDTO `json:"averageCommitTime"`
	AverageCommitsPerWorkPeriod               ResultDTO `json:"averageCommitsPerWorkPeriod"`
	Contributors                              ResultDTO `json:"contributors"`
	AverageCommitsPerContributorPerWorkPeriod ResultDTO `json:"averageCommitsPerContributorPerWorkPeriod"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetStats godoc
// @Summary Timecard and commit statistics of a repository branch
// @Tags Stats
// @Produce json,text/csv
// @Param owner path string true "Repository owner"
// @Param name path string true "Repository name"
// @Param branch query string false "Branch, defaults to the repository default branch"
// @Success 200 {object} StatsSummaryDTO
// @Router /api/repo/{owner}/{name}/stats [get]
func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := repo.Ref{
		Owner:  vars["owner"],
		Name:   vars["name"],
		Branch: r.URL.Query().Get("branch"),
	}
	if ref.Owner == "" || ref.Name == "" {
		rest.WriteBadRequest(w, "Invalid repository", "owner and name are required")
		return
	}
	log.Debugf("Getting stats for %s", ref.FullName())

	stats, err := handler.statsService.GetStats(r.Context(), ref)
	if errors.Is(err, repo.ErrRepoNotFound) {
		rest.WriteNotFound(w, "Repository not found", err.Error())
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(&stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ToDTO converts a summary to its JSON form. Durations are in milliseconds.
func ToDTO(stats *StatsSummary) *StatsSummaryDTO {
	dto := &StatsSummaryDTO{
		Owner:           stats.Repo.Owner,
		Name:            stats.Repo.Name,
		Branch:          stats.Repo.Branch,
		CommitCount:     stats.CommitCount,
		WorkPeriodCount: stats.WorkPeriodCount,

		AverageWorkPeriodLength:                   durationResultToDTO(stats.AverageWorkPeriodLength),
		AverageCommitTime:                         durationResultToDTO(stats.AverageCommitTime),
		AverageCommitsPerWorkPeriod:               resultToDTO(stats.AverageCommitsPerWorkPeriod),
		Contributors:                              resultToDTO(stats.Contributors),
		AverageCommitsPerContributorPerWorkPeriod: resultToDTO(stats.AverageCommitsPerContributorPerWorkPeriod),
	}
	if stats.AverageWorkPeriodLength.Ok() {
		dto.AverageWorkPeriodLengthText = FormatDuration(stats.AverageWorkPeriodLength.Value)
	}
	return dto
}

func resultToDTO[T any](r Result[T]) ResultDTO {
	if !r.Ok() {
		return ResultDTO{Value: nil, Status: r.Status.String()}
	}
	return ResultDTO{Value: r.Value, Status: r.Status.String()}
}

func durationResultToDTO(r Result[time.Duration]) ResultDTO {
	if !r.Ok() {
		return ResultDTO{Value: nil, Status: r.Status.String()}
	}
	return ResultDTO{Value: r.Value.Milliseconds(), Status: r.Status.String()}
}
