package timeline

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/repocard/internal/rest"
	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	log "github.com/sirupsen/logrus"
)

type MarkerDTO struct {
	Committer   commit.Committer `json:"committer"`
	Message     string           `json:"message"`
	Sha         string           `json:"sha"`
	When        string           `json:"when"`
	Length      float64          `json:"length"`
	TimeLength  float64          `json:"timeLength"`
	BreakInside bool             `json:"breakInside"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetTimeline godoc
// @Summary Commit markers of a repository branch, sized for rendering
// @Tags Timeline
// @Produce json
// @Param owner path string true "Repository owner"
// @Param name path string true "Repository name"
// @Param branch query string false "Branch"
// @Success 200 {array} MarkerDTO
// @Router /api/repo/{owner}/{name}/timeline [get]
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := repo.Ref{Owner: vars["owner"], Name: vars["name"], Branch: r.URL.Query().Get("branch")}
	if ref.Owner == "" || ref.Name == "" {
		rest.WriteBadRequest(w, "Invalid repository", "owner and name are required")
		return
	}
	log.Tracef("Getting timeline of %s", ref.FullName())

	markers, err := h.service.GetTimeline(r.Context(), ref)
	if errors.Is(err, repo.ErrRepoNotFound) {
		rest.WriteNotFound(w, "Repository not found", err.Error())
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MarkerDTO, 0, len(markers))
	for _, m := range markers {
		dtos = append(dtos, MarkerToDTO(m))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func MarkerToDTO(m Marker) MarkerDTO {
	return MarkerDTO{
		Committer:   m.Commit.Committer,
		Message:     m.Commit.Message,
		Sha:         m.Commit.Sha,
		When:        m.Commit.When,
		Length:      m.Length,
		TimeLength:  m.TimeLength,
		BreakInside: m.BreakInside,
	}
}
