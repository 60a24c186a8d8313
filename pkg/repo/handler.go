package repo

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/repocard/internal/rest"
	"github.com/klokku/repocard/pkg/timecard"
	"github.com/klokku/repocard/pkg/user"
	log "github.com/sirupsen/logrus"
)

type RepositoryDTO struct {
	Uid           string    `json:"uid"`
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	DefaultBranch string    `json:"defaultBranch"`
	HasTimecard   bool      `json:"hasTimecard"`
	ImportedAt    time.Time `json:"importedAt"`
}

type ImportRequestDTO struct {
	Owner          string             `json:"owner"`
	Name           string             `json:"name"`
	Branch         string             `json:"branch"`
	CreateTimecard bool               `json:"createTimecard"`
	Timecard       *timecard.Timecard `json:"timecard,omitempty"`
}

type TimecardDTO struct {
	Branch    string            `json:"branch"`
	Malformed bool              `json:"malformed"`
	Timecard  timecard.Timecard `json:"timecard"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListRepositories godoc
// @Summary Repositories imported by the current user, newest first
// @Tags Repository
// @Produce json
// @Success 200 {array} RepositoryDTO
// @Router /api/repo [get]
// @Security XUserId
func (h *Handler) ListRepositories(w http.ResponseWriter, r *http.Request) {
	repositories, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]RepositoryDTO, 0, len(repositories))
	for _, repository := range repositories {
		dtos = append(dtos, repositoryToDTO(repository))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ImportRepository godoc
// @Summary Import a repository, optionally committing a new timecard to it
// @Tags Repository
// @Accept json
// @Produce json
// @Param request body ImportRequestDTO true "Repository to import"
// @Success 201 {object} RepositoryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/repo [post]
// @Security XUserId
func (h *Handler) ImportRepository(w http.ResponseWriter, r *http.Request) {
	var dto ImportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	log.Debugf("Importing repository %s/%s", dto.Owner, dto.Name)

	imported, err := h.service.Import(r.Context(), ImportRequest{
		Owner:          dto.Owner,
		Name:           dto.Name,
		Branch:         dto.Branch,
		CreateTimecard: dto.CreateTimecard,
		Timecard:       dto.Timecard,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, repositoryToDTO(imported))
}

// GetBranches godoc
// @Summary Branch names of a repository
// @Tags Repository
// @Produce json
// @Param owner path string true "Repository owner"
// @Param name path string true "Repository name"
// @Success 200 {array} string
// @Router /api/repo/{owner}/{name}/branches [get]
func (h *Handler) GetBranches(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branches, err := h.service.Branches(r.Context(), vars["owner"], vars["name"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, branches)
}

// GetTimecard godoc
// @Summary Timecard of a repository branch
// @Tags Repository
// @Produce json
// @Param owner path string true "Repository owner"
// @Param name path string true "Repository name"
// @Param branch query string false "Branch"
// @Success 200 {object} TimecardDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/repo/{owner}/{name}/timecard [get]
func (h *Handler) GetTimecard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ref := Ref{Owner: vars["owner"], Name: vars["name"], Branch: r.URL.Query().Get("branch")}

	tc, err := h.service.GetTimecard(r.Context(), ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TimecardDTO{Branch: ref.Branch, Malformed: tc.Malformed(), Timecard: tc})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "user not found", http.StatusForbidden)
	case errors.Is(err, ErrRepoInvalid):
		rest.WriteBadRequest(w, "Invalid repository", err.Error())
	case errors.Is(err, ErrRepoNotFound):
		rest.WriteNotFound(w, "Repository not found", err.Error())
	case errors.Is(err, ErrTimecardNotFound):
		rest.WriteNotFound(w, "Timecard not found", err.Error())
	case errors.Is(err, ErrRepoAlreadyImported):
		rest.WriteError(w, http.StatusConflict, "Repository already imported", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func repositoryToDTO(r Repository) RepositoryDTO {
	return RepositoryDTO{
		Uid:           r.Uid,
		Owner:         r.Owner,
		Name:          r.Name,
		DefaultBranch: r.DefaultBranch,
		HasTimecard:   r.HasTimecard,
		ImportedAt:    r.ImportedAt,
	}
}
