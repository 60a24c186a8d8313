package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Repositories
	r.HandleFunc("/api/repo", deps.RepoHandler.ListRepositories).Methods("GET")
	r.HandleFunc("/api/repo", deps.RepoHandler.ImportRepository).Methods("POST")
	r.HandleFunc("/api/repo/{owner}/{name}/branches", deps.RepoHandler.GetBranches).Methods("GET")
	r.HandleFunc("/api/repo/{owner}/{name}/timecard", deps.RepoHandler.GetTimecard).Methods("GET")

	// Stats
	r.HandleFunc("/api/repo/{owner}/{name}/stats", deps.StatsHandler.GetStats).Methods("GET")

	// Timeline
	r.HandleFunc("/api/repo/{owner}/{name}/timeline", deps.TimelineHandler.GetTimeline).Methods("GET")
}
