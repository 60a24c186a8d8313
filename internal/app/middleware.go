package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/repocard/pkg/user"
	log "github.com/sirupsen/logrus"
)

type UserLookup interface {
	GetUserByUid(ctx context.Context, uid string) (user.User, error)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, users UserLookup) {
	r.Use(requestLogger)
	r.Use(userFromHeader(users))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"duration": time.Since(start),
		}).Debug("handled request")
	})
}

// userFromHeader resolves X-User-Id into the request context. Requests without
// the header pass through anonymously; an unknown uid is rejected.
func userFromHeader(users UserLookup) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get("X-User-Id")
			if uid == "" {
				next.ServeHTTP(w, req)
				return
			}

			u, err := users.GetUserByUid(req.Context(), uid)
			if errors.Is(err, user.ErrUserNotFound) {
				log.Debugf("user not found: %s", uid)
				http.Error(w, "user not found", http.StatusForbidden)
				return
			} else if err != nil {
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, req.WithContext(user.WithUser(req.Context(), u)))
		})
	}
}
