package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"bracket-explorer/datastore"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type server struct {
	store  *datastore.Store
	log    *logrus.Entry
	charts chartCache
}

func newServer(store *datastore.Store, log *logrus.Entry) *server {
	return &server{
		store: store,
		log:   log.WithField("component", "http"),
	}
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	// Team names may contain slashes once decoded.
	r.UseEncodedPath()
	r.Use(requestLogger(s.log))

	r.HandleFunc("/", s.dashboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/download/{team}", s.downloadHandler).Methods(http.MethodGet)

	r.HandleFunc("/charts/team/{team}.png", s.teamChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/charts/compare.png", s.compareChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/charts/winners.png", s.winnersChartHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/teams", s.teamsHandler).Methods(http.MethodGet)
	api.HandleFunc("/teams/{team}", s.teamHandler).Methods(http.MethodGet)
	api.HandleFunc("/rounds", s.roundsHandler).Methods(http.MethodGet)
	api.HandleFunc("/rounds/{round}", s.roundHandler).Methods(http.MethodGet)
	api.HandleFunc("/winners", s.winnersHandler).Methods(http.MethodGet)
	api.HandleFunc("/winner-counts", s.winnerCountsHandler).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.compareHandler).Methods(http.MethodGet)
	api.HandleFunc("/validate", s.validateHandler).Methods(http.MethodGet)
	api.HandleFunc("/reload", s.reloadHandler).Methods(http.MethodPost)
	return r
}

// pathVar returns the decoded route variable.
func pathVar(r *http.Request, name string) string {
	v := mux.Vars(r)[name]
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("encoding response")
	}
}

// statusFor maps datastore errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, datastore.ErrTeamNotFound), errors.Is(err, datastore.ErrRoundNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}
