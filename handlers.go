package main

import (
	"fmt"
	"mime"
	"net/http"
	"time"

	"bracket-explorer/datastore"
)

type teamResponse struct {
	Team   string                       `json:"team" yaml:"team"`
	Rounds datastore.RoundProbabilities `json:"rounds" yaml:"rounds"`
}

type roundResponse struct {
	Round string                      `json:"round" yaml:"round"`
	Teams []datastore.TeamProbability `json:"teams" yaml:"teams"`
}

type reloadResponse struct {
	Teams    int       `json:"teams"`
	Rounds   int       `json:"rounds"`
	Games    int       `json:"games"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *server) teamsHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds.TeamNames())
}

func (s *server) teamHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	team := pathVar(r, "team")
	probs, err := ds.AdvancementFor(team)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, teamResponse{Team: team, Rounds: probs})
}

func (s *server) roundsHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds.RoundColumns())
}

func (s *server) roundHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	round := pathVar(r, "round")
	slice, err := ds.RoundSlice(round)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, roundResponse{Round: round, Teams: slice})
}

func (s *server) winnersHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds.Games())
}

func (s *server) winnerCountsHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds.WinnerCounts())
}

func (s *server) compareHandler(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameters a and b are required"})
		return
	}
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	c, err := ds.Compare(a, b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *server) validateHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ds.Validate())
}

func (s *server) reloadHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Reload(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.WithField("teams", ds.Advancement.Len()).Info("📥 Reloaded bracket data")
	s.writeJSON(w, http.StatusOK, reloadResponse{
		Teams:    ds.Advancement.Len(),
		Rounds:   len(ds.RoundColumns()),
		Games:    ds.Winners.Len(),
		LoadedAt: ds.LoadedAt,
	})
}

func (s *server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		http.Error(w, "Could not load bracket data", http.StatusInternalServerError)
		s.log.WithError(err).Error("download failed")
		return
	}
	team := pathVar(r, "team")
	data, err := ds.ExportTeam(team)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": datastore.ExportFileName(team),
	}))
	w.Write(data)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

func (s *server) teamChartHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		http.Error(w, "Could not load bracket data", http.StatusInternalServerError)
		return
	}
	team := pathVar(r, "team")
	probs, err := ds.AdvancementFor(team)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	png, err := s.charts.get(ds, "team/"+team, func() ([]byte, error) {
		return teamChart(team, probs)
	})
	if err != nil {
		s.log.WithError(err).Error("team chart failed")
		http.Error(w, "Chart rendering failed", http.StatusInternalServerError)
		return
	}
	writePNG(w, png)
}

func (s *server) compareChartHandler(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		http.Error(w, "Teams a and b required", http.StatusBadRequest)
		return
	}
	ds, err := s.store.Load(r.Context())
	if err != nil {
		http.Error(w, "Could not load bracket data", http.StatusInternalServerError)
		return
	}
	c, err := ds.Compare(a, b)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	png, err := s.charts.get(ds, fmt.Sprintf("compare/%q/%q", a, b), func() ([]byte, error) {
		return compareChart(c)
	})
	if err != nil {
		s.log.WithError(err).Error("compare chart failed")
		http.Error(w, "Chart rendering failed", http.StatusInternalServerError)
		return
	}
	writePNG(w, png)
}

func (s *server) winnersChartHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		http.Error(w, "Could not load bracket data", http.StatusInternalServerError)
		return
	}
	counts := ds.WinnerCounts()
	if len(counts) == 0 {
		http.Error(w, "No first-round predictions loaded", http.StatusNotFound)
		return
	}
	png, err := s.charts.get(ds, "winners", func() ([]byte, error) {
		return winnersChart(counts)
	})
	if err != nil {
		s.log.WithError(err).Error("winners chart failed")
		http.Error(w, "Chart rendering failed", http.StatusInternalServerError)
		return
	}
	writePNG(w, png)
}
