package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/adapters/reporting"
)

type rosterEntry struct {
	BSSID       string `json:"bssid"`
	SSID        string `json:"ssid"`
	Hidden      bool   `json:"hidden"`
	EpochOffset string `json:"epoch_offset"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Controller.Status())
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	entries := make([]rosterEntry, 0, s.Roster.Len())
	for _, ap := range s.Roster.All() {
		// The raw SSID goes on the wire; hidden networks serialize as an
		// empty name plus the flag. Name() is for human-facing output only.
		entries = append(entries, rosterEntry{
			BSSID:       ap.BSSID.String(),
			SSID:        string(ap.SSID),
			Hidden:      ap.Hidden(),
			EpochOffset: ap.EpochOffset.String(),
		})
	}
	writeJSON(w, map[string]interface{}{
		"networks": entries,
		"channels": s.Plan.All(),
	})
}

func (s *Server) handleBursts(w http.ResponseWriter, r *http.Request) {
	if s.Bursts == nil {
		http.Error(w, "burst journal disabled", http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.Bursts.RecentBursts(r.Context(), limit)
	if err != nil {
		log.Printf("Burst query error: %v", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"bursts": records})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.Controller.Pause()
	writeJSON(w, map[string]string{"status": "paused"})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.Controller.Resume()
	writeJSON(w, map[string]string{"status": "running"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.Reporter == nil {
		http.Error(w, "reporting disabled", http.StatusNotFound)
		return
	}

	status := s.Controller.Status()
	data, err := s.Reporter.ExportRosterSheet(reporting.RosterSheet{
		Roster:         s.Roster,
		Plan:           s.Plan,
		BeaconInterval: status.BeaconInterval,
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		log.Printf("Report generation error: %v", err)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=ghostfield_roster.pdf")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
