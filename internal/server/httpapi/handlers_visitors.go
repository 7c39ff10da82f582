package httpapi

import (
	"net/http"
	"strconv"
)

type visitorDayView struct {
	Day     string `json:"day"`
	Visits  int64  `json:"visits"`
	Uniques int64  `json:"uniques"`
}

// handleTrackVisitor accepts a consented page view from the public site.
// It always answers 202: tracking failures are logged, never surfaced.
func (s *Server) handleTrackVisitor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page      string `json:"page"`
		Referrer  string `json:"referrer"`
		ConsentID string `json:"consentId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.visitors.Track(r.Context(), req.Page, req.Referrer, req.ConsentID); err != nil {
		s.logger.Warn(r.Context(), "failed to record visit", "error", err)
	}
	writeMessage(w, http.StatusAccepted, "Recorded")
}

func (s *Server) handleVisitorSummary(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	stats, err := s.visitors.Summary(r.Context(), days)
	if err != nil {
		s.logger.Error(r.Context(), "failed to load visitor summary", "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]visitorDayView, 0, len(stats))
	for _, st := range stats {
		views = append(views, visitorDayView{
			Day:     st.Day.Format("2006-01-02"),
			Visits:  st.Visits,
			Uniques: st.Uniques,
		})
	}
	writeJSON(w, http.StatusOK, listView[visitorDayView]{Items: views, Total: len(views)})
}
