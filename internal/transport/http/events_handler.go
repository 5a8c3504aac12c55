package http

import (
	"net/http"
	"strconv"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_events"
)

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []*contracts.EventView `json:"events"`
	TotalCount int                    `json:"total_count"`
}

// listEvents handles GET /api/v1/events. Filters: event_type,
// aggregate_id, status, limit.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	req := &list_events.Request{
		EventType:   query.Get("event_type"),
		AggregateID: query.Get("aggregate_id"),
		Status:      query.Get("status"),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	events, err := s.h.ListEvents.Execute(r.Context(), req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ListEventsResponse{Events: events, TotalCount: len(events)})
	return nil
}
