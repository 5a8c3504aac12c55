package http

import (
	"net/http"

	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/get_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_campaigns"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/delete_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/refresh_statuses"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/toggle_enrollments"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/update_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/update_enrollment"
)

type createCampaignBody struct {
	Year           int    `json:"year"`
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	DefaultStartAt string `json:"defaultStartAt"`
	DefaultEndAt   string `json:"defaultEndAt"`
	GraceUntil     string `json:"graceUntil"`
	LockedAt       string `json:"lockedAt"`
}

type updateCampaignBody struct {
	Year           *int    `json:"year"`
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	DefaultStartAt *string `json:"defaultStartAt"`
	DefaultEndAt   *string `json:"defaultEndAt"`
	GraceUntil     *string `json:"graceUntil"`
	LockedAt       *string `json:"lockedAt"`
}

type toggleEnrollmentsBody struct {
	StoreIDs []string `json:"storeIds"`
	Enabled  bool     `json:"enabled"`
}

type updateEnrollmentBody struct {
	StartAt    *string `json:"startAt"`
	EndAt      *string `json:"endAt"`
	GraceUntil *string `json:"graceUntil"`
	Validate   bool    `json:"validate"`
}

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) error {
	page, err := queryInt(r, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return err
	}
	q := r.URL.Query()
	resp, err := s.h.ListCampaigns.Execute(r.Context(), &list_campaigns.Request{
		Page:   page,
		Limit:  limit,
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) listAllCampaigns(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.ListAllCampaigns.Execute(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.GetCampaign.Execute(r.Context(), &get_campaign.Request{CampaignID: r.PathValue("id")})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) createCampaign(w http.ResponseWriter, r *http.Request) error {
	var body createCampaignBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.CreateCampaign.Execute(r.Context(), &create_campaign.Request{
		Year:           body.Year,
		Title:          body.Title,
		Slug:           body.Slug,
		DefaultStartAt: body.DefaultStartAt,
		DefaultEndAt:   body.DefaultEndAt,
		GraceUntil:     body.GraceUntil,
		LockedAt:       body.LockedAt,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, resp)
	return nil
}

func (s *Server) updateCampaign(w http.ResponseWriter, r *http.Request) error {
	var body updateCampaignBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.UpdateCampaign.Execute(r.Context(), &update_campaign.Request{
		CampaignID:     r.PathValue("id"),
		Year:           body.Year,
		Title:          body.Title,
		Slug:           body.Slug,
		DefaultStartAt: body.DefaultStartAt,
		DefaultEndAt:   body.DefaultEndAt,
		GraceUntil:     body.GraceUntil,
		LockedAt:       body.LockedAt,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) deleteCampaign(w http.ResponseWriter, r *http.Request) error {
	if err := s.h.DeleteCampaign.Execute(r.Context(), &delete_campaign.Request{CampaignID: r.PathValue("id")}); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) refreshStatuses(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.RefreshStatuses.Execute(r.Context(), &refresh_statuses.Request{
		DryRun: r.URL.Query().Get("dryRun") == "true",
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) toggleEnrollments(w http.ResponseWriter, r *http.Request) error {
	var body toggleEnrollmentsBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.ToggleEnrollments.Execute(r.Context(), &toggle_enrollments.Request{
		CampaignID: r.PathValue("id"),
		StoreIDs:   body.StoreIDs,
		Enabled:    body.Enabled,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) updateEnrollment(w http.ResponseWriter, r *http.Request) error {
	var body updateEnrollmentBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	req := &update_enrollment.Request{
		CampaignID: r.PathValue("id"),
		StoreID:    r.PathValue("storeId"),
		Validate:   body.Validate,
	}
	if body.StartAt != nil || body.EndAt != nil || body.GraceUntil != nil {
		req.Window = &update_enrollment.Window{
			StartAt:    deref(body.StartAt),
			EndAt:      deref(body.EndAt),
			GraceUntil: deref(body.GraceUntil),
		}
	}
	resp, err := s.h.UpdateEnrollment.Execute(r.Context(), req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
