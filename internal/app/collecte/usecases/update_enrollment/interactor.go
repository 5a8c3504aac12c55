package update_enrollment

import (
	"context"
	"fmt"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request updates one campaign-store link. A non-nil Window replaces the
// override dates (blank strings clear a bound); Validate stamps the final
// validation.
type Request struct {
	CampaignID string
	StoreID    string
	Window     *Window
	Validate   bool
}

// Window carries raw override dates.
type Window struct {
	StartAt    string
	EndAt      string
	GraceUntil string
}

// Interactor handles the update enrollment use case.
type Interactor struct {
	enrollments contracts.EnrollmentRepository
	clock       clock.Clock
}

// NewInteractor creates a new update enrollment interactor.
func NewInteractor(enrollments contracts.EnrollmentRepository, clock clock.Clock) *Interactor {
	return &Interactor{enrollments: enrollments, clock: clock}
}

// Execute applies the requested changes and returns the link.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.EnrollmentView, error) {
	e, err := i.enrollments.Get(ctx, req.CampaignID, req.StoreID)
	if err != nil {
		return nil, err
	}
	defer e.ClearEvents()

	now := i.clock.Now()
	if req.Window != nil {
		w, err := parseWindow(req.Window)
		if err != nil {
			return nil, err
		}
		if err := e.SetWindow(w, now); err != nil {
			return nil, err
		}
	}
	if req.Validate {
		if err := e.Validate(now); err != nil {
			return nil, err
		}
	}

	if !e.Changes().HasChanges() {
		return contracts.NewEnrollmentView(e), nil
	}
	if err := i.enrollments.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}
	return contracts.NewEnrollmentView(e), nil
}

func parseWindow(in *Window) (domain.EnrollmentWindow, error) {
	var w domain.EnrollmentWindow
	var err error
	if w.StartAt, err = domain.ParseDate(in.StartAt); err != nil {
		return w, err
	}
	if w.EndAt, err = domain.ParseDate(in.EndAt); err != nil {
		return w, err
	}
	if w.GraceUntil, err = domain.ParseDate(in.GraceUntil); err != nil {
		return w, err
	}
	return w, nil
}
