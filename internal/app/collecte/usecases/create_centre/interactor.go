package create_centre

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the data needed to create a centre.
type Request struct {
	Name        string
	Address     string
	Phone       string
	Email       string
	ExternalRef string
}

// Interactor handles the create centre use case.
type Interactor struct {
	centres contracts.CentreRepository
	clock   clock.Clock
}

// NewInteractor creates a new create centre interactor.
func NewInteractor(centres contracts.CentreRepository, clock clock.Clock) *Interactor {
	return &Interactor{centres: centres, clock: clock}
}

// Execute creates the centre. Email and external reference are unique when
// set.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.CentreView, error) {
	centre, err := domain.NewCentre(uuid.New().String(), req.Name, req.Address, req.Phone, req.Email, req.ExternalRef, i.clock.Now())
	if err != nil {
		return nil, err
	}

	if centre.Email != "" {
		taken, err := i.centres.ExistsEmail(ctx, centre.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateEmail
		}
	}
	if centre.ExternalRef != "" {
		taken, err := i.centres.ExistsExternalRef(ctx, centre.ExternalRef)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateExternalRef
		}
	}

	if err := i.centres.Create(ctx, centre); err != nil {
		return nil, fmt.Errorf("failed to create centre: %w", err)
	}
	return contracts.NewCentreView(centre), nil
}
