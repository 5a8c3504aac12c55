package domain

import "errors"

// Error kinds. Every concrete domain error wraps exactly one of these so the
// transport can classify failures with errors.Is without knowing each error.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrDomainState = errors.New("domain state")
	ErrInvalid     = errors.New("invalid input")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Domain errors as sentinel values
var (
	// Not found
	ErrCampaignNotFound   = newError(ErrNotFound, "campaign not found")
	ErrEnrollmentNotFound = newError(ErrNotFound, "enrollment not found")
	ErrStoreNotFound      = newError(ErrNotFound, "store not found")
	ErrCentreNotFound     = newError(ErrNotFound, "centre not found")
	ErrProductNotFound    = newError(ErrNotFound, "product not found")

	// Conflicts
	ErrDuplicateYear        = newError(ErrConflict, "a campaign already exists for this year")
	ErrDuplicateEnrollment  = newError(ErrConflict, "store is already linked to this campaign")
	ErrDuplicateAddress     = newError(ErrConflict, "a store with this address already exists in the centre")
	ErrDuplicateEmail       = newError(ErrConflict, "email already in use")
	ErrDuplicateExternalRef = newError(ErrConflict, "external reference already in use")
	ErrDuplicateBarcode     = newError(ErrConflict, "a product with this barcode already exists")

	// Ownership
	ErrStoreForbidden = newError(ErrForbidden, "store does not belong to the acting centre")

	// Lifecycle
	ErrNoOpenCampaign      = newError(ErrDomainState, "no campaign open")
	ErrStoreNotEnrolled    = newError(ErrDomainState, "store not enrolled in the open campaign")
	ErrCampaignArchived    = newError(ErrDomainState, "campaign is archived")
	ErrEnrollmentValidated = newError(ErrDomainState, "enrollment already validated")

	// Validation
	ErrInvalidYear             = newError(ErrInvalid, "year must be between 2020 and 2100")
	ErrInvalidDate             = newError(ErrInvalid, "date must be RFC 3339 or YYYY-MM-DD")
	ErrInvalidEnrollmentWindow = newError(ErrInvalid, "enrollment override must satisfy start <= end")
	ErrInvalidStatus           = newError(ErrInvalid, "unknown campaign status")
	ErrInvalidWeight           = newError(ErrInvalid, "weight must be positive")
	ErrEmptyName               = newError(ErrInvalid, "name cannot be empty")
	ErrEmptyAddress            = newError(ErrInvalid, "address cannot be empty")
	ErrInvalidBarcode          = newError(ErrInvalid, "barcode must be 1 to 14 characters")
	ErrInvalidFamily           = newError(ErrInvalid, "family and sub-family must be 1 to 32 characters")
	ErrEmptyStoreList          = newError(ErrInvalid, "at least one store id is required")
)

var kinds = []error{ErrNotFound, ErrConflict, ErrForbidden, ErrDomainState, ErrInvalid}

// KindOf returns the kind sentinel err belongs to, or nil for
// infrastructure failures.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
