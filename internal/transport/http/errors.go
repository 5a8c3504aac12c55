package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

var (
	errUnauthorized = errors.New("missing or invalid bearer token")
	errAdminOnly    = errors.New("admin role required")
	errRateLimited  = errors.New("too many requests")
	errNoCentre     = fmt.Errorf("%w: token carries no centre", domain.ErrForbidden)
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mapError converts an error to an HTTP status and body. Domain errors
// carry their own message; anything unclassified is an internal error and
// its details stay in the log.
func mapError(err error) (int, ErrorBody) {
	switch {
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized, ErrorBody{"UNAUTHORIZED", err.Error()}
	case errors.Is(err, errAdminOnly):
		return http.StatusForbidden, ErrorBody{"FORBIDDEN", err.Error()}
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests, ErrorBody{"RATE_LIMITED", err.Error()}

	// Lifecycle errors get their own codes so clients can tell them apart.
	case errors.Is(err, domain.ErrNoOpenCampaign):
		return http.StatusUnprocessableEntity, ErrorBody{"NO_CAMPAIGN_OPEN", err.Error()}
	case errors.Is(err, domain.ErrStoreNotEnrolled):
		return http.StatusUnprocessableEntity, ErrorBody{"STORE_NOT_ENROLLED", err.Error()}

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{"NOT_FOUND", err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrorBody{"CONFLICT", err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorBody{"FORBIDDEN", err.Error()}
	case errors.Is(err, domain.ErrDomainState):
		return http.StatusUnprocessableEntity, ErrorBody{"DOMAIN_STATE", err.Error()}
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest, ErrorBody{"INVALID_INPUT", err.Error()}
	default:
		return http.StatusInternalServerError, ErrorBody{"INTERNAL", "internal server error"}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapError(err)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] internal error method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, body)
}
