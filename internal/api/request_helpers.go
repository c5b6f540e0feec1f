package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/service"
)

// getPathJobID extracts the job id path parameter. Job ids are opaque to
// clients, so a missing or unparseable value is reported as an unknown job.
func getPathJobID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", service.ErrJobNotFound, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q is not a known job id", service.ErrJobNotFound, paramName, pathParam)
	}

	return id, nil
}
