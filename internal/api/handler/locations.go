package handler

import (
	"net/http"
	"strings"

	"github.com/routelogpro/routelogpro/internal/api/models"
	"github.com/routelogpro/routelogpro/internal/api/response"
	"github.com/routelogpro/routelogpro/internal/gazetteer"
	"github.com/routelogpro/routelogpro/internal/location"
)

const maxLocationResults = 10

// LocationHandler handles the curated location endpoints backing the
// trip form's location pickers.
type LocationHandler struct{}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler() *LocationHandler {
	return &LocationHandler{}
}

// SearchLocations handles GET /v1/locations - search the curated gazetteer.
// Without a query the full curated list is returned.
func (h *LocationHandler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var options []gazetteer.Option
	if query == "" {
		options = gazetteer.Options()
	} else {
		options = gazetteer.Search(query, maxLocationResults)
	}
	if options == nil {
		options = []gazetteer.Option{}
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.LocationOptions{Options: options})
}

// ResolveLocation handles GET /v1/locations/resolve - classify a raw
// location value the way the trip form would render it.
func (h *LocationHandler) ResolveLocation(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	if strings.TrimSpace(raw) == "" {
		response.BadRequest(w, r, "value is required", []models.FieldError{
			{Field: "value", Message: "required"},
		})
		return
	}

	response.JSON(w, r, http.StatusOK, location.Classify(raw))
}
