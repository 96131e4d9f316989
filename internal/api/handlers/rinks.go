package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"rink-finder-service/internal/api/dto"
	"rink-finder-service/internal/domain"
	"rink-finder-service/internal/platform/obs"
	"rink-finder-service/internal/ports"
	"rink-finder-service/internal/services"
	"strings"
)

const coordinatesField = "coordinates_input"

// RinkHandler serves the rink finder page and its JSON counterparts.
// Every request fetches the dataset anew; nothing is shared between requests.
type RinkHandler struct {
	Source ports.RinkSource
	Page   *template.Template
}

// Index renders the form with the instructional notice.
func (h *RinkHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.Page, http.StatusOK, pageData{
		Notices: []notice{{Category: "info", Message: instructions}},
	})
}

// ClosestRink handles the form submission and re-renders the page with the
// result or the error as a one-shot notice.
func (h *RinkHandler) ClosestRink(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, r, h.Page, http.StatusBadRequest, pageData{
			Notices: []notice{{Category: "error", Message: "invalid form submission"}},
		})
		return
	}
	input := strings.TrimSpace(r.FormValue(coordinatesField))

	result, err := services.LocateClosestRink(r.Context(), input, h.Source)
	if err != nil {
		log.Printf("req_id=%s closest rink failed: %v", obs.RequestID(r.Context()), err)
		renderPage(w, r, h.Page, statusFor(err), pageData{
			Notices: []notice{{Category: "error", Message: services.UserMessage(err)}},
			Input:   input,
		})
		return
	}

	renderPage(w, r, h.Page, http.StatusOK, pageData{
		Notices: []notice{{Category: "success", Message: services.FormatResult(result)}},
		Input:   input,
	})
}

// APIClosest is the JSON form of ClosestRink: GET /api/closest?coordinates=lat,lon.
func (h *RinkHandler) APIClosest(w http.ResponseWriter, r *http.Request) {
	result, err := services.LocateClosestRink(r.Context(), r.URL.Query().Get("coordinates"), h.Source)
	if err != nil {
		log.Printf("req_id=%s api closest rink failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, statusFor(err), services.UserMessage(err))
		return
	}

	loc, _ := result.Rink.Location()
	writeJSON(w, r, http.StatusOK, dto.ClosestRinkResponse{
		Name:       result.Rink.Name(),
		DistanceKm: result.DistanceKm,
		Latitude:   loc.Lat,
		Longitude:  loc.Lon,
		Message:    services.FormatResult(result),
		Record:     result.Rink.Fields,
	})
}

// List returns every rink of the current dataset with its position.
func (h *RinkHandler) List(w http.ResponseWriter, r *http.Request) {
	rinks, err := h.Source.FetchRinks(r.Context())
	if err != nil {
		log.Printf("req_id=%s list rinks failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, statusFor(err), services.UserMessage(err))
		return
	}

	res := dto.ListRinksResponse{
		Rinks: make([]dto.RinkResponse, 0, len(rinks)),
	}
	for _, rink := range rinks {
		loc, err := rink.Location()
		if err != nil {
			err = fmt.Errorf("list rinks: %w: %w", domain.ErrUpstream, err)
			log.Printf("req_id=%s %v", obs.RequestID(r.Context()), err)
			writeError(w, r, statusFor(err), services.UserMessage(err))
			return
		}
		res.Rinks = append(res.Rinks, dto.RinkResponse{
			Name:      rink.Name(),
			Latitude:  loc.Lat,
			Longitude: loc.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
