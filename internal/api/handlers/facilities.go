package handlers

import (
	"net/http"
	"nursery-locator/internal/api/dto"
	"nursery-locator/internal/services"
)

type FacilityHandler struct {
	Locator *services.Locator
}

// List returns every facility in source order, or ranked by distance when
// lat and lon are given.
func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok, err := parseCoordsQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	var res dto.ListFacilitiesResponse
	if !ok {
		facilities := h.Locator.Facilities()
		res.Facilities = make([]dto.FacilityResponse, 0, len(facilities))
		for _, f := range facilities {
			res.Facilities = append(res.Facilities, dto.NewFacilityResponse(f))
		}
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	ranked, err := h.Locator.Ranked(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res.Facilities = make([]dto.FacilityResponse, 0, len(ranked))
	for _, m := range ranked {
		res.Facilities = append(res.Facilities, dto.NewMatchFacilityResponse(m))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *FacilityHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	c, ok, err := parseCoordsQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid_query", "lat and lon are required")
		return
	}

	m, err := h.Locator.Nearest(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewMatchResponse(m))
}

func (h *FacilityHandler) Boundary(w http.ResponseWriter, r *http.Request) {
	b := h.Locator.Boundary()
	if b == nil {
		writeError(w, r, http.StatusNotFound, "no_boundary", "no boundary configured")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewBoundaryResponse(b))
}
