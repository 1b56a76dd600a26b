package services

import (
	"fmt"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/ports"
)

const NearestHeading = "Nearest Nursery"

// Index facilities by name. Names are unique in a loaded dataset; if they were
// not, the first occurrence wins.
func IndexFacilities(facilities []domain.Facility) map[string]domain.Facility {
	idx := make(map[string]domain.Facility, len(facilities))
	for _, f := range facilities {
		if _, ok := idx[f.Name]; !ok {
			idx[f.Name] = f
		}
	}
	return idx
}

// Decide which facility the detail panel shows.
//
// A selection that names a known facility gets a fresh distance from the
// user. No selection, or one that matches nothing, reuses nearest as is.
func ResolveSelection(
	index map[string]domain.Facility,
	user domain.Coordinates,
	nearest domain.Match,
	sel domain.Selection,
	calc ports.DistanceCalculator,
) domain.DetailPanel {
	if sel.Kind == domain.Selected {
		if f, ok := index[sel.Identifier]; ok {
			d := calc.DistanceKm(user, f.Location)
			return panelFor(domain.PanelSelected, f.Name, domain.Match{Facility: f, DistanceKm: d})
		}
	}

	return panelFor(domain.PanelNearest, NearestHeading, nearest)
}

func panelFor(kind domain.PanelKind, heading string, m domain.Match) domain.DetailPanel {
	return domain.DetailPanel{
		Kind:            kind,
		Heading:         heading,
		Name:            m.Facility.Name,
		DistanceKm:      m.DistanceKm,
		DistanceText:    fmt.Sprintf("%.2f km", m.DistanceKm),
		Capacity:        m.Facility.Capacity,
		PlantsAvailable: m.Facility.PlantsAvailable,
		Contact:         m.Facility.Contact,
	}
}
