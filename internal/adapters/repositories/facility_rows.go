package repositories

import (
	"errors"
	"fmt"
	"math"
	"nursery-locator/internal/domain"
	"strconv"
	"strings"
)

// Columns every facility source must provide.
var RequiredColumns = []string{"Name", "Latitude", "Longitude", "Capacity", "PlantsAvailable", "Contact"}

var (
	ErrMissingColumns    = errors.New("missing required columns")
	ErrDuplicateFacility = errors.New("duplicate facility name")
	ErrNoFacilities      = domain.ErrNoFacilities
)

// columnIndex maps each required column to its position in the header row.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}

	missing := make([]string, 0)
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return idx, nil
}

// parseFacilityRows turns a header + data rows into validated facilities.
// Row numbers in errors are 1-based and count the header.
func parseFacilityRows(rows [][]string) ([]domain.Facility, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(RequiredColumns, ", "))
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	facilities := make([]domain.Facility, 0, len(rows)-1)
	seen := make(map[string]int, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}

		f, err := parseFacility(row, idx)
		if err != nil {
			return nil, fmt.Errorf("parse facilities: row %d: %w", rowNum, err)
		}

		if first, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("parse facilities: row %d: %w %q (first seen at row %d)", rowNum, ErrDuplicateFacility, f.Name, first)
		}
		seen[f.Name] = rowNum
		facilities = append(facilities, f)
	}

	if len(facilities) == 0 {
		return nil, ErrNoFacilities
	}

	return facilities, nil
}

func parseFacility(row []string, idx map[string]int) (domain.Facility, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := cell("Name")
	if name == "" {
		return domain.Facility{}, errors.New("name cannot be empty")
	}

	lat, err := strconv.ParseFloat(cell("Latitude"), 64)
	if err != nil {
		return domain.Facility{}, fmt.Errorf("latitude %q: %w", cell("Latitude"), err)
	}
	lon, err := strconv.ParseFloat(cell("Longitude"), 64)
	if err != nil {
		return domain.Facility{}, fmt.Errorf("longitude %q: %w", cell("Longitude"), err)
	}
	loc := domain.Coordinates{Lat: lat, Lon: lon}
	if err := loc.Validate(); err != nil {
		return domain.Facility{}, err
	}

	capacity, err := parseCount(cell("Capacity"))
	if err != nil {
		return domain.Facility{}, fmt.Errorf("capacity: %w", err)
	}
	plants, err := parseCount(cell("PlantsAvailable"))
	if err != nil {
		return domain.Facility{}, fmt.Errorf("plants available: %w", err)
	}

	return domain.Facility{
		Name:            name,
		Location:        loc,
		Capacity:        capacity,
		PlantsAvailable: plants,
		Contact:         cell("Contact"),
	}, nil
}

// parseCount accepts "120" as well as spreadsheet renderings like "120.0".
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
