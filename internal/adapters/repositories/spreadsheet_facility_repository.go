package repositories

import (
	"context"
	"encoding/csv"
	"fmt"
	"nursery-locator/internal/domain"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet-backed implementation of the FacilityRepository port.
// The file is read once; later calls return the same records.
type SpreadsheetFacilityRepository struct {
	facilities []domain.Facility
}

// Load an .xlsx workbook or a .csv file. sheet selects the worksheet for
// workbooks and defaults to the first one.
func NewSpreadsheetFacilityRepository(path, sheet string) (*SpreadsheetFacilityRepository, error) {
	rows, err := readRows(path, sheet)
	if err != nil {
		return nil, fmt.Errorf("load facilities %q: %w", path, err)
	}

	facilities, err := parseFacilityRows(rows)
	if err != nil {
		return nil, fmt.Errorf("load facilities %q: %w", path, err)
	}

	return &SpreadsheetFacilityRepository{facilities: facilities}, nil
}

// Return all facilities in file order.
func (s *SpreadsheetFacilityRepository) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	out := make([]domain.Facility, len(s.facilities))
	copy(out, s.facilities)
	return out, nil
}

func readRows(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path, sheet)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported facility source extension %q", filepath.Ext(path))
	}
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
