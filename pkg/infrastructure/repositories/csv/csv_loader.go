package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/services"
)

var (
	partsHeader       = []string{"id", "name", "unit"}
	complexesHeader   = []string{"id", "name", "description"}
	compositionHeader = []string{"complex_id", "part_id", "quantity"}
	selectionsHeader  = []string{"complex_id", "count"}
)

// Loader handles loading catalog data and selections from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadParts loads parts from a CSV file
func (l *Loader) LoadParts(filename string) ([]*entities.Part, error) {
	rows, err := readTable(filename, "parts", partsHeader)
	if err != nil {
		return nil, err
	}

	parts := make([]*entities.Part, 0, len(rows))
	for i, record := range rows {
		id, err := parseID(record[0], "id")
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}

		part, err := entities.NewPart(entities.PartID(id), record[1], entities.Text(record[2]))
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// LoadComplexes loads complexes with empty compositions from a CSV file
func (l *Loader) LoadComplexes(filename string) ([]*entities.Complex, error) {
	rows, err := readTable(filename, "complexes", complexesHeader)
	if err != nil {
		return nil, err
	}

	complexes := make([]*entities.Complex, 0, len(rows))
	for i, record := range rows {
		id, err := parseID(record[0], "id")
		if err != nil {
			return nil, fmt.Errorf("complexes CSV row %d: %w", i+2, err)
		}

		c, err := entities.NewComplex(entities.ComplexID(id), record[1], entities.Text(record[2]))
		if err != nil {
			return nil, fmt.Errorf("complexes CSV row %d: %w", i+2, err)
		}
		complexes = append(complexes, c)
	}

	return complexes, nil
}

// LoadComposition reads composition rows and assigns them to complexes in file order.
// A repeated (complex_id, part_id) row overwrites the earlier quantity.
func (l *Loader) LoadComposition(filename string, complexes []*entities.Complex, parts services.PartLookup) error {
	rows, err := readTable(filename, "composition", compositionHeader)
	if err != nil {
		return err
	}

	byID := make(map[entities.ComplexID]*entities.Complex, len(complexes))
	for _, c := range complexes {
		byID[c.ID] = c
	}

	for i, record := range rows {
		complexID, err := parseID(record[0], "complex_id")
		if err != nil {
			return fmt.Errorf("composition CSV row %d: %w", i+2, err)
		}
		partID, err := parseID(record[1], "part_id")
		if err != nil {
			return fmt.Errorf("composition CSV row %d: %w", i+2, err)
		}
		quantity, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return fmt.Errorf("composition CSV row %d: %w", i+2,
				entities.NewError(entities.InvalidInput, fmt.Sprintf("invalid quantity: %s", record[2])))
		}

		target, exists := byID[entities.ComplexID(complexID)]
		if !exists {
			return fmt.Errorf("composition CSV row %d: %w", i+2,
				entities.NewError(entities.InvalidReference, fmt.Sprintf("complex %d not found", complexID)))
		}

		updated, err := services.AssignPart(*target, entities.PartID(partID), entities.Quantity(quantity), parts)
		if err != nil {
			return fmt.Errorf("composition CSV row %d: %w", i+2, err)
		}
		*target = updated
	}

	return nil
}

// LoadSelections loads the (complex_id, count) pairs to aggregate
func (l *Loader) LoadSelections(filename string) ([]entities.Selection, error) {
	rows, err := readTable(filename, "selections", selectionsHeader)
	if err != nil {
		return nil, err
	}

	selections := make([]entities.Selection, 0, len(rows))
	for i, record := range rows {
		complexID, err := parseID(record[0], "complex_id")
		if err != nil {
			return nil, fmt.Errorf("selections CSV row %d: %w", i+2, err)
		}
		count, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("selections CSV row %d: %w", i+2,
				entities.NewError(entities.InvalidInput, fmt.Sprintf("invalid count: %s", record[1])))
		}

		selections = append(selections, entities.Selection{
			ComplexID: entities.ComplexID(complexID),
			Count:     count,
		})
	}

	return selections, nil
}

// readTable reads a CSV file, checks its header and returns the data rows.
// Row numbers in callers' errors are 1-based file lines, so the first data row is 2.
func readTable(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		name := strings.TrimPrefix(actual[i], "\ufeff")
		if strings.ToLower(strings.TrimSpace(name)) != col {
			return false
		}
	}

	return true
}

func parseID(s, column string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, entities.NewError(entities.InvalidInput, fmt.Sprintf("invalid %s: %s", column, s))
	}
	if id < 0 {
		return 0, entities.NewError(entities.InvalidInput, fmt.Sprintf("%s cannot be negative: %d", column, id))
	}
	return id, nil
}
