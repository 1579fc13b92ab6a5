// Package foodcsv loads the food nutrition table from CSV and normalizes it
// into domain.FoodRecord values.
package foodcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mealmatch/backend/internal/domain"
)

// RowError describes a skipped row
type RowError struct {
	Line int
	Food string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Food, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Result is what a load produced
type Result struct {
	Records []domain.FoodRecord
	// Skipped lists rows dropped for invalid data
	Skipped []*RowError
	// Header is the header row as read from the source
	Header []string
	// UsedAlternateSchema is set when the header did not name the required columns
	UsedAlternateSchema bool
}

// Loader reads food tables
type Loader struct {
	classifier domain.Classifier
	debug      bool
}

// NewLoader creates a loader that categorizes foods with classifier
func NewLoader(classifier domain.Classifier) *Loader {
	return &Loader{classifier: classifier}
}

// SetDebug enables or disables debug logging
func (l *Loader) SetDebug(debug bool) {
	l.debug = debug
}

// Load reads the CSV file at path. A missing file is reported as
// domain.ErrDataSourceMissing together with an empty, non-nil Result so
// callers can log and carry on.
func (l *Loader) Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyResult(), fmt.Errorf("%w: %s", domain.ErrDataSourceMissing, path)
		}
		return emptyResult(), fmt.Errorf("failed to open food table: %w", err)
	}
	defer f.Close()

	return l.Parse(f)
}

// Parse reads a CSV food table from r. Rows with bad nutrition values are
// skipped and recorded in Result.Skipped, as are rows the CSV reader rejects
// (a stray quote, say). Only an unreadable header or a failing reader
// produces an error.
func (l *Loader) Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return emptyResult(), fmt.Errorf("%w: empty food table", domain.ErrSchemaMismatch)
		}
		return emptyResult(), fmt.Errorf("failed to read header: %w", err)
	}

	result := emptyResult()
	result.Header = header

	columns, missing := resolveColumns(header)
	if len(missing) > 0 {
		log.Printf("[FOODS] Missing required columns %v in header %v; using alternate schema", missing, header)
		columns = alternateColumns()
		result.UsedAlternateSchema = true
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rowErr := &RowError{Line: line, Err: fmt.Errorf("%w: %v", domain.ErrRecordParse, parseErr.Err)}
			log.Printf("[FOODS] Skipping malformed row: %v", rowErr)
			result.Skipped = append(result.Skipped, rowErr)
			continue
		}
		if err != nil {
			return emptyResult(), fmt.Errorf("failed to read line %d: %w", line, err)
		}

		record, err := l.parseRow(row, columns)
		if err != nil {
			rowErr := &RowError{Line: line, Food: cell(row, columns[FieldName]), Err: err}
			log.Printf("[FOODS] Skipping row: %v", rowErr)
			result.Skipped = append(result.Skipped, rowErr)
			continue
		}
		result.Records = append(result.Records, record)
	}

	if l.debug {
		log.Printf("[FOODS] Loaded %d records, skipped %d (alternate schema: %v)",
			len(result.Records), len(result.Skipped), result.UsedAlternateSchema)
	}

	return result, nil
}

func (l *Loader) parseRow(row []string, columns columnMap) (domain.FoodRecord, error) {
	name := cell(row, columns[FieldName])
	if name == "" {
		return domain.FoodRecord{}, fmt.Errorf("%w: missing food name", domain.ErrRecordParse)
	}

	calories, err := parseAmount(row, columns, FieldCalories)
	if err != nil {
		return domain.FoodRecord{}, err
	}
	protein, err := parseAmount(row, columns, FieldProtein)
	if err != nil {
		return domain.FoodRecord{}, err
	}
	carbs, err := parseAmount(row, columns, FieldCarbs)
	if err != nil {
		return domain.FoodRecord{}, err
	}

	return domain.FoodRecord{
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Category: l.classify(name),
	}, nil
}

func (l *Loader) classify(name string) domain.Category {
	if l.classifier == nil {
		return domain.Vegetarian
	}
	return l.classifier.Classify(name)
}

// parseAmount reads a non-negative finite number from the field's column
func parseAmount(row []string, columns columnMap, field Field) (float64, error) {
	raw := cell(row, columns[field])
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrRecordParse, field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrRecordParse, field, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("%w: %s %q must be a non-negative number", domain.ErrRecordParse, field, raw)
	}
	return value, nil
}

// cell returns the trimmed value at index i, or "" when the row is too short
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func emptyResult() *Result {
	return &Result{Records: []domain.FoodRecord{}}
}
