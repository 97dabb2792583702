// Package dataset loads the unemployment table from a CSV or XLSX file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyFile is returned when the source has no header row.
var ErrEmptyFile = errors.New("dataset file is empty")

// Loader reads the source file once at startup.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads path into a Table, choosing the format by extension.
// Any error is fatal for the caller: the dashboard has nothing to show without
// its table.
func (l *Loader) Load(path string) (*domain.Table, error) {
	var (
		table *domain.Table
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = l.loadXLSX(path)
	default:
		table, err = l.loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		"path", path,
		"rows", table.Len(),
		"regions", len(table.Regions),
		"states", len(table.States),
		"null_dates", table.NullDates,
		"has_dates", table.HasDates,
	)
	if table.NullDates > 0 {
		l.logger.Warn("rows with unparseable dates excluded from time series", "count", table.NullDates)
	}
	for _, v := range domain.CheckNesting(table.Rows) {
		l.logger.Warn("state appears under multiple regions", "state", v.State, "regions", v.Regions)
	}
	return table, nil
}

func (l *Loader) loadCSV(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return table, nil
}

func (l *Loader) loadXLSX(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read dataset %s: %w", path, ErrEmptyFile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	table, err := fromRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return table, nil
}

// ReadCSV parses a delimited stream. The first row is a header and is discarded;
// a UTF-8 or UTF-16 byte-order mark is stripped.
func ReadCSV(r io.Reader) (*domain.Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (*domain.Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	rows := make([]domain.Observation, 0, len(records)-1)
	for i, rec := range records[1:] {
		o, err := domain.ParseRecord(rec)
		if err != nil {
			// Line numbers are 1-based and count the header.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, o)
	}
	return domain.NewTable(rows), nil
}
