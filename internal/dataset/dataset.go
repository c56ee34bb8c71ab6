// Package dataset loads tabular files into gota dataframes. CSV is the
// primary format; .xlsx workbooks are read from their first sheet.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/richard-senior/barchart/internal/logger"
)

var ErrUnsupportedFormat = errors.New("dataset: unsupported file format")

// Load reads the whole file at path. The first row is the header and
// column types are detected from the values.
func Load(path string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path)
	case ".xls":
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: open: %w", err)
	}
	defer file.Close()

	// Excel's "CSV UTF-8" export starts with a byte order mark
	r := csv.NewReader(transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	records, err := r.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: %s is empty", path)
	}

	df := fromRecords(records)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: parse %s: %w", path, df.Err)
	}
	logger.Debug("loaded %s: %d rows, columns %v", path, df.Nrow(), df.Names())
	return df, nil
}

func loadWorkbook(path string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: sheet %q is empty", sheets[0])
	}

	df := fromRecords(padRows(rows))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: parse %s: %w", path, df.Err)
	}
	logger.Debug("loaded %s[%s]: %d rows, columns %v", path, sheets[0], df.Nrow(), df.Names())
	return df, nil
}

// fromRecords builds the frame from a header row and the rows after it. A
// header with no rows gives a frame with those columns and zero rows,
// which gota's loader refuses.
func fromRecords(records [][]string) dataframe.DataFrame {
	if len(records) > 1 {
		return dataframe.LoadRecords(records, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	}
	columns := make([]series.Series, len(records[0]))
	for i, name := range records[0] {
		columns[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(columns...)
}

// padRows squares off the ragged rows excelize returns, where trailing
// empty cells are dropped.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}
