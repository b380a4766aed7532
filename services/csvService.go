package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// DefaultOutputDir is where query results are written when nothing else is configured.
const DefaultOutputDir = "output_data"

const timeLayout = "2006-01-02 15:04:05.999999999"

type csvService struct {
	fs afero.Fs
}

// NewCSVService returns the service persisting datasets as comma-separated files.
func NewCSVService(fs afero.Fs) *csvService {
	return &csvService{fs: fs}
}

// OutputPath returns the file a dataset named name is written to.
func OutputPath(dir, name string) string {
	return filepath.Join(dir, name+".csv")
}

// Write stores ds at path: a header row with the column names, then one record
// per row in dataset order. The parent directory is created when missing and an
// existing file is replaced. Identical datasets always produce identical bytes.
func (svc *csvService) Write(path string, ds *models.Dataset) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.ColumnNames()); err != nil {
		return errors.Wrap(err, "encoding header")
	}
	record := make([]string, ds.Width())
	for i := 0; i < ds.Len(); i++ {
		for j, cell := range ds.Row(i) {
			record[j] = FormatCell(cell)
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "encoding row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "encoding csv")
	}

	if err := svc.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	if err := afero.WriteFile(svc.fs, path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Read loads a comma-separated file with a header row as a Dataset named after
// the file. Empty cells are nulls; a column whose other cells all parse as
// numbers is numeric.
func (svc *csvService) Read(path string) (*models.Dataset, error) {
	f, err := svc.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return models.NewDataset(name, nil, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}

	var raw [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		raw = append(raw, rec)
	}

	columns := make([]models.Column, len(header))
	data := make([][]any, len(raw))
	for i := range data {
		data[i] = make([]any, len(header))
	}
	for j, h := range header {
		numeric := true
		for _, rec := range raw {
			if rec[j] == "" {
				continue
			}
			if _, err := decimal.NewFromString(rec[j]); err != nil {
				numeric = false
				break
			}
		}
		columns[j] = models.Column{Name: h}
		for i, rec := range raw {
			switch {
			case rec[j] == "":
				data[i][j] = nil
			case numeric:
				data[i][j] = parseNumber(rec[j])
			default:
				data[i][j] = rec[j]
			}
		}
		if numeric && len(raw) > 0 {
			columns[j].Kind = models.KindNumeric
		}
	}
	return models.NewDataset(name, columns, data)
}

// FormatCell renders one dataset cell the way it is written to CSV.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(timeLayout)
	}
	if f, ok := models.ToFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
