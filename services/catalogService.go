package services

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultCatalogFile is the catalog looked up when no other path is configured.
const DefaultCatalogFile = "queries.txt"

// maxCatalogLine bounds a single catalog line; long generated SQL fits comfortably.
const maxCatalogLine = 1024 * 1024

type catalogService struct {
	fs afero.Fs
}

// NewCatalogService returns a catalog reader working on the given file system.
func NewCatalogService(fs afero.Fs) *catalogService {
	return &catalogService{fs: fs}
}

// Load reads and parses the catalog file at path. A missing file is an error,
// never an empty catalog.
func (svc *catalogService) Load(path string) (*models.Catalog, error) {
	f, err := svc.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.NewQueryError(models.ErrMissingCatalogFile, path, err)
		}
		return nil, errors.Wrapf(err, "opening catalog %s", path)
	}
	defer f.Close()
	return svc.Parse(f)
}

// Parse builds a Catalog from its text form.
//
// A line ending with ':' (surrounding whitespace ignored) names a new query; every
// following line is appended to it with one trailing space until the next name.
// Lines before the first name are ignored. When a name is defined twice the last
// definition wins. Entries left with an empty body are dropped.
func (svc *catalogService) Parse(r io.Reader) (*models.Catalog, error) {
	bodies := map[string]*strings.Builder{}
	var names []string
	var current *strings.Builder

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxCatalogLine)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasSuffix(line, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if name == "" {
				// an anonymous header closes the previous query; its lines are dropped
				current = nil
				continue
			}
			if _, ok := bodies[name]; !ok {
				names = append(names, name)
			}
			current = &strings.Builder{}
			bodies[name] = current
			continue
		}
		if current != nil {
			current.WriteString(line)
			current.WriteByte(' ')
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading catalog")
	}

	final := make(map[string]string, len(bodies))
	for name, body := range bodies {
		final[name] = strings.TrimSpace(body.String())
	}
	return models.NewCatalog(names, final), nil
}
