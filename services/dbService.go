package services

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	// database/sql drivers reachable through a connection descriptor
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type dbService struct{}

// NewDBService returns the service that talks to the target database.
func NewDBService() *dbService {
	return &dbService{}
}

// ResolveDescriptor maps a connection descriptor (SQLAlchemy-style URI, or a
// sqlite "file:" URI) to a database/sql driver name and its DSN.
func ResolveDescriptor(descriptor string) (driver string, dsn string, err error) {
	if strings.HasPrefix(descriptor, "file:") {
		return "sqlite3", descriptor, nil
	}
	i := strings.Index(descriptor, "://")
	if i < 0 {
		return "", "", fmt.Errorf("descriptor has no scheme")
	}
	scheme := strings.ToLower(descriptor[:i])
	rest := descriptor[i+3:]
	// "postgresql+psycopg2" and friends name the Python driver; the dialect is enough here.
	if j := strings.IndexByte(scheme, '+'); j >= 0 {
		scheme = scheme[:j]
	}

	switch scheme {
	case "sqlite", "sqlite3":
		if rest == "" {
			return "sqlite3", ":memory:", nil
		}
		// sqlite:///relative.db and sqlite:////absolute.db
		return "sqlite3", strings.TrimPrefix(rest, "/"), nil
	case "postgres", "postgresql":
		return "pgx", "postgres://" + rest, nil
	case "mysql", "mariadb":
		dsn, err := mysqlDSN(rest)
		if err != nil {
			return "", "", err
		}
		return "mysql", dsn, nil
	}
	return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
}

func mysqlDSN(rest string) (string, error) {
	u, err := url.Parse("mysql://" + rest)
	if err != nil {
		return "", errors.Wrap(err, "parsing mysql descriptor")
	}
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" && u.Hostname() != "" {
		cfg.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.ParseTime = true
	if q := u.Query(); len(q) > 0 {
		cfg.Params = make(map[string]string, len(q))
		for k := range q {
			cfg.Params[k] = q.Get(k)
		}
	}
	return cfg.FormatDSN(), nil
}

// Fetch opens a connection for the duration of one statement, executes it
// verbatim and materializes every row. The connection is released on every path.
func (svc *dbService) Fetch(ctx context.Context, logger *zap.SugaredLogger, name, descriptor, query string) (*models.Dataset, error) {
	driver, dsn, err := ResolveDescriptor(descriptor)
	if err != nil {
		return nil, models.NewQueryError(models.ErrConnectionFailed, name, err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, models.NewQueryError(models.ErrConnectionFailed, name, err)
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, models.NewQueryError(models.ErrConnectionFailed, name, err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return nil, models.NewQueryError(models.ErrConnectionFailed, name, err)
	}
	logger.Debugw("Connected to database", "Driver", driver, "Query", name)

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, models.NewQueryError(models.ErrQueryExecutionFailed, name, err)
	}
	defer rows.Close()

	ds, err := materialize(name, rows)
	if err != nil {
		return nil, models.NewQueryError(models.ErrQueryExecutionFailed, name, err)
	}
	return ds, nil
}

// materialize drains rows into a Dataset. Column labels keep their returned
// order; a repeated label gets a ".N" suffix so dataset names stay unique.
func materialize(name string, rows *sql.Rows) (*models.Dataset, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]models.Column, len(types))
	seen := make(map[string]int, len(types))
	for i, ct := range types {
		label := ct.Name()
		if n, ok := seen[label]; ok {
			seen[label] = n + 1
			label = fmt.Sprintf("%s.%d", label, n+1)
		} else {
			seen[label] = 0
		}
		columns[i] = models.Column{Name: label, DatabaseType: ct.DatabaseTypeName()}
	}

	var data [][]any
	for rows.Next() {
		cells := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i := range cells {
			cells[i] = normalizeValue(cells[i], columns[i].DatabaseType)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range columns {
		values := make([]any, len(data))
		for r := range data {
			values[r] = data[r][i]
		}
		columns[i].Kind = models.InferKind(values, columns[i].DatabaseType)
	}
	return models.NewDataset(name, columns, data)
}

// normalizeValue turns driver values into the small set of cell types the
// dataset works with: nil, int64, float64, bool, string and time.Time.
func normalizeValue(v any, databaseType string) any {
	switch x := v.(type) {
	case nil, int64, float64, bool, string, time.Time:
		if s, ok := x.(string); ok && models.IsNumericType(databaseType) {
			return parseNumber(s)
		}
		return x
	case []byte:
		s := string(x)
		if models.IsNumericType(databaseType) {
			return parseNumber(s)
		}
		return s
	}
	if f, ok := models.ToFloat(v); ok {
		return f
	}
	return fmt.Sprint(v)
}

// parseNumber decodes a textual number. Integers stay int64, everything else
// goes through decimal to float64. Unparseable text is kept as is.
func parseNumber(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	f, _ := d.Float64()
	return f
}
