package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/amine-amaach/dbstats/utils"
	"github.com/bxcodec/faker/v3"
	"go.uber.org/zap"
)

// DefaultSeedTable receives simulated readings when no table is named.
const DefaultSeedTable = "generator_readings"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type seedService struct {
	sim *simService
}

// NewSeedService returns the service that fills a demo table with simulated
// power-generator readings.
func NewSeedService(seed int64) *seedService {
	return &seedService{sim: NewSimService(seed)}
}

// Readings simulates perGenerator readings, one minute apart from start, for
// each of generators generators. Measurements are dropped with probability
// dropRate. Operators and coordinates are made up by faker. Non-positive
// counts yield no readings.
func (svc *seedService) Readings(generators, perGenerator int, start time.Time, dropRate float64) []models.Reading {
	if generators < 1 || perGenerator < 1 {
		return nil
	}
	readings := make([]models.Reading, 0, generators*perGenerator)
	for g := 1; g <= generators; g++ {
		id := "Generator_" + fmt.Sprint(g)
		operator := faker.FirstName()
		lat, lon := faker.Latitude(), faker.Longitude()
		for i := 0; i < perGenerator; i++ {
			r := models.Reading{
				GeneratorID: id,
				Operator:    operator,
				Lat:         lat,
				Lon:         lon,
				RecordedAt:  start.Add(time.Duration(i) * time.Minute),
			}
			svc.sim.SetLoad(&r)
			svc.sim.SetTemperature(&r)
			svc.sim.SetPower(&r)
			svc.sim.SetFuelUsed(&r)
			svc.sim.SetStatus(&r)
			svc.sim.DropSamples(&r, dropRate)
			readings = append(readings, r)
		}
	}
	return readings
}

// Seed recreates table in the database behind descriptor and inserts readings
// in a single transaction.
func (svc *seedService) Seed(ctx context.Context, logger *zap.SugaredLogger, descriptor, table string, readings []models.Reading) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	driver, dsn, err := ResolveDescriptor(descriptor)
	if err != nil {
		return models.NewQueryError(models.ErrConnectionFailed, table, err)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return models.NewQueryError(models.ErrConnectionFailed, table, err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return models.NewQueryError(models.ErrConnectionFailed, table, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return models.NewQueryError(models.ErrQueryExecutionFailed, table, err)
	}
	defer tx.Rollback()

	stmts := []string{
		"DROP TABLE IF EXISTS " + table,
		"CREATE TABLE " + table + ` (
			generator_id VARCHAR(64) NOT NULL,
			operator VARCHAR(64),
			lat REAL,
			lon REAL,
			load_pct INTEGER,
			temperature REAL,
			power REAL,
			fuel_used REAL,
			status VARCHAR(16),
			recorded_at VARCHAR(32)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return models.NewQueryError(models.ErrQueryExecutionFailed, table, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, insertStatement(driver, table, models.ReadingColumns))
	if err != nil {
		return models.NewQueryError(models.ErrQueryExecutionFailed, table, err)
	}
	defer insert.Close()
	for _, r := range readings {
		if _, err := insert.ExecContext(ctx, r.Cells()...); err != nil {
			return models.NewQueryError(models.ErrQueryExecutionFailed, table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return models.NewQueryError(models.ErrQueryExecutionFailed, table, err)
	}

	logger.Info(utils.Colorize(fmt.Sprintf("Seeded %d readings into %s ✅", len(readings), table), utils.Green))
	return nil
}

// insertStatement builds a parameterized INSERT using the driver's placeholder style.
func insertStatement(driver, table string, columns []string) string {
	marks := make([]string, len(columns))
	for i := range columns {
		if driver == "pgx" {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "))
}
