package models

import "time"

// Reading is one simulated power-generator sample used to seed demo databases.
// Nil measurements are dropped samples and end up as NULL.
type Reading struct {
	GeneratorID string    `json:"GeneratorID"`
	Operator    string    `json:"Operator"`
	Lat         float64   `json:"Lat"`
	Lon         float64   `json:"Lon"`
	Load        int       `json:"Load"`
	Temperature *float64  `json:"Temperature"`
	Power       *float64  `json:"Power"`
	FuelUsed    *float64  `json:"FuelUsed"`
	Status      string    `json:"Status"`
	RecordedAt  time.Time `json:"RecordedAt"`
}

// ReadingColumns lists the generator_readings columns in insert order.
var ReadingColumns = []string{
	"generator_id", "operator", "lat", "lon", "load_pct", "temperature",
	"power", "fuel_used", "status", "recorded_at",
}

// Cells returns the reading in ReadingColumns order.
func (r Reading) Cells() []any {
	return []any{
		r.GeneratorID, r.Operator, r.Lat, r.Lon, int64(r.Load),
		floatCell(r.Temperature), floatCell(r.Power), floatCell(r.FuelUsed),
		r.Status, r.RecordedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
