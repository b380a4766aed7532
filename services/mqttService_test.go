package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/amine-amaach/dbstats/services/models"
	"github.com/amine-amaach/dbstats/utils"
	"go.uber.org/zap"
)

func TestSummaryTopic(t *testing.T) {
	tests := []struct {
		dataset, kind, column string
		want                  string
	}{
		{"big_cities", "numeric", "population", "dbstats/big_cities/numeric/population"},
		{"sales/2022", "categorical", "region #1", "dbstats/sales_2022/categorical/region__1"},
		{"q", "numeric", "a+b", "dbstats/q/numeric/a_b"},
	}
	for _, tt := range tests {
		if got := SummaryTopic("dbstats", tt.dataset, tt.kind, tt.column); got != tt.want {
			t.Errorf("SummaryTopic(%q, %q, %q) = %q, want %q", tt.dataset, tt.kind, tt.column, got, tt.want)
		}
	}
}

func TestBuildSummaryPayloads(t *testing.T) {
	ds := newDataset(t, []models.Column{
		{Name: "city", Kind: models.KindOther},
		{Name: "population", Kind: models.KindNumeric},
	},
		[]any{"Oslo", int64(10)},
		[]any{"Oslo", int64(20)},
		[]any{nil, nil},
	)
	svc := NewSummaryService()
	payloads := NewMqttService().BuildSummaryPayloads("plant", "cities", svc.Numeric(ds), svc.Categorical(ds), zap.NewNop().Sugar())

	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d: %v", len(payloads), payloads)
	}

	var numeric models.NumericSummary
	if err := json.Unmarshal(payloads["plant/cities/numeric/population"], &numeric); err != nil {
		t.Fatalf("numeric payload: %v", err)
	}
	assertFloat(t, "Mean", numeric.Mean, 15)
	assertFloat(t, "MissingFraction", numeric.MissingFraction, 1.0/3)

	var categorical map[string]any
	if err := json.Unmarshal(payloads["plant/cities/categorical/city"], &categorical); err != nil {
		t.Fatalf("categorical payload: %v", err)
	}
	if categorical["Mode"] != "Oslo" || categorical["DistinctCount"] != 1.0 {
		t.Errorf("categorical payload = %v", categorical)
	}
}

func TestBuildSummaryPayloadsEncodesUndefinedAsNull(t *testing.T) {
	ds := newDataset(t, []models.Column{{Name: "x", Kind: models.KindNumeric}}, []any{nil})
	payloads := NewMqttService().BuildSummaryPayloads("r", "d", NewSummaryService().Numeric(ds), nil, zap.NewNop().Sugar())

	var fields map[string]any
	if err := json.Unmarshal(payloads["r/d/numeric/x"], &fields); err != nil {
		t.Fatal(err)
	}
	if v, ok := fields["Mean"]; !ok || v != nil {
		t.Errorf("Mean = %v (present %v), want null", v, ok)
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	cfg := &utils.Config{ServerURL: "://broker", KeepAlive: 30, RetryDelay: 1}
	if _, _, err := NewMqttService().Connect(context.Background(), zap.NewNop().Sugar(), cfg); err == nil {
		t.Error("expected an invalid server url to fail")
	}
}
