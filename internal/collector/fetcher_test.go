package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SoundTreasury/internal/model"
)

func TestValidateModelPayload(t *testing.T) {
	price := 98000.0
	valid := &model.ModelPayload{
		Data:  []model.TimePoint{{Date: 1700000000000, Price: &price}},
		Stats: &model.ModelStats{DataSource: "test"},
	}
	if err := ValidateModelPayload(valid); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	cases := []struct {
		name    string
		payload *model.ModelPayload
	}{
		{"nil payload", nil},
		{"empty data", &model.ModelPayload{Stats: &model.ModelStats{}}},
		{"missing stats", &model.ModelPayload{Data: valid.Data}},
	}
	for _, tc := range cases {
		err := ValidateModelPayload(tc.payload)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("%s: expected ErrInvalidPayload, got %v", tc.name, err)
		}
	}
}

func TestValidateSectorSeries(t *testing.T) {
	valid := &model.ComparisonSeries{
		Years:      []model.YearResult{{Year: 2024}},
		Scoreboard: []model.ScoreboardEntry{{}},
	}
	if err := ValidateSectorSeries(valid); err != nil {
		t.Errorf("valid series rejected: %v", err)
	}
	if err := ValidateSectorSeries(&model.ComparisonSeries{Years: valid.Years}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("missing scoreboard: expected ErrInvalidPayload, got %v", err)
	}
	if err := ValidateSectorSeries(nil); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("nil series: expected ErrInvalidPayload, got %v", err)
	}
}

func TestRemoteFetcher_ModelSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model-series" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-API-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data":[{"date":1700000000000,"price":98000,"fairPrice":65000,"daysSinceGenesis":5400,"upperBand":215000,"lowerBand":35600}],
			"stats":{"stdDev":0.6,"rSquared":0.95,"dataSource":"Blockchain.com (Live)"}
		}`))
	}))
	defer srv.Close()

	f := NewRemoteFetcher(srv.URL, "secret", 5*time.Second, 0)
	payload, err := f.FetchModelSeries(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected 1 point, got %d", len(payload.Data))
	}
	if payload.Data[0].Price == nil || *payload.Data[0].Price != 98000 {
		t.Error("price not decoded")
	}
	if payload.Stats.DataSource != "Blockchain.com (Live)" {
		t.Errorf("data source: %q", payload.Stats.DataSource)
	}
}

func TestRemoteFetcher_ErrorTaxonomy(t *testing.T) {
	status := http.StatusInternalServerError
	body := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body == "" {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewRemoteFetcher(srv.URL, "", 5*time.Second, 0)

	// upstream 5xx is a network-class failure
	_, err := f.FetchModelSeries(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("5xx: expected ErrNetwork, got %v", err)
	}

	// well-formed JSON with missing fields is a payload failure
	body = `{"data":[],"stats":null}`
	_, err = f.FetchModelSeries(context.Background())
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("empty payload: expected ErrInvalidPayload, got %v", err)
	}

	// unreachable host is a network failure
	dead := NewRemoteFetcher("http://127.0.0.1:1", "", time.Second, 0)
	_, err = dead.FetchModelSeries(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("unreachable: expected ErrNetwork, got %v", err)
	}
}

func TestRemoteFetcher_SectorSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sector-series/chemicals" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"years":[{"year":2024,"returns":[],"winner":null}],
			"scoreboard":[{"symbol":"BTC-USD","name":"Bitcoin","color":"#f7931a","count":7}]
		}`))
	}))
	defer srv.Close()

	f := NewRemoteFetcher(srv.URL, "", 5*time.Second, 0)
	series, err := f.FetchSectorSeries(context.Background(), "chemicals")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series.Scoreboard) != 1 || series.Scoreboard[0].Symbol != "BTC-USD" {
		t.Error("scoreboard not decoded")
	}
	if series.Scoreboard[0].WinCount != 7 {
		t.Errorf("win count: %d", series.Scoreboard[0].WinCount)
	}
}
