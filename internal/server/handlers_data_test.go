package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/smarthydra/hydrasvc/internal/database"
)

// seedStation inserts a station for the data-route tests to target.
func seedStation(t *testing.T, dbc *database.Client) *database.Station {
	t.Helper()
	station := &database.Station{Name: "Gauge", Code: "GA_ST01", CityID: 1, IsActive: true}
	if err := dbc.CreateStation(context.Background(), station); err != nil {
		t.Fatalf("seeding station: %v", err)
	}
	return station
}

func TestCreateWaterLevel(t *testing.T) {
	_, dbc, handler := newTestServer(t)
	token := registerUser(t, handler, "alice", "pw")
	station := seedStation(t, dbc)

	t.Run("defaults measure_at to now", func(t *testing.T) {
		w := postForm(handler, fmt.Sprintf("/data/%d/water-level", station.ID), token, url.Values{
			"value": {"2.71"},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var row database.WaterLevelData
		decodeJSON(t, w, &row)
		if row.Value != 2.71 {
			t.Errorf("value = %v, want 2.71", row.Value)
		}
		if time.Since(row.MeasureAt) > time.Minute {
			t.Errorf("measure_at = %v, want approximately now", row.MeasureAt)
		}
	})

	t.Run("explicit measure_at", func(t *testing.T) {
		measureAt := "2026-08-30T12:00:00Z"
		w := postForm(handler, fmt.Sprintf("/data/%d/water-level", station.ID), token, url.Values{
			"value":      {"3.14"},
			"measure_at": {measureAt},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var row database.WaterLevelData
		decodeJSON(t, w, &row)
		want, _ := time.Parse(time.RFC3339, measureAt)
		if !row.MeasureAt.Equal(want) {
			t.Errorf("measure_at = %v, want %v", row.MeasureAt, want)
		}
	})

	t.Run("invalid measure_at", func(t *testing.T) {
		w := postForm(handler, fmt.Sprintf("/data/%d/water-level", station.ID), token, url.Values{
			"value":      {"1.0"},
			"measure_at": {"yesterday"},
		})
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})

	t.Run("unknown station", func(t *testing.T) {
		w := postForm(handler, "/data/9999/water-level", token, url.Values{"value": {"1.0"}})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestListWaterLevels(t *testing.T) {
	_, dbc, handler := newTestServer(t)
	token := registerUser(t, handler, "alice", "pw")
	station := seedStation(t, dbc)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	const n = 8
	for i := 0; i < n; i++ {
		row := &database.WaterLevelData{
			StationID: station.ID,
			Value:     float64(i),
			MeasureAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := dbc.CreateWaterLevel(ctx, row); err != nil {
			t.Fatalf("seeding reading: %v", err)
		}
	}

	t.Run("limited list is newest first", func(t *testing.T) {
		w := doRequest(handler, http.MethodGet, fmt.Sprintf("/data/%d/water-level?limit=5", station.ID), token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var rows []database.WaterLevelData
		decodeJSON(t, w, &rows)
		if len(rows) != 5 {
			t.Fatalf("got %d rows, want 5", len(rows))
		}
		if rows[0].Value != float64(n-1) {
			t.Errorf("first row value = %v, want %v (newest)", rows[0].Value, n-1)
		}
		for i := 1; i < len(rows); i++ {
			if rows[i].MeasureAt.After(rows[i-1].MeasureAt) {
				t.Errorf("rows not descending at index %d", i)
			}
		}
	})

	t.Run("limit boundaries", func(t *testing.T) {
		for _, limit := range []string{"0", "1001", "-1", "many", ""} {
			path := fmt.Sprintf("/data/%d/water-level?limit=%s", station.ID, limit)
			w := doRequest(handler, http.MethodGet, path, token)
			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("limit=%q: status = %d, want 422", limit, w.Code)
			}
		}
		for _, limit := range []string{"1", "1000"} {
			path := fmt.Sprintf("/data/%d/water-level?limit=%s", station.ID, limit)
			w := doRequest(handler, http.MethodGet, path, token)
			if w.Code != http.StatusOK {
				t.Errorf("limit=%q: status = %d, want 200", limit, w.Code)
			}
		}
	})

	t.Run("empty station lists empty", func(t *testing.T) {
		w := doRequest(handler, http.MethodGet, "/data/9999/water-level?limit=10", token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var rows []database.WaterLevelData
		decodeJSON(t, w, &rows)
		if len(rows) != 0 {
			t.Errorf("got %d rows, want 0", len(rows))
		}
	})
}

func TestDeleteWaterLevel(t *testing.T) {
	_, dbc, handler := newTestServer(t)
	token := registerUser(t, handler, "alice", "pw")
	station := seedStation(t, dbc)
	ctx := context.Background()

	row := &database.WaterLevelData{StationID: station.ID, Value: 1.5, MeasureAt: time.Now().UTC()}
	if err := dbc.CreateWaterLevel(ctx, row); err != nil {
		t.Fatalf("seeding reading: %v", err)
	}

	path := fmt.Sprintf("/data/%d/water-level/%d", station.ID, row.ID)

	w := doRequest(handler, http.MethodDelete, path, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var deleted database.WaterLevelData
	decodeJSON(t, w, &deleted)
	if deleted.ID != row.ID {
		t.Errorf("deleted id = %d, want %d", deleted.ID, row.ID)
	}

	// Row is gone: deleting again is a 404
	w = doRequest(handler, http.MethodDelete, path, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}

func TestRainfallRoutes(t *testing.T) {
	_, dbc, handler := newTestServer(t)
	token := registerUser(t, handler, "alice", "pw")
	station := seedStation(t, dbc)

	w := postForm(handler, fmt.Sprintf("/data/%d/rainfall", station.ID), token, url.Values{
		"value":      {"12.5"},
		"measure_at": {"2026-08-30T06:00:00Z"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var row database.RainfallData
	decodeJSON(t, w, &row)

	w = doRequest(handler, http.MethodGet, fmt.Sprintf("/data/%d/rainfall?limit=10", station.ID), token)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d, body %s", w.Code, w.Body.String())
	}
	var rows []database.RainfallData
	decodeJSON(t, w, &rows)
	if len(rows) != 1 || rows[0].Value != 12.5 {
		t.Errorf("rows = %+v, want the created reading", rows)
	}

	w = doRequest(handler, http.MethodDelete, fmt.Sprintf("/data/%d/rainfall/%d", station.ID, row.ID), token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(handler, http.MethodGet, fmt.Sprintf("/data/%d/rainfall?limit=10", station.ID), token)
	decodeJSON(t, w, &rows)
	if len(rows) != 0 {
		t.Errorf("got %d rows after delete, want 0", len(rows))
	}
}

func TestDataRoutesRequireAuth(t *testing.T) {
	_, _, handler := newTestServer(t)

	w := doRequest(handler, http.MethodGet, "/data/1/water-level?limit=10", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
