package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
)

const (
	minListLimit = 1
	maxListLimit = 1000
)

// parseListLimit validates the limit query parameter against [1,1000].
func parseListLimit(req *http.Request) (int, error) {
	v := req.URL.Query().Get("limit")
	if v == "" {
		return 0, errors.New("limit query parameter is required")
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < minListLimit || limit > maxListLimit {
		return 0, errors.New("limit must be an integer between 1 and 1000")
	}
	return limit, nil
}

// parseMeasureAt parses an optional measure_at form value, defaulting to
// the current time when absent.
func parseMeasureAt(v string) (time.Time, error) {
	if v == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, v)
}

// stationFromPath resolves the station_id path variable to a station row.
func (h *Handlers) stationFromPath(w http.ResponseWriter, req *http.Request) *database.Station {
	stationID, err := pathID(req, "station_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid station id")
		return nil
	}

	station, err := h.controller.DB.GetStationByID(req.Context(), stationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return nil
		}
		log.Errorf("error looking up station %d: %v", stationID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil
	}
	return station
}

// GetWaterLevels lists water-level readings for a station, newest first
func (h *Handlers) GetWaterLevels(w http.ResponseWriter, req *http.Request) {
	stationID, err := pathID(req, "station_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid station id")
		return
	}

	limit, err := parseListLimit(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rows, err := h.controller.DB.ListWaterLevels(req.Context(), stationID, limit)
	if err != nil {
		log.Errorf("error listing water-level data for station %d: %v", stationID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// CreateWaterLevel records a water-level reading for a station
func (h *Handlers) CreateWaterLevel(w http.ResponseWriter, req *http.Request) {
	station := h.stationFromPath(w, req)
	if station == nil {
		return
	}

	if err := req.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed form body")
		return
	}

	value, err := strconv.ParseFloat(req.PostFormValue("value"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid value")
		return
	}

	measureAt, err := parseMeasureAt(req.PostFormValue("measure_at"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "measure_at must be RFC3339 formatted")
		return
	}

	row := &database.WaterLevelData{
		StationID: station.ID,
		Value:     value,
		MeasureAt: measureAt,
	}
	if err := h.controller.DB.CreateWaterLevel(req.Context(), row); err != nil {
		log.Errorf("error creating water-level data for station %d: %v", station.ID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, row)
}

// DeleteWaterLevel removes one water-level reading and returns it
func (h *Handlers) DeleteWaterLevel(w http.ResponseWriter, req *http.Request) {
	stationID, err := pathID(req, "station_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid station id")
		return
	}
	id, err := pathID(req, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid data id")
		return
	}

	row, err := h.controller.DB.DeleteWaterLevel(req.Context(), stationID, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "data not found")
			return
		}
		log.Errorf("error deleting water-level data %d for station %d: %v", id, stationID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, row)
}

// GetRainfalls lists rainfall readings for a station, newest first
func (h *Handlers) GetRainfalls(w http.ResponseWriter, req *http.Request) {
	stationID, err := pathID(req, "station_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid station id")
		return
	}

	limit, err := parseListLimit(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rows, err := h.controller.DB.ListRainfalls(req.Context(), stationID, limit)
	if err != nil {
		log.Errorf("error listing rainfall data for station %d: %v", stationID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// CreateRainfall records a rainfall reading for a station
func (h *Handlers) CreateRainfall(w http.ResponseWriter, req *http.Request) {
	station := h.stationFromPath(w, req)
	if station == nil {
		return
	}

	if err := req.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed form body")
		return
	}

	value, err := strconv.ParseFloat(req.PostFormValue("value"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid value")
		return
	}

	measureAt, err := parseMeasureAt(req.PostFormValue("measure_at"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "measure_at must be RFC3339 formatted")
		return
	}

	row := &database.RainfallData{
		StationID: station.ID,
		Value:     value,
		MeasureAt: measureAt,
	}
	if err := h.controller.DB.CreateRainfall(req.Context(), row); err != nil {
		log.Errorf("error creating rainfall data for station %d: %v", station.ID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, row)
}

// DeleteRainfall removes one rainfall reading and returns it
func (h *Handlers) DeleteRainfall(w http.ResponseWriter, req *http.Request) {
	stationID, err := pathID(req, "station_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid station id")
		return
	}
	id, err := pathID(req, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid data id")
		return
	}

	row, err := h.controller.DB.DeleteRainfall(req.Context(), stationID, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "data not found")
			return
		}
		log.Errorf("error deleting rainfall data %d for station %d: %v", id, stationID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, row)
}
