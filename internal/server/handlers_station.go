package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
)

// GetStations returns all stations
func (h *Handlers) GetStations(w http.ResponseWriter, req *http.Request) {
	stations, err := h.controller.DB.ListStations(req.Context())
	if err != nil {
		log.Errorf("error listing stations: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, stations)
}

// GetStation returns one station joined with its city name
func (h *Handlers) GetStation(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid station id")
		return
	}

	station, err := h.controller.DB.GetStationByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
		log.Errorf("error looking up station %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	city, err := h.controller.DB.GetCityByID(req.Context(), station.CityID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "city not found")
			return
		}
		log.Errorf("error looking up city %d: %v", station.CityID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StationView{
		ID:        station.ID,
		Name:      station.Name,
		Code:      station.Code,
		City:      city.Name,
		Longitude: station.Longitude,
		Latitude:  station.Latitude,
	})
}

// CreateStation validates the referenced city and code uniqueness, then
// inserts the station and returns the composed view
func (h *Handlers) CreateStation(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed form body")
		return
	}

	name := req.PostFormValue("name")
	code := req.PostFormValue("code")
	cityName := req.PostFormValue("city")
	if name == "" || code == "" || cityName == "" {
		writeError(w, http.StatusUnprocessableEntity, "name, code and city are required")
		return
	}

	longitude, err := strconv.ParseFloat(req.PostFormValue("longitude"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid longitude")
		return
	}
	latitude, err := strconv.ParseFloat(req.PostFormValue("latitude"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid latitude")
		return
	}

	waterThreshold, err := optionalFloat(req.PostFormValue("water_level_threshold"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid water_level_threshold")
		return
	}
	rainThreshold, err := optionalFloat(req.PostFormValue("rainfall_threshold"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid rainfall_threshold")
		return
	}

	city, err := h.controller.DB.GetCityByName(req.Context(), cityName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "city not found")
			return
		}
		log.Errorf("error looking up city %s: %v", cityName, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	_, err = h.controller.DB.GetStationByCode(req.Context(), code)
	if err == nil {
		writeError(w, http.StatusConflict, "station already exists")
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		log.Errorf("error looking up station code %s: %v", code, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	station := &database.Station{
		Name:                name,
		Code:                code,
		CityID:              city.ID,
		Longitude:           longitude,
		Latitude:            latitude,
		WaterLevelThreshold: waterThreshold,
		RainfallThreshold:   rainThreshold,
		IsActive:            true,
	}
	if err := h.controller.DB.CreateStation(req.Context(), station); err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StationView{
		ID:        station.ID,
		Name:      station.Name,
		Code:      station.Code,
		City:      city.Name,
		Longitude: station.Longitude,
		Latitude:  station.Latitude,
	})
}

// optionalFloat parses an optional form value, returning nil when absent.
func optionalFloat(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
