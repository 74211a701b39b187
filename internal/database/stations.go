package database

import (
	"context"
)

// ListCities returns all cities
func (c *Client) ListCities(ctx context.Context) ([]City, error) {
	var cities []City
	if err := c.DB.WithContext(ctx).Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// GetCityByID looks up a city by primary key
func (c *Client) GetCityByID(ctx context.Context, id uint) (*City, error) {
	var city City
	if err := c.DB.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &city, nil
}

// GetCityByName looks up a city by its name
func (c *Client) GetCityByName(ctx context.Context, name string) (*City, error) {
	var city City
	if err := c.DB.WithContext(ctx).Where("name = ?", name).First(&city).Error; err != nil {
		return nil, translateError(err)
	}
	return &city, nil
}

// CreateCity inserts a new city row
func (c *Client) CreateCity(ctx context.Context, city *City) error {
	return c.DB.WithContext(ctx).Create(city).Error
}

// ListStations returns all stations
func (c *Client) ListStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := c.DB.WithContext(ctx).Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

// GetStationByID looks up a station by primary key
func (c *Client) GetStationByID(ctx context.Context, id uint) (*Station, error) {
	var station Station
	if err := c.DB.WithContext(ctx).First(&station, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &station, nil
}

// GetStationByCode looks up a station by its code
func (c *Client) GetStationByCode(ctx context.Context, code string) (*Station, error) {
	var station Station
	if err := c.DB.WithContext(ctx).Where("code = ?", code).First(&station).Error; err != nil {
		return nil, translateError(err)
	}
	return &station, nil
}

// CreateStation inserts a new station row
func (c *Client) CreateStation(ctx context.Context, station *Station) error {
	if err := c.DB.WithContext(ctx).Create(station).Error; err != nil {
		c.logger.Errorf("failed to create station %s: %v", station.Code, err)
		return err
	}
	return nil
}
