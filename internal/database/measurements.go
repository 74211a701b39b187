package database

import (
	"context"
)

// ListWaterLevels returns up to limit water-level readings for a station,
// newest first by measurement time.
func (c *Client) ListWaterLevels(ctx context.Context, stationID uint, limit int) ([]WaterLevelData, error) {
	var rows []WaterLevelData
	err := c.DB.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("measure_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWaterLevel inserts a water-level reading
func (c *Client) CreateWaterLevel(ctx context.Context, row *WaterLevelData) error {
	return c.DB.WithContext(ctx).Create(row).Error
}

// DeleteWaterLevel removes one water-level reading, identified by station
// and row ID, and returns the removed row.
func (c *Client) DeleteWaterLevel(ctx context.Context, stationID, id uint) (*WaterLevelData, error) {
	var row WaterLevelData
	err := c.DB.WithContext(ctx).
		Where("station_id = ? AND id = ?", stationID, id).
		First(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	if err := c.DB.WithContext(ctx).Delete(&WaterLevelData{}, row.ID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListRainfalls returns up to limit rainfall readings for a station, newest
// first by measurement time.
func (c *Client) ListRainfalls(ctx context.Context, stationID uint, limit int) ([]RainfallData, error) {
	var rows []RainfallData
	err := c.DB.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("measure_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateRainfall inserts a rainfall reading
func (c *Client) CreateRainfall(ctx context.Context, row *RainfallData) error {
	return c.DB.WithContext(ctx).Create(row).Error
}

// DeleteRainfall removes one rainfall reading, identified by station and
// row ID, and returns the removed row.
func (c *Client) DeleteRainfall(ctx context.Context, stationID, id uint) (*RainfallData, error) {
	var row RainfallData
	err := c.DB.WithContext(ctx).
		Where("station_id = ? AND id = ?", stationID, id).
		First(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	if err := c.DB.WithContext(ctx).Delete(&RainfallData{}, row.ID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
