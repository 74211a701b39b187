package database

import (
	"time"
)

// UserRole enumerates the valid user roles.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// ValidRole reports whether r is one of the closed set of roles.
func ValidRole(r UserRole) bool {
	return r == RoleAdmin || r == RoleUser
}

// AlertType enumerates the sensor kinds an alert can reference.
type AlertType string

const (
	AlertTypeWaterLevel AlertType = "water_level"
	AlertTypeRainfall   AlertType = "rainfall"
)

// AlertStatus enumerates the lifecycle states of an alert.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusResolved     AlertStatus = "resolved"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
)

// User represents an API user account
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username  string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Role      UserRole  `gorm:"column:role;default:user" json:"role"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// City represents a city that stations belong to
type City struct {
	ID   uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"column:name;index" json:"name"`
	Code string `gorm:"column:code;index" json:"code"`
}

// TableName specifies the table name for City
func (City) TableName() string {
	return "cities"
}

// Station represents a fixed monitoring point reporting water-level
// and/or rainfall readings
type Station struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name                string    `gorm:"column:name;index" json:"name"`
	Code                string    `gorm:"column:code;uniqueIndex" json:"code"`
	CityID              uint      `gorm:"column:city_id;index" json:"city_id"`
	Latitude            float64   `gorm:"column:latitude" json:"latitude"`
	Longitude           float64   `gorm:"column:longitude" json:"longitude"`
	WaterLevelThreshold *float64  `gorm:"column:water_level_threshold" json:"water_level_threshold,omitempty"`
	RainfallThreshold   *float64  `gorm:"column:rainfall_threshold" json:"rainfall_threshold,omitempty"`
	IsActive            bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Station
func (Station) TableName() string {
	return "stations"
}

// WaterLevelData is a single timestamped water-level reading for a station.
// Rows are append-only.
type WaterLevelData struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StationID uint      `gorm:"column:station_id;index" json:"station_id"`
	Value     float64   `gorm:"column:value" json:"value"`
	MeasureAt time.Time `gorm:"column:measure_at" json:"measure_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for WaterLevelData
func (WaterLevelData) TableName() string {
	return "water_level_data"
}

// RainfallData is a single timestamped rainfall reading for a station.
// Rows are append-only.
type RainfallData struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StationID uint      `gorm:"column:station_id;index" json:"station_id"`
	Value     float64   `gorm:"column:value" json:"value"`
	MeasureAt time.Time `gorm:"column:measure_at" json:"measure_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for RainfallData
func (RainfallData) TableName() string {
	return "rainfall_data"
}

// Alert records a threshold crossing for a station. The schema is part of
// the data model but nothing in this service produces alert rows yet.
type Alert struct {
	ID            uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StationID     uint        `gorm:"column:station_id;index" json:"station_id"`
	AlertType     AlertType   `gorm:"column:alert_type" json:"alert_type"`
	AlertMessage  string      `gorm:"column:alert_message" json:"alert_message"`
	Status        AlertStatus `gorm:"column:status" json:"status"`
	TriggerValue  float64     `gorm:"column:trigger_value" json:"trigger_value"`
	Threshold     float64     `gorm:"column:threshold" json:"threshold"`
	TriggerDataID uint        `gorm:"column:trigger_data_id" json:"trigger_data_id"`
	TriggerAt     time.Time   `gorm:"column:trigger_at" json:"trigger_at"`
	ResolvedAt    *time.Time  `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Alert
func (Alert) TableName() string {
	return "alerts"
}
