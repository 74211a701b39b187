package database

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smarthydra/hydrasvc/internal/log"
	"github.com/smarthydra/hydrasvc/internal/settings"
)

// ErrNotFound is returned by lookup helpers when no row matches.
var ErrNotFound = errors.New("record not found")

// Client holds the connection to the telemetry database
type Client struct {
	settings *settings.Settings
	DB       *gorm.DB // Exported so it can be accessed from other packages
	logger   *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(s *settings.Settings, logger *zap.SugaredLogger) *Client {
	return &Client{
		settings: s,
		logger:   logger,
	}
}

// NewClientWithDB wraps an already-open GORM handle. Used by tests that run
// against an in-memory database.
func NewClientWithDB(db *gorm.DB, logger *zap.SugaredLogger) *Client {
	return &Client{
		DB:     db,
		logger: logger,
	}
}

// Connect connects to the database and applies the configured pool limits
func (c *Client) Connect() error {
	var err error

	cfg := &gorm.Config{
		Logger: newGormLogger(c.settings.Database.Echo),
	}

	log.Info("connecting to database...")
	c.DB, err = gorm.Open(postgres.Open(c.settings.Database.URL), cfg)
	if err != nil {
		log.Warn("warning: unable to create a database connection:", err)
		return err
	}

	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	// Pool size plus overflow bounds the total connections; recycle maps to
	// the connection's maximum lifetime.
	sqlDB.SetMaxIdleConns(c.settings.Database.PoolSize)
	sqlDB.SetMaxOpenConns(c.settings.Database.PoolSize + c.settings.Database.MaxOverflow)
	sqlDB.SetConnMaxLifetime(time.Duration(c.settings.Database.PoolRecycle) * time.Second)

	log.Info("database connection successful")

	return nil
}

// Migrate creates any missing tables. Safe to run repeatedly.
func (c *Client) Migrate() error {
	return c.DB.AutoMigrate(
		&User{},
		&City{},
		&Station{},
		&WaterLevelData{},
		&RainfallData{},
		&Alert{},
	)
}

// newGormLogger builds a GORM logger backed by the zap logger. With echo
// enabled, every SQL statement is logged.
func newGormLogger(echo bool) logger.Interface {
	level := logger.Warn
	if echo {
		level = logger.Info
	}

	return logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// translateError maps GORM sentinels to package-level errors.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
