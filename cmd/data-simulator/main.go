// Command data-simulator seeds the database with synthetic cities,
// stations, and time-series readings for development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
	"github.com/smarthydra/hydrasvc/internal/settings"
)

const insertBatchSize = 500

type citySeed struct {
	Name string
	Code string
	Lat  float64
	Lng  float64
}

var citySeeds = []citySeed{
	{"Beijing", "BJ", 39.9042, 116.4074},
	{"Shanghai", "SH", 31.2304, 121.4737},
	{"Guangzhou", "GZ", 23.1291, 113.2644},
	{"Shenzhen", "SZ", 22.5431, 114.0579},
	{"Hangzhou", "HZ", 30.2741, 120.1551},
	{"Nanjing", "NJ", 32.0603, 118.7969},
	{"Wuhan", "WH", 30.5928, 114.3055},
	{"Chengdu", "CD", 30.5728, 104.0668},
	{"Chongqing", "CQ", 29.5630, 106.5516},
	{"Xian", "XA", 34.3416, 108.9398},
	{"Tianjin", "TJ", 39.0851, 117.1994},
	{"Suzhou", "SU", 31.2989, 120.5853},
	{"Qingdao", "QD", 36.0671, 120.3826},
	{"Dalian", "DL", 38.9140, 121.6147},
	{"Xiamen", "XM", 24.4798, 118.0894},
	{"Changsha", "CS", 28.2282, 112.9388},
	{"Zhengzhou", "ZZ", 34.7466, 113.6254},
	{"Jinan", "JN", 36.6512, 117.1201},
	{"Fuzhou", "FZ", 26.0745, 119.2965},
	{"Hefei", "HF", 31.8206, 117.2272},
}

func main() {
	var (
		cfgFile         = flag.String("config", "", "Path to the TOML configuration file")
		days            = flag.Int("days", 10, "Number of days of history to generate")
		intervalMinutes = flag.Int("interval-minutes", 60, "Minutes between consecutive readings")
		stationsPerCity = flag.Int("stations-per-city", 2, "Stations to create per city")
	)
	flag.Parse()

	cfg, err := settings.Load(*cfgFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(cfg.Logging.Level, false); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db := database.NewClient(cfg, log.GetSugaredLogger())
	if err := db.Connect(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}

	ctx := context.Background()

	cities, err := seedCities(ctx, db)
	if err != nil {
		log.Fatalf("seeding cities failed: %v", err)
	}
	log.Infof("seeded %d cities", len(cities))

	stations, err := seedStations(ctx, db, cities, *stationsPerCity)
	if err != nil {
		log.Fatalf("seeding stations failed: %v", err)
	}
	log.Infof("seeded %d stations", len(stations))

	interval := time.Duration(*intervalMinutes) * time.Minute
	for _, station := range stations {
		waterLevels := generateWaterLevels(station.ID, *days, interval)
		if err := db.DB.WithContext(ctx).CreateInBatches(waterLevels, insertBatchSize).Error; err != nil {
			log.Fatalf("inserting water-level data for station %d failed: %v", station.ID, err)
		}

		rainfalls := generateRainfalls(station.ID, *days, interval)
		if err := db.DB.WithContext(ctx).CreateInBatches(rainfalls, insertBatchSize).Error; err != nil {
			log.Fatalf("inserting rainfall data for station %d failed: %v", station.ID, err)
		}

		log.Infof("station %s: %d water-level and %d rainfall readings", station.Code, len(waterLevels), len(rainfalls))
	}

	log.Info("data generation complete")
}

// seedCities inserts the city list, skipping cities that already exist.
func seedCities(ctx context.Context, db *database.Client) ([]database.City, error) {
	var cities []database.City
	for _, seed := range citySeeds {
		existing, err := db.GetCityByName(ctx, seed.Name)
		if err == nil {
			cities = append(cities, *existing)
			continue
		}
		city := database.City{Name: seed.Name, Code: seed.Code}
		if err := db.CreateCity(ctx, &city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// seedStations creates stations near each city's coordinates with randomized
// thresholds. Existing station codes are left untouched.
func seedStations(ctx context.Context, db *database.Client, cities []database.City, perCity int) ([]database.Station, error) {
	var stations []database.Station

	seedByName := make(map[string]citySeed, len(citySeeds))
	for _, s := range citySeeds {
		seedByName[s.Name] = s
	}

	for _, city := range cities {
		seed := seedByName[city.Name]
		for i := 1; i <= perCity; i++ {
			code := fmt.Sprintf("%s_ST%02d", seed.Code, i)
			if _, err := db.GetStationByCode(ctx, code); err == nil {
				continue
			}

			waterThreshold := 3.0 + rand.Float64()*2.0
			rainThreshold := 50.0 + rand.Float64()*50.0
			station := database.Station{
				Name:                fmt.Sprintf("%s Monitoring Station %d", city.Name, i),
				Code:                code,
				CityID:              city.ID,
				Latitude:            seed.Lat + (rand.Float64()-0.5),
				Longitude:           seed.Lng + (rand.Float64()-0.5),
				WaterLevelThreshold: &waterThreshold,
				RainfallThreshold:   &rainThreshold,
				IsActive:            true,
			}
			if err := db.CreateStation(ctx, &station); err != nil {
				return nil, err
			}
			stations = append(stations, station)
		}
	}
	return stations, nil
}

// generateWaterLevels produces a steady series with a slow sinusoidal swing
// and small random noise around a per-station base level.
func generateWaterLevels(stationID uint, days int, interval time.Duration) []database.WaterLevelData {
	var rows []database.WaterLevelData

	baseLevel := 1.5 + rand.Float64()*1.5
	now := time.Now().UTC()
	span := time.Duration(days) * 24 * time.Hour

	for offset := span; offset > 0; offset -= interval {
		measureAt := now.Add(-offset)

		timeFactor := offset.Hours() / 24.0
		wave := 0.2 * math.Sin(timeFactor*0.5)
		noise := (rand.Float64() - 0.5) * 0.2
		value := baseLevel + wave + noise

		// Clamp to a plausible gauge range
		value = math.Max(0.5, math.Min(5.0, value))

		rows = append(rows, database.WaterLevelData{
			StationID: stationID,
			Value:     math.Round(value*100) / 100,
			MeasureAt: measureAt,
		})
	}
	return rows
}

// generateRainfalls produces a mostly-dry series with occasional rain events.
func generateRainfalls(stationID uint, days int, interval time.Duration) []database.RainfallData {
	var rows []database.RainfallData

	now := time.Now().UTC()
	span := time.Duration(days) * 24 * time.Hour

	for offset := span; offset > 0; offset -= interval {
		measureAt := now.Add(-offset)

		value := 0.0
		if rand.Float64() >= 0.9 {
			value = 0.1 + rand.Float64()*49.9
		}

		rows = append(rows, database.RainfallData{
			StationID: stationID,
			Value:     math.Round(value*100) / 100,
			MeasureAt: measureAt,
		})
	}
	return rows
}
