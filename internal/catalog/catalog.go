// Package catalog loads YAML ground-station and TLE catalogs. Catalogs are
// optional: the engine falls back to its built-in defaults when none is given.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/leo-link-analyzer/core"
)

// StationEntry is one ground station in stations.yaml.
type StationEntry struct {
	ID             string  `yaml:"id"`
	LatitudeDeg    float64 `yaml:"latitude_deg"`
	LongitudeDeg   float64 `yaml:"longitude_deg"`
	AltitudeKm     float64 `yaml:"altitude_km"`
	AntennaGainDBi float64 `yaml:"antenna_gain_dbi"`
	SystemTempK    float64 `yaml:"system_temp_k"`
}

// StationCatalog is the top-level structure for stations.yaml.
type StationCatalog struct {
	Stations []StationEntry `yaml:"stations"`
}

// TLEEntry is one two-line element set in a TLE catalog.
type TLEEntry struct {
	ID       string `yaml:"id"`
	Line1    string `yaml:"line1"`
	Line2    string `yaml:"line2"`
	EpochUTC string `yaml:"epoch_utc"`
}

// TLECatalog is the top-level structure for tles.yaml.
type TLECatalog struct {
	TLEs []TLEEntry `yaml:"tles"`
}

// LoadStations reads and parses stations.yaml, constructing validated
// ground stations. Entries with a zero antenna gain inherit the default.
func LoadStations(path string, defaultGainDBi float64) ([]core.GroundStation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station catalog: %w", err)
	}
	var cat StationCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse station catalog: %w", err)
	}
	if len(cat.Stations) == 0 {
		return nil, fmt.Errorf("station catalog %s has no stations", path)
	}

	stations := make([]core.GroundStation, 0, len(cat.Stations))
	for i, e := range cat.Stations {
		if e.ID == "" {
			return nil, fmt.Errorf("station catalog: entry %d has empty id", i)
		}
		gain := e.AntennaGainDBi
		if gain == 0 {
			gain = defaultGainDBi
		}
		gs, err := core.NewGroundStation(e.ID, e.LatitudeDeg, e.LongitudeDeg, e.AltitudeKm, gain, e.SystemTempK)
		if err != nil {
			return nil, fmt.Errorf("station catalog: entry %q: %w", e.ID, err)
		}
		stations = append(stations, gs)
	}
	return stations, nil
}

// LoadTLEs reads and parses a TLE catalog.
func LoadTLEs(path string) (*TLECatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tle catalog: %w", err)
	}
	var cat TLECatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse tle catalog: %w", err)
	}
	for i, e := range cat.TLEs {
		if e.ID == "" {
			return nil, fmt.Errorf("tle catalog: entry %d has empty id", i)
		}
		if e.Line1 == "" || e.Line2 == "" {
			return nil, fmt.Errorf("tle catalog: entry %q missing TLE lines", e.ID)
		}
	}
	return &cat, nil
}
