// Package config handles loading, defaulting, and validation of the analyzer's
// TOML configuration file. Every section maps to a typed struct so the rest
// of the codebase gets strong typing without manual key lookups.
package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Constellation ConstellationConfig `toml:"constellation" json:"constellation"`
	Simulation    SimulationConfig    `toml:"simulation"    json:"simulation"`
	RF            RFConfig            `toml:"rf"            json:"rf"`
	Latency       LatencyConfig       `toml:"latency"       json:"latency"`
	Cost          CostConfig          `toml:"cost"          json:"cost"`
	Debris        DebrisConfig        `toml:"debris"        json:"debris"`
	Logging       LoggingConfig       `toml:"logging"       json:"logging"`
	Server        ServerConfig        `toml:"server"        json:"server"`
}

type ConstellationConfig struct {
	Name          string  `toml:"name"            json:"name"`
	Satellites    int     `toml:"satellites"      json:"satellites"`
	AltitudeKm    float64 `toml:"altitude_km"     json:"altitude_km"`
	GSGroundOnly  int     `toml:"gs_ground_only"  json:"gs_ground_only"`
	GSCrosslinked int     `toml:"gs_crosslinked"  json:"gs_crosslinked"`
}

type SimulationConfig struct {
	TimeSteps          int    `toml:"time_steps"           json:"time_steps"`
	OrbitPeriodMinutes int    `toml:"orbit_period_minutes" json:"orbit_period_minutes"`
	TieBreak           string `toml:"tie_break"            json:"tie_break"`
	Workers            int    `toml:"workers"              json:"workers"`
	MinElevationDeg    float64 `toml:"min_elevation_deg"   json:"min_elevation_deg"`
}

type RFConfig struct {
	TxPowerDBW        float64 `toml:"tx_power_dbw"        json:"tx_power_dbw"`
	TxGainDBi         float64 `toml:"tx_gain_dbi"         json:"tx_gain_dbi"`
	RxGainDBi         float64 `toml:"rx_gain_dbi"         json:"rx_gain_dbi"`
	FrequencyGHz      float64 `toml:"frequency_ghz"       json:"frequency_ghz"`
	BandwidthHz       float64 `toml:"bandwidth_hz"        json:"bandwidth_hz"`
	NoiseTempK        float64 `toml:"noise_temp_k"        json:"noise_temp_k"`
	AtmosphericLossDB float64 `toml:"atmospheric_loss_db" json:"atmospheric_loss_db"`
	SystemLossDB      float64 `toml:"system_loss_db"      json:"system_loss_db"`
	SNRThresholdDB    float64 `toml:"snr_threshold_db"    json:"snr_threshold_db"`
}

type LatencyConfig struct {
	GroundRelayProcessingMs float64 `toml:"ground_relay_processing_ms" json:"ground_relay_processing_ms"`
	CrosslinkProcessingMs   float64 `toml:"crosslink_processing_ms"    json:"crosslink_processing_ms"`
}

type CostConfig struct {
	GroundStationUSD float64 `toml:"ground_station_usd" json:"ground_station_usd"`
	SatelliteBaseUSD float64 `toml:"satellite_base_usd" json:"satellite_base_usd"`
	ISLHardwareUSD   float64 `toml:"isl_hardware_usd"   json:"isl_hardware_usd"`
	AnnualGSOpexUSD  float64 `toml:"annual_gs_opex_usd" json:"annual_gs_opex_usd"`
	MissionYears     int     `toml:"mission_years"      json:"mission_years"`
}

type DebrisConfig struct {
	DisposalLimitYears float64 `toml:"disposal_limit_years" json:"disposal_limit_years"`
	SatelliteMassKg    float64 `toml:"satellite_mass_kg"    json:"satellite_mass_kg"`
	HasActiveDeorbit   bool    `toml:"has_active_deorbit"   json:"has_active_deorbit"`
}

type LoggingConfig struct {
	Level  string `toml:"level"  json:"level"`
	Format string `toml:"format" json:"format"`
}

type ServerConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Bind    string `toml:"bind"    json:"bind"`
}

// Default returns a Config populated with sane defaults. Values here are
// used whenever the TOML file omits a field.
func Default() Config {
	return Config{
		Constellation: ConstellationConfig{
			Name:          "demo",
			Satellites:    6,
			AltitudeKm:    500,
			GSGroundOnly:  5,
			GSCrosslinked: 2,
		},
		Simulation: SimulationConfig{
			TimeSteps:          100,
			OrbitPeriodMinutes: 90,
			TieBreak:           "highest_snr",
			Workers:            0,
			MinElevationDeg:    0,
		},
		RF: RFConfig{
			TxPowerDBW:        20,
			TxGainDBi:         20,
			RxGainDBi:         30,
			FrequencyGHz:      2.4,
			BandwidthHz:       1e6,
			NoiseTempK:        290,
			AtmosphericLossDB: 2,
			SystemLossDB:      3,
			SNRThresholdDB:    10,
		},
		Latency: LatencyConfig{
			GroundRelayProcessingMs: 50,
			CrosslinkProcessingMs:   5,
		},
		Cost: CostConfig{
			GroundStationUSD: 5_000_000,
			SatelliteBaseUSD: 2_000_000,
			ISLHardwareUSD:   500_000,
			AnnualGSOpexUSD:  500_000,
			MissionYears:     10,
		},
		Debris: DebrisConfig{
			DisposalLimitYears: 5,
			SatelliteMassKg:    200,
			HasActiveDeorbit:   false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Enabled: false,
			Bind:    "0.0.0.0:8080",
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result. An error is returned if the file can't be read,
// parsed, or if any constraint is violated.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Constellation.Satellites <= 0 {
		return errors.New("constellation.satellites must be > 0")
	}
	if cfg.Constellation.AltitudeKm <= 0 || cfg.Constellation.AltitudeKm > 2000 {
		return errors.New("constellation.altitude_km must be in (0, 2000]")
	}
	if cfg.Constellation.GSGroundOnly <= 0 {
		return errors.New("constellation.gs_ground_only must be > 0")
	}
	if cfg.Constellation.GSCrosslinked <= 0 {
		return errors.New("constellation.gs_crosslinked must be > 0")
	}
	if cfg.Simulation.TimeSteps <= 0 {
		return errors.New("simulation.time_steps must be > 0")
	}
	if cfg.Simulation.OrbitPeriodMinutes <= 0 {
		return errors.New("simulation.orbit_period_minutes must be > 0")
	}
	if cfg.Simulation.TieBreak != "highest_snr" && cfg.Simulation.TieBreak != "nearest" {
		return errors.New("simulation.tie_break must be \"highest_snr\" or \"nearest\"")
	}
	if cfg.Simulation.Workers < 0 {
		return errors.New("simulation.workers must be >= 0")
	}
	if cfg.Simulation.MinElevationDeg < 0 || cfg.Simulation.MinElevationDeg > 90 {
		return errors.New("simulation.min_elevation_deg must be between 0 and 90")
	}
	if cfg.RF.FrequencyGHz <= 0 {
		return errors.New("rf.frequency_ghz must be > 0")
	}
	if cfg.RF.BandwidthHz <= 0 {
		return errors.New("rf.bandwidth_hz must be > 0")
	}
	if cfg.RF.NoiseTempK <= 0 {
		return errors.New("rf.noise_temp_k must be > 0")
	}
	if cfg.Cost.MissionYears <= 0 {
		return errors.New("cost.mission_years must be > 0")
	}
	if cfg.Debris.DisposalLimitYears <= 0 {
		return errors.New("debris.disposal_limit_years must be > 0")
	}
	if cfg.Debris.SatelliteMassKg <= 0 {
		return errors.New("debris.satellite_mass_kg must be > 0")
	}
	if cfg.Server.Enabled && cfg.Server.Bind == "" {
		return errors.New("server.bind must not be empty when server.enabled")
	}
	return nil
}
