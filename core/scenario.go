package core

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// Scenario is a small summary of what was loaded from JSON.
// It's mainly useful for logging or debugging from main().
type Scenario struct {
	Constellation  Constellation
	GroundStations []GroundStation
	SatelliteIDs   []string
	StationIDs     []string
}

type scenarioJSON struct {
	Name           string              `json:"name"`
	Satellites     []satelliteJSON     `json:"satellites"`
	GroundStations []groundStationJSON `json:"ground_stations"`
}

type satelliteJSON struct {
	ID             string   `json:"id"`
	AltitudeKm     float64  `json:"altitude_km"`
	PhaseDeg       float64  `json:"phase_deg"`
	TxPowerDBW     *float64 `json:"tx_power_dbw"`     // optional; defaults from RFParams
	AntennaGainDBi *float64 `json:"antenna_gain_dbi"` // optional
	FrequencyGHz   *float64 `json:"frequency_ghz"`    // optional
	TLELine1       string   `json:"tle_line1"`        // optional; switches to SGP4 propagation
	TLELine2       string   `json:"tle_line2"`
	EpochUTC       string   `json:"epoch_utc"` // RFC 3339; required with TLE lines
}

type groundStationJSON struct {
	ID             string   `json:"id"`
	LatitudeDeg    float64  `json:"latitude_deg"`
	LongitudeDeg   float64  `json:"longitude_deg"`
	AltitudeKm     float64  `json:"altitude_km"`
	AntennaGainDBi *float64 `json:"antenna_gain_dbi"` // optional
	SystemTempK    float64  `json:"system_temp_k"`    // optional; 0 means default
}

// LoadScenario reads a JSON scenario from r and returns the
// constellation and ground segment it describes. Per-satellite RF
// fields default from defaults when omitted.
//
// It fails on JSON / structural errors and on anything the Satellite
// and GroundStation constructors reject; it does not re-validate what
// they already enforce.
func LoadScenario(r io.Reader, defaults RFParams) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}
	if len(payload.Satellites) == 0 {
		return nil, fmt.Errorf("LoadScenario: scenario has no satellites")
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = "scenario"
	}

	result := &Scenario{
		SatelliteIDs: make([]string, 0, len(payload.Satellites)),
		StationIDs:   make([]string, 0, len(payload.GroundStations)),
	}

	con := Constellation{Name: name}
	for i, js := range payload.Satellites {
		if js.ID == "" {
			return nil, fmt.Errorf("LoadScenario: satellite %d has empty id", i)
		}
		sat, err := NewSatellite(
			js.ID,
			js.AltitudeKm,
			degToRad(js.PhaseDeg),
			orDefault(js.TxPowerDBW, defaults.TxPowerDBW),
			orDefault(js.AntennaGainDBi, defaults.TxGainDBi),
			orDefault(js.FrequencyGHz, defaults.FrequencyGHz),
		)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: satellite %q: %w", js.ID, err)
		}
		if js.TLELine1 != "" || js.TLELine2 != "" {
			provider, err := sgp4FromJSON(js)
			if err != nil {
				return nil, fmt.Errorf("LoadScenario: satellite %q: %w", js.ID, err)
			}
			sat.Provider = provider
		}
		con.Satellites = append(con.Satellites, sat)
		result.SatelliteIDs = append(result.SatelliteIDs, js.ID)
		if sat.AltitudeKm > con.AltitudeKm {
			con.AltitudeKm = sat.AltitudeKm
		}
	}
	result.Constellation = con

	for i, js := range payload.GroundStations {
		if js.ID == "" {
			return nil, fmt.Errorf("LoadScenario: ground station %d has empty id", i)
		}
		gs, err := NewGroundStation(
			js.ID,
			js.LatitudeDeg,
			js.LongitudeDeg,
			js.AltitudeKm,
			orDefault(js.AntennaGainDBi, defaults.RxGainDBi),
			js.SystemTempK,
		)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: ground station %q: %w", js.ID, err)
		}
		result.GroundStations = append(result.GroundStations, gs)
		result.StationIDs = append(result.StationIDs, js.ID)
	}

	return result, nil
}

func sgp4FromJSON(js satelliteJSON) (PositionProvider, error) {
	if js.TLELine1 == "" || js.TLELine2 == "" {
		return nil, fmt.Errorf("both TLE lines required for ephemeris propagation")
	}
	epoch, err := parseEpoch(js.EpochUTC)
	if err != nil {
		return nil, err
	}
	return NewSGP4Provider(js.TLELine1, js.TLELine2, epoch), nil
}

func parseEpoch(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("epoch_utc required with TLE lines")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch_utc %q: %w", s, err)
	}
	return t, nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
