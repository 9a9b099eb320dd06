// Package export writes simulation results to CSV and JSON for offline
// analysis. CSV carries the per-sample time series; JSON carries the full
// comparison report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/signalsfoundry/leo-link-analyzer/core"
)

// Report is the complete output of one comparison: both runs, the cost
// analysis, the debris assessment, and the synthesized decision.
type Report struct {
	Constellation string              `json:"constellation"`
	GroundOnly    *core.SimulationRun `json:"ground_only"`
	Crosslinked   *core.SimulationRun `json:"crosslinked"`
	Costs         core.CostComparison `json:"costs"`
	Debris        core.DebrisAssessment `json:"debris"`
	Decision      core.Decision       `json:"decision"`
}

// WriteJSON serialises the report with indentation.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"architecture", "step", "time_minutes", "satellite_id", "link_type",
	"peer_id", "linked", "distance_km", "snr_db", "rx_power_dbw",
	"latency_ms", "feasible", "quality",
}

// WriteSamplesCSV streams the per-sample series of one or more runs as
// one flat CSV table.
func WriteSamplesCSV(w io.Writer, runs ...*core.SimulationRun) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, run := range runs {
		if run == nil {
			continue
		}
		for _, s := range run.Samples {
			record := []string{
				string(run.Architecture),
				strconv.Itoa(s.Step),
				formatFloat(s.TimeMinutes),
				s.SatelliteID,
				string(s.LinkType),
				s.PeerID,
				strconv.FormatBool(s.Linked),
				formatFloat(s.DistanceKm),
				formatFloat(s.SNRdB),
				formatFloat(s.RxPowerDBW),
				formatFloat(s.LatencyMs),
				strconv.FormatBool(s.Feasible),
				string(s.Quality),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv record: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
