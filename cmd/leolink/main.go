// Leolink compares two LEO constellation architectures, ground-relay-only
// and optical-crosslinked, over one simulated orbit, then layers cost,
// debris, and sustainability analysis on top and prints a recommendation.
//
// It loads configuration from TOML, optionally replaces the built-in demo
// constellation with a JSON scenario and a YAML station catalog, and can
// expose Prometheus metrics and a live WebSocket progress feed while the
// comparison runs. Shutdown is handled gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/signalsfoundry/leo-link-analyzer/core"
	"github.com/signalsfoundry/leo-link-analyzer/internal/catalog"
	"github.com/signalsfoundry/leo-link-analyzer/internal/config"
	"github.com/signalsfoundry/leo-link-analyzer/internal/export"
	"github.com/signalsfoundry/leo-link-analyzer/internal/logging"
	"github.com/signalsfoundry/leo-link-analyzer/internal/observability"
	"github.com/signalsfoundry/leo-link-analyzer/internal/stream"
)

func main() {
	var (
		configPath   = pflag.StringP("config", "c", "", "Path to config TOML (built-in defaults when empty)")
		scenarioPath = pflag.String("scenario", "", "Path to a JSON scenario replacing the ring constellation")
		stationsPath = pflag.String("stations", "", "Path to a YAML ground-station catalog")
		csvPath      = pflag.String("csv", "", "Write per-sample link series to this CSV file")
		jsonPath     = pflag.String("json", "", "Write the full comparison report to this JSON file")
		serve        = pflag.Bool("serve", false, "Keep serving /metrics and /ws after the comparison")
	)
	pflag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, log = logging.WithRunLogger(ctx, log)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	if err := run(ctx, cfg, log, runOptions{
		scenarioPath: *scenarioPath,
		stationsPath: *stationsPath,
		csvPath:      *csvPath,
		jsonPath:     *jsonPath,
		serve:        *serve || cfg.Server.Enabled,
	}); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info(ctx, "interrupted")
			return
		}
		log.Error(ctx, "analysis failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

type runOptions struct {
	scenarioPath string
	stationsPath string
	csvPath      string
	jsonPath     string
	serve        bool
}

func run(ctx context.Context, cfg config.Config, log logging.Logger, opts runOptions) error {
	rf := rfFromConfig(cfg.RF)

	con, stations, err := buildInputs(cfg, rf, opts)
	if err != nil {
		return err
	}

	collector, err := observability.NewEngineCollector(nil)
	if err != nil {
		return fmt.Errorf("metrics init: %w", err)
	}

	hub := stream.NewHub()
	var srv *http.Server
	if opts.serve {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		mux.Handle("/ws", hub.Handler())
		srv = &http.Server{Addr: cfg.Server.Bind, Handler: mux}
		go hub.Run(ctx)
		go func() {
			log.Info(ctx, "http server listening", logging.String("bind", cfg.Server.Bind))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "http server failed", logging.String("error", err.Error()))
			}
		}()
	}

	sim := core.NewSimulator(
		core.WithLogger(log),
		core.WithStepCallback(func(p core.StepProgress) {
			hub.PublishStep(stream.StepEvent{
				Architecture:    string(p.Architecture),
				Step:            p.Step,
				TotalSteps:      cfg.Simulation.TimeSteps,
				TimeMinutes:     p.TimeMinutes,
				CoveredSats:     p.FeasibleSatellites,
				ConstellationSz: p.Satellites,
			})
		}),
	)

	params := core.RunParams{
		TimeSteps:   cfg.Simulation.TimeSteps,
		OrbitPeriod: time.Duration(cfg.Simulation.OrbitPeriodMinutes) * time.Minute,
		RF:          rf,
		Latency: core.LatencyParams{
			GroundRelayProcessingMs: cfg.Latency.GroundRelayProcessingMs,
			CrosslinkProcessingMs:   cfg.Latency.CrosslinkProcessingMs,
		},
		TieBreak:        core.TieBreakPolicy(cfg.Simulation.TieBreak),
		IngressStations: cfg.Constellation.GSCrosslinked,
		Workers:         cfg.Simulation.Workers,
	}
	if cfg.Simulation.MinElevationDeg > 0 {
		params.Visibility = core.ElevationMaskVisibility{MinElevationDeg: cfg.Simulation.MinElevationDeg}
	}

	hub.PublishRun(stream.RunEvent{Architecture: "both", Phase: "started"})
	started := time.Now()
	runCtx, span := observability.StartRunSpan(ctx, "both", con.Size(), cfg.Simulation.TimeSteps)
	ground, crosslinked, err := sim.RunComparison(runCtx, con, stations, params)
	elapsed := time.Since(started)
	if err != nil {
		observability.EndRunSpan(span, 0, err)
		collector.ObserveRun("both", "error", elapsed)
		hub.PublishRun(stream.RunEvent{Architecture: "both", Phase: "failed", Error: err.Error()})
		return err
	}
	observability.EndRunSpan(span, crosslinked.Summary.CoveragePercent, nil)
	for _, run := range []*core.SimulationRun{ground, crosslinked} {
		collector.ObserveRun(string(run.Architecture), "ok", elapsed)
		collector.SetRunSummary(string(run.Architecture),
			run.Summary.CoveragePercent, run.Summary.FeasibleSamples, run.Summary.DowntimeMinutes)
		hub.PublishRun(stream.RunEvent{
			Architecture:    string(run.Architecture),
			Phase:           "finished",
			CoveragePercent: run.Summary.CoveragePercent,
			ElapsedMs:       float64(elapsed.Milliseconds()),
		})
	}

	costs, err := core.CompareCosts(con.Size(), cfg.Constellation.GSGroundOnly, cfg.Constellation.GSCrosslinked, core.UnitCosts{
		GroundStationUSD: cfg.Cost.GroundStationUSD,
		SatelliteBaseUSD: cfg.Cost.SatelliteBaseUSD,
		ISLHardwareUSD:   cfg.Cost.ISLHardwareUSD,
		AnnualGSOpexUSD:  cfg.Cost.AnnualGSOpexUSD,
	})
	if err != nil {
		return err
	}

	debrisParams := core.DefaultDebrisParams()
	debrisParams.MissionYears = cfg.Cost.MissionYears
	debrisParams.SatelliteDryMassKg = cfg.Debris.SatelliteMassKg
	debrisParams.SatelliteValueUSD = cfg.Cost.SatelliteBaseUSD
	debrisParams.HasActiveDeorbit = cfg.Debris.HasActiveDeorbit
	debrisParams.DisposalLimitYears = cfg.Debris.DisposalLimitYears
	debris, err := core.AssessDebris(con.AltitudeKm, con.Size(), debrisParams)
	if err != nil {
		return err
	}

	decision := core.SynthesizeDecision(ground, crosslinked, costs, debris)

	printReport(os.Stdout, con.Name, ground, crosslinked, costs, debris, decision, cfg.Cost.MissionYears)

	if opts.csvPath != "" {
		if err := writeCSV(opts.csvPath, ground, crosslinked); err != nil {
			return err
		}
		log.Info(ctx, "wrote sample series", logging.String("path", opts.csvPath))
	}
	if opts.jsonPath != "" {
		report := &export.Report{
			Constellation: con.Name,
			GroundOnly:    ground,
			Crosslinked:   crosslinked,
			Costs:         costs,
			Debris:        debris,
			Decision:      decision,
		}
		if err := writeJSON(opts.jsonPath, report); err != nil {
			return err
		}
		log.Info(ctx, "wrote report", logging.String("path", opts.jsonPath))
	}

	if opts.serve {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if srv != nil {
			_ = srv.Shutdown(shutdownCtx)
		}
	}
	return nil
}

// buildInputs assembles the constellation and ground segment from a
// scenario file, catalogs, or the configured synthetic ring.
func buildInputs(cfg config.Config, rf core.RFParams, opts runOptions) (core.Constellation, []core.GroundStation, error) {
	var (
		con      core.Constellation
		stations []core.GroundStation
	)

	if opts.scenarioPath != "" {
		f, err := os.Open(opts.scenarioPath)
		if err != nil {
			return con, nil, fmt.Errorf("open scenario: %w", err)
		}
		defer f.Close()
		scenario, err := core.LoadScenario(f, rf)
		if err != nil {
			return con, nil, err
		}
		con = scenario.Constellation
		stations = scenario.GroundStations
	} else {
		ring, err := core.NewRingConstellation(
			cfg.Constellation.Name,
			cfg.Constellation.Satellites,
			cfg.Constellation.AltitudeKm,
			cfg.RF.TxPowerDBW,
			cfg.RF.TxGainDBi,
			cfg.RF.FrequencyGHz,
		)
		if err != nil {
			return con, nil, err
		}
		con = ring
	}

	if opts.stationsPath != "" {
		loaded, err := catalog.LoadStations(opts.stationsPath, cfg.RF.RxGainDBi)
		if err != nil {
			return con, nil, err
		}
		stations = loaded
	}
	if len(stations) == 0 {
		stations = core.DefaultGroundStations()
	}
	if len(stations) > cfg.Constellation.GSGroundOnly {
		stations = stations[:cfg.Constellation.GSGroundOnly]
	}
	return con, stations, nil
}

func rfFromConfig(rf config.RFConfig) core.RFParams {
	return core.RFParams{
		TxPowerDBW:        rf.TxPowerDBW,
		TxGainDBi:         rf.TxGainDBi,
		RxGainDBi:         rf.RxGainDBi,
		FrequencyGHz:      rf.FrequencyGHz,
		AtmosphericLossDB: rf.AtmosphericLossDB,
		SystemLossDB:      rf.SystemLossDB,
		NoiseTempK:        rf.NoiseTempK,
		BandwidthHz:       rf.BandwidthHz,
		SNRThresholdDB:    rf.SNRThresholdDB,
	}
}

func writeCSV(path string, runs ...*core.SimulationRun) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	return export.WriteSamplesCSV(f, runs...)
}

func writeJSON(path string, report *export.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json: %w", err)
	}
	defer f.Close()
	return export.WriteJSON(f, report)
}

func printReport(w *os.File, name string, ground, crosslinked *core.SimulationRun, costs core.CostComparison, debris core.DebrisAssessment, decision core.Decision, missionYears int) {
	fmt.Fprintf(w, "\n=== Constellation Architecture Comparison: %s ===\n\n", name)

	fmt.Fprintf(w, "%-28s %15s %15s\n", "", "ground-only", "crosslinked")
	fmt.Fprintf(w, "%-28s %14.1f%% %14.1f%%\n", "Coverage", ground.Summary.CoveragePercent, crosslinked.Summary.CoveragePercent)
	fmt.Fprintf(w, "%-28s %14.1f%% %14.1f%%\n", "Uptime", ground.Summary.UptimePercent, crosslinked.Summary.UptimePercent)
	fmt.Fprintf(w, "%-28s %15s %15s\n", "Avg latency (ms)", ground.Summary.AvgLatencyMs, crosslinked.Summary.AvgLatencyMs)
	fmt.Fprintf(w, "%-28s %15s %15s\n", "Avg SNR (dB)", ground.Summary.AvgSNRdB, crosslinked.Summary.AvgSNRdB)
	fmt.Fprintf(w, "%-28s %15.1f %15.1f\n", "Downtime (min)", ground.Summary.DowntimeMinutes, crosslinked.Summary.DowntimeMinutes)
	fmt.Fprintf(w, "%-28s %15s %15s\n", "CapEx", usd(costs.GroundOnly.TotalCapExUSD), usd(costs.Crosslinked.TotalCapExUSD))
	fmt.Fprintf(w, "%-28s %15d %15d\n", "Ground stations", costs.GroundOnly.GroundStations, costs.Crosslinked.GroundStations)

	fmt.Fprintf(w, "\nCapEx savings with crosslinks: %s (%.1f%%)\n", usd(costs.SavingsUSD), costs.SavingsPercent)
	fmt.Fprintf(w, "Tipping point: %s satellites\n", costs.TippingPoint)
	fmt.Fprintf(w, "OpEx payback: %s years (%s saved over %d-year mission)\n",
		costs.PaybackYears, usd(core.MissionOpexSavings(costs, missionYears)), missionYears)

	fmt.Fprintf(w, "\nDebris environment at %.0f km: %s risk, collision probability %.4f over mission\n",
		debris.AltitudeKm, debris.RiskLevel, debris.CollisionProbability)
	fmt.Fprintf(w, "Natural decay %.1f years (limit %.0f, %s); sustainability %d/100 (%s)\n",
		debris.NaturalDecayYears, debris.DisposalLimitYears, complianceWord(debris.Compliant),
		debris.Sustainability.Total, debris.Sustainability.Grade)

	fmt.Fprintf(w, "\nRecommendation: %s (confidence %s, crosslink %d vs ground %d)\n",
		decision.Recommendation, decision.Confidence, decision.CrosslinkScore, decision.GroundScore)
	for _, r := range decision.Rationale {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	fmt.Fprintln(w)
}

func complianceWord(ok bool) string {
	if ok {
		return "compliant"
	}
	return "non-compliant"
}

func usd(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.1fM", -v/1e6)
	}
	return fmt.Sprintf("$%.1fM", v/1e6)
}
