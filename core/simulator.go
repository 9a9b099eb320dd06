package core

import (
	"context"
	"sync"
	"time"

	"github.com/signalsfoundry/leo-link-analyzer/internal/logging"
)

// Architecture selects which relay topology a run evaluates.
type Architecture string

const (
	ArchitectureGroundOnly  Architecture = "ground_only"
	ArchitectureCrosslinked Architecture = "crosslinked"
)

// TieBreakPolicy picks among multiple simultaneously feasible ground
// stations. The authoritative behavior is highest SNR; nearest is kept
// as a configurable alternative since both are defensible.
type TieBreakPolicy string

const (
	TieBreakHighestSNR TieBreakPolicy = "highest_snr"
	TieBreakNearest    TieBreakPolicy = "nearest"
)

// LinkType labels which kind of pair produced a sample.
type LinkType string

const (
	LinkSatGround LinkType = "satellite_to_ground"
	LinkSatSat    LinkType = "satellite_to_satellite"
)

// LinkSample is the transient result of evaluating one pair at one
// time step. Samples are consumed by aggregation immediately; the
// per-step series is retained only in the SimulationRun returned to
// the caller.
type LinkSample struct {
	Step        int         `json:"step"`
	TimeMinutes float64     `json:"time_minutes"`
	SatelliteID string      `json:"satellite_id"`
	LinkType    LinkType    `json:"link_type"`
	PeerID      string      `json:"peer_id,omitempty"`
	Linked      bool        `json:"linked"`
	DistanceKm  float64     `json:"distance_km"`
	SNRdB       float64     `json:"snr_db"`
	RxPowerDBW  float64     `json:"rx_power_dbw"`
	LatencyMs   float64     `json:"latency_ms"`
	Feasible    bool        `json:"feasible"`
	Quality     LinkQuality `json:"quality"`
}

// Summary aggregates a whole run into scalars. Averages cover feasible
// samples only and are undefined when there are none.
type Summary struct {
	CoveragePercent float64 `json:"coverage_percent"`
	UptimePercent   float64 `json:"uptime_percent"`
	AvgSNRdB        Metric  `json:"avg_snr_db"`
	AvgLatencyMs    Metric  `json:"avg_latency_ms"`
	DowntimeMinutes float64 `json:"downtime_minutes"`
	FeasibleSamples int     `json:"feasible_samples"`
	TotalSamples    int     `json:"total_samples"`
	SatelliteSteps  int     `json:"satellite_steps"`
}

// SimulationRun is one architecture's full result set. Immutable after
// Run returns; owned by the caller.
type SimulationRun struct {
	Architecture Architecture  `json:"architecture"`
	TimeSteps    int           `json:"time_steps"`
	OrbitPeriod  time.Duration `json:"orbit_period"`
	Satellites   int           `json:"satellites"`
	Samples      []LinkSample  `json:"samples"`
	Summary      Summary       `json:"summary"`
}

// RunParams configures one simulation run. RF carries the shared
// losses, noise, bandwidth, and threshold; per-terminal powers and
// gains come from the satellites and stations themselves.
type RunParams struct {
	Architecture Architecture
	TimeSteps    int
	OrbitPeriod  time.Duration
	RF           RFParams
	Latency      LatencyParams
	TieBreak     TieBreakPolicy
	// Visibility defaults to SamePlaneVisibility with a 0° mask.
	Visibility VisibilityPolicy
	// IngressStations is how many ground stations the crosslinked
	// architecture keeps for ingress/egress. Defaults to 2.
	IngressStations int
	// Workers > 1 evaluates time steps in parallel. Each worker owns
	// its step results; the merge is an ordered reduction, so the
	// output is identical whatever the completion order.
	Workers int
}

// StepProgress is reported to the optional step callback, in step
// order, after the step's samples are folded into the aggregates.
type StepProgress struct {
	Architecture       Architecture `json:"architecture"`
	Step               int          `json:"step"`
	TimeMinutes        float64      `json:"time_minutes"`
	FeasibleSatellites int          `json:"feasible_satellites"`
	Satellites         int          `json:"satellites"`
}

// Simulator drives the geometry and link-budget models across discrete
// time steps. It holds no per-run state; one Simulator may serve many
// concurrent runs.
type Simulator struct {
	log    logging.Logger
	onStep func(StepProgress)
}

// SimulatorOption customises a Simulator.
type SimulatorOption func(*Simulator)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) SimulatorOption {
	return func(s *Simulator) { s.log = l }
}

// WithStepCallback registers a per-step progress callback. It is
// invoked in step order during aggregation.
func WithStepCallback(fn func(StepProgress)) SimulatorOption {
	return func(s *Simulator) { s.onStep = fn }
}

// NewSimulator constructs a Simulator with the given options.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{log: logging.Noop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stepResult is a worker-private accumulator for one time step.
type stepResult struct {
	samples      []LinkSample
	feasibleSats int
}

// Run simulates one architecture over one orbit period. The context is
// checked between steps; cancelling stops the run without partial
// result corruption (steps are independent).
func (s *Simulator) Run(ctx context.Context, con Constellation, stations []GroundStation, p RunParams) (*SimulationRun, error) {
	if err := validateRunParams(con, stations, p); err != nil {
		return nil, err
	}
	if p.TieBreak == "" {
		p.TieBreak = TieBreakHighestSNR
	}
	if p.Visibility == nil {
		p.Visibility = SamePlaneVisibility{}
	}
	if p.IngressStations <= 0 {
		p.IngressStations = 2
	}
	if p.IngressStations > len(stations) {
		p.IngressStations = len(stations)
	}

	dtSeconds := p.OrbitPeriod.Seconds() / float64(p.TimeSteps)
	results := make([]stepResult, p.TimeSteps)

	evaluate := func(step int) {
		t := float64(step) * dtSeconds
		switch p.Architecture {
		case ArchitectureCrosslinked:
			results[step] = s.evalCrosslinkStep(step, t, con, stations, p)
		default:
			results[step] = s.evalGroundStep(step, t, con, stations, p)
		}
	}

	if p.Workers > 1 {
		if err := runSteps(ctx, p.TimeSteps, p.Workers, evaluate); err != nil {
			return nil, err
		}
	} else {
		for step := 0; step < p.TimeSteps; step++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			evaluate(step)
		}
	}

	run := s.reduce(con, p, dtSeconds, results)
	s.log.Info(ctx, "simulation run complete",
		logging.String("architecture", string(p.Architecture)),
		logging.Int("time_steps", p.TimeSteps),
		logging.Int("feasible_samples", run.Summary.FeasibleSamples),
		logging.Any("coverage_percent", run.Summary.CoveragePercent),
	)
	return run, nil
}

// RunComparison evaluates both architectures for the same inputs. The
// two runs share nothing mutable, so they execute concurrently.
func (s *Simulator) RunComparison(ctx context.Context, con Constellation, stations []GroundStation, p RunParams) (ground, crosslinked *SimulationRun, err error) {
	groundParams := p
	groundParams.Architecture = ArchitectureGroundOnly
	crossParams := p
	crossParams.Architecture = ArchitectureCrosslinked

	var wg sync.WaitGroup
	var groundErr, crossErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		ground, groundErr = s.Run(ctx, con, stations, groundParams)
	}()
	go func() {
		defer wg.Done()
		crosslinked, crossErr = s.Run(ctx, con, stations, crossParams)
	}()
	wg.Wait()

	if groundErr != nil {
		return nil, nil, groundErr
	}
	if crossErr != nil {
		return nil, nil, crossErr
	}
	return ground, crosslinked, nil
}

func validateRunParams(con Constellation, stations []GroundStation, p RunParams) error {
	if con.Size() == 0 {
		return configErrorf("constellation", "must contain at least one satellite")
	}
	if len(stations) == 0 {
		return configErrorf("ground_stations", "must contain at least one station")
	}
	if p.TimeSteps <= 0 {
		return configErrorf("run.time_steps", "must be > 0, got %d", p.TimeSteps)
	}
	if p.OrbitPeriod <= 0 {
		return configErrorf("run.orbit_period", "must be > 0, got %s", p.OrbitPeriod)
	}
	if p.Architecture == ArchitectureCrosslinked && con.Size() < 2 {
		return configErrorf("constellation", "crosslinked architecture needs at least 2 satellites")
	}
	return p.RF.Validate()
}

// runSteps fans step indices out to workers. Every worker writes only
// its own results slots, so no locks are needed; the caller merges in
// index order afterwards.
func runSteps(ctx context.Context, steps, workers int, evaluate func(int)) error {
	stepCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range stepCh {
				evaluate(i)
			}
		}()
	}

feed:
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			break feed
		case stepCh <- i:
		}
	}
	close(stepCh)
	wg.Wait()
	return ctx.Err()
}

// pairBudget assembles the per-pair RF parameters: transmit side from
// the satellite, receive gain and noise temperature from the peer.
func pairBudget(base RFParams, sat *Satellite, rxGainDBi, rxNoiseTempK float64) RFParams {
	p := base
	p.TxPowerDBW = sat.TxPowerDBW
	p.TxGainDBi = sat.AntennaGainDBi
	p.FrequencyGHz = sat.FrequencyGHz
	p.RxGainDBi = rxGainDBi
	if rxNoiseTempK > 0 {
		p.NoiseTempK = rxNoiseTempK
	}
	return p
}

// evalGroundStep evaluates every satellite against every ground
// station and keeps, per satellite, the best visible station: highest
// feasible SNR first (per tie-break policy), else the nearest visible.
func (s *Simulator) evalGroundStep(step int, t float64, con Constellation, stations []GroundStation, p RunParams) stepResult {
	res := stepResult{samples: make([]LinkSample, 0, con.Size())}
	timeMinutes := t / 60.0

	for i := range con.Satellites {
		sat := &con.Satellites[i]
		satPos := sat.PositionAt(t)

		sample, linked := s.bestGroundLink(step, timeMinutes, sat, satPos, stations, p)
		if !linked {
			sample = LinkSample{
				Step:        step,
				TimeMinutes: timeMinutes,
				SatelliteID: sat.ID,
				LinkType:    LinkSatGround,
				Quality:     LinkQualityDown,
			}
		}
		if sample.Feasible {
			res.feasibleSats++
		}
		res.samples = append(res.samples, sample)
	}
	return res
}

// bestGroundLink scans the visible stations for one satellite. Among
// feasible candidates the tie-break policy decides; with no feasible
// candidate the nearest visible station is reported (infeasible).
func (s *Simulator) bestGroundLink(step int, timeMinutes float64, sat *Satellite, satPos Vec3, stations []GroundStation, p RunParams) (LinkSample, bool) {
	var (
		best       LinkSample
		haveAny    bool
		bestKey    float64
		anyFeas    bool
		nearest    LinkSample
		nearestKey float64
	)

	for gi := range stations {
		gs := &stations[gi]
		gsPos := gs.Position()
		if !p.Visibility.SatGroundVisible(satPos, gsPos) {
			continue
		}
		dist := satPos.DistanceTo(gsPos)
		budget := EvaluateLink(pairBudget(p.RF, sat, gs.AntennaGainDBi, gs.SystemTempK), dist)
		sample := LinkSample{
			Step:        step,
			TimeMinutes: timeMinutes,
			SatelliteID: sat.ID,
			LinkType:    LinkSatGround,
			PeerID:      gs.ID,
			Linked:      true,
			DistanceKm:  dist,
			SNRdB:       budget.SNRdB,
			RxPowerDBW:  budget.ReceivedPowerDBW,
			LatencyMs:   OneWayDelayMs(PathGroundRelay, dist, p.Latency),
			Feasible:    budget.Feasible,
			Quality:     budget.Quality,
		}

		if !haveAny || dist < nearestKey {
			nearest = sample
			nearestKey = dist
		}
		haveAny = true

		if !sample.Feasible {
			continue
		}
		key := sample.SNRdB
		better := key > bestKey
		if p.TieBreak == TieBreakNearest {
			key = dist
			better = key < bestKey
		}
		if !anyFeas || better {
			best = sample
			bestKey = key
			anyFeas = true
		}
	}

	if anyFeas {
		return best, true
	}
	if haveAny {
		return nearest, true
	}
	return LinkSample{}, false
}

// evalCrosslinkStep pairs each satellite with its nearest visible
// neighbor and also evaluates the minimal ingress/egress ground set.
func (s *Simulator) evalCrosslinkStep(step int, t float64, con Constellation, stations []GroundStation, p RunParams) stepResult {
	res := stepResult{samples: make([]LinkSample, 0, con.Size()*2)}
	timeMinutes := t / 60.0

	positions := make([]Vec3, con.Size())
	for i := range con.Satellites {
		positions[i] = con.Satellites[i].PositionAt(t)
	}

	ingress := stations[:p.IngressStations]

	for i := range con.Satellites {
		sat := &con.Satellites[i]
		satFeasible := false

		// Nearest visible crosslink neighbor.
		nj := -1
		nearestDist := 0.0
		for j := range con.Satellites {
			if j == i {
				continue
			}
			if !p.Visibility.SatSatVisible(positions[i], positions[j]) {
				continue
			}
			d := positions[i].DistanceTo(positions[j])
			if nj < 0 || d < nearestDist {
				nj = j
				nearestDist = d
			}
		}
		if nj >= 0 {
			peer := &con.Satellites[nj]
			budget := EvaluateLink(pairBudget(p.RF, sat, peer.AntennaGainDBi, p.RF.NoiseTempK), nearestDist)
			sample := LinkSample{
				Step:        step,
				TimeMinutes: timeMinutes,
				SatelliteID: sat.ID,
				LinkType:    LinkSatSat,
				PeerID:      peer.ID,
				Linked:      true,
				DistanceKm:  nearestDist,
				SNRdB:       budget.SNRdB,
				RxPowerDBW:  budget.ReceivedPowerDBW,
				LatencyMs:   OneWayDelayMs(PathCrosslink, nearestDist, p.Latency),
				Feasible:    budget.Feasible,
				Quality:     budget.Quality,
			}
			satFeasible = satFeasible || sample.Feasible
			res.samples = append(res.samples, sample)
		}

		// Ingress/egress ground links.
		for gi := range ingress {
			gs := &ingress[gi]
			gsPos := gs.Position()
			if !p.Visibility.SatGroundVisible(positions[i], gsPos) {
				continue
			}
			dist := positions[i].DistanceTo(gsPos)
			budget := EvaluateLink(pairBudget(p.RF, sat, gs.AntennaGainDBi, gs.SystemTempK), dist)
			sample := LinkSample{
				Step:        step,
				TimeMinutes: timeMinutes,
				SatelliteID: sat.ID,
				LinkType:    LinkSatGround,
				PeerID:      gs.ID,
				Linked:      true,
				DistanceKm:  dist,
				SNRdB:       budget.SNRdB,
				RxPowerDBW:  budget.ReceivedPowerDBW,
				LatencyMs:   OneWayDelayMs(PathGroundRelay, dist, p.Latency),
				Feasible:    budget.Feasible,
				Quality:     budget.Quality,
			}
			satFeasible = satFeasible || sample.Feasible
			res.samples = append(res.samples, sample)
		}

		if satFeasible {
			res.feasibleSats++
		}
	}
	return res
}

// reduce folds per-step results into the run aggregates. The fold
// walks steps in index order, so the output is bit-identical for
// identical inputs regardless of evaluation order.
func (s *Simulator) reduce(con Constellation, p RunParams, dtSeconds float64, results []stepResult) *SimulationRun {
	run := &SimulationRun{
		Architecture: p.Architecture,
		TimeSteps:    p.TimeSteps,
		OrbitPeriod:  p.OrbitPeriod,
		Satellites:   con.Size(),
	}

	var (
		snrSum        float64
		latSum        float64
		feasible      int
		downtimeSteps int
		coveredPairs  int
	)

	for step, res := range results {
		satFeasible := make(map[string]bool, con.Size())
		for _, sample := range res.samples {
			run.Samples = append(run.Samples, sample)
			if sample.Feasible {
				feasible++
				snrSum += sample.SNRdB
				latSum += sample.LatencyMs
				satFeasible[sample.SatelliteID] = true
			}
		}
		coveredPairs += len(satFeasible)
		if res.feasibleSats == 0 {
			downtimeSteps++
		}
		if s.onStep != nil {
			s.onStep(StepProgress{
				Architecture:       p.Architecture,
				Step:               step,
				TimeMinutes:        float64(step) * dtSeconds / 60.0,
				FeasibleSatellites: res.feasibleSats,
				Satellites:         con.Size(),
			})
		}
	}

	satSteps := con.Size() * p.TimeSteps
	sum := Summary{
		FeasibleSamples: feasible,
		TotalSamples:    len(run.Samples),
		SatelliteSteps:  satSteps,
		DowntimeMinutes: float64(downtimeSteps) * dtSeconds / 60.0,
	}
	if satSteps > 0 {
		sum.CoveragePercent = float64(coveredPairs) / float64(satSteps) * 100.0
	}
	sum.UptimePercent = 100.0 - float64(downtimeSteps)/float64(p.TimeSteps)*100.0
	if feasible > 0 {
		sum.AvgSNRdB = DefinedMetric(snrSum / float64(feasible))
		sum.AvgLatencyMs = DefinedMetric(latSum / float64(feasible))
	} else {
		sum.AvgSNRdB = UndefinedMetric(ReasonNoFeasibleSamples)
		sum.AvgLatencyMs = UndefinedMetric(ReasonNoFeasibleSamples)
		sum.CoveragePercent = 0
	}
	run.Summary = sum
	return run
}
