package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewSatelliteValidation(t *testing.T) {
	cases := []struct {
		name string
		id   string
		alt  float64
		freq float64
	}{
		{"empty id", "", 500, 2.4},
		{"zero altitude", "SAT_01", 0, 2.4},
		{"negative altitude", "SAT_01", -100, 2.4},
		{"above leo", "SAT_01", 2500, 2.4},
		{"zero frequency", "SAT_01", 500, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSatellite(tc.id, tc.alt, 0, 20, 20, tc.freq)
			if err == nil {
				t.Fatal("invalid satellite accepted")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
		})
	}
}

func TestSatellitePositionOrbit(t *testing.T) {
	sat, err := NewSatellite("SAT_01", 500, 0, 20, 20, 2.4)
	if err != nil {
		t.Fatalf("NewSatellite: %v", err)
	}

	r := OrbitRadiusKm(500)
	p0 := sat.PositionAt(0)
	if math.Abs(p0.X-r) > 1e-9 || math.Abs(p0.Y) > 1e-9 {
		t.Errorf("position at t=0 = %+v, want (%v, 0, 0)", p0, r)
	}

	// The orbit radius is conserved at every instant.
	for _, s := range []float64{100, 1000, 3000} {
		p := sat.PositionAt(s)
		if math.Abs(p.Norm()-r) > 1e-6 {
			t.Errorf("radius at t=%v = %v, want %v", s, p.Norm(), r)
		}
	}

	// One full period returns to the start.
	period := OrbitalPeriodSeconds(500)
	pT := sat.PositionAt(period)
	if pT.DistanceTo(p0) > 1e-3 {
		t.Errorf("position after one period = %+v, want back at %+v", pT, p0)
	}
}

func TestNewRingConstellationPhasing(t *testing.T) {
	con, err := NewRingConstellation("test", 4, 550, 20, 20, 2.4)
	if err != nil {
		t.Fatalf("NewRingConstellation: %v", err)
	}
	if con.Size() != 4 {
		t.Fatalf("size = %d, want 4", con.Size())
	}
	if con.Satellites[0].ID != "SAT_01" || con.Satellites[3].ID != "SAT_04" {
		t.Errorf("IDs = %v, %v", con.Satellites[0].ID, con.Satellites[3].ID)
	}

	// Even phasing: adjacent satellites are 90° apart.
	for i, sat := range con.Satellites {
		want := 2 * math.Pi * float64(i) / 4
		if math.Abs(sat.PhaseRad-want) > 1e-12 {
			t.Errorf("satellite %d phase = %v, want %v", i, sat.PhaseRad, want)
		}
	}

	// Adjacent separation at t=0 equals the chord for a 90° arc.
	d := con.Satellites[0].PositionAt(0).DistanceTo(con.Satellites[1].PositionAt(0))
	r := OrbitRadiusKm(550)
	wantChord := 2 * r * math.Sin(math.Pi/4)
	if math.Abs(d-wantChord) > 1e-6 {
		t.Errorf("adjacent chord = %v, want %v", d, wantChord)
	}
}

func TestNewRingConstellationRejectsZeroCount(t *testing.T) {
	if _, err := NewRingConstellation("test", 0, 550, 20, 20, 2.4); err == nil {
		t.Fatal("zero-satellite constellation accepted")
	}
}

func TestNewGroundStationValidation(t *testing.T) {
	if _, err := NewGroundStation("GS", 91, 0, 0, 30, 290); err == nil {
		t.Error("latitude 91 accepted")
	}
	if _, err := NewGroundStation("GS", 0, -181, 0, 30, 290); err == nil {
		t.Error("longitude -181 accepted")
	}
	if _, err := NewGroundStation("", 0, 0, 0, 30, 290); err == nil {
		t.Error("empty id accepted")
	}

	// Non-positive system temperature falls back to the default.
	gs, err := NewGroundStation("GS", 10, 20, 0, 30, 0)
	if err != nil {
		t.Fatalf("NewGroundStation: %v", err)
	}
	if gs.SystemTempK != DefaultNoiseTempK {
		t.Errorf("system temp = %v, want default %v", gs.SystemTempK, DefaultNoiseTempK)
	}
}

func TestGroundStationPositionPrecomputed(t *testing.T) {
	gs, err := NewGroundStation("GS", 0, 0, 0, 30, 290)
	if err != nil {
		t.Fatalf("NewGroundStation: %v", err)
	}
	want := GeodeticToECEF(0, 0, 0)
	if gs.Position() != want {
		t.Errorf("position = %+v, want %+v", gs.Position(), want)
	}
}

func TestDefaultGroundStations(t *testing.T) {
	stations := DefaultGroundStations()
	if len(stations) != 5 {
		t.Fatalf("len = %d, want 5", len(stations))
	}
	seen := map[string]bool{}
	for _, gs := range stations {
		if seen[gs.ID] {
			t.Errorf("duplicate station id %q", gs.ID)
		}
		seen[gs.ID] = true
		if gs.Position().Norm() < EarthRadiusKm-1 {
			t.Errorf("station %s inside the Earth: %+v", gs.ID, gs.Position())
		}
	}
}
