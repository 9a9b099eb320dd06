package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCatalog(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadStations(t *testing.T) {
	path := writeCatalog(t, "stations.yaml", `
stations:
  - id: GS_SVALBARD
    latitude_deg: 78.23
    longitude_deg: 15.39
    altitude_km: 0.45
    antenna_gain_dbi: 42.0
    system_temp_k: 150.0
  - id: GS_PUNTA_ARENAS
    latitude_deg: -53.16
    longitude_deg: -70.91
`)
	stations, err := LoadStations(path, 30.0)
	if err != nil {
		t.Fatalf("LoadStations: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("len = %d, want 2", len(stations))
	}
	if stations[0].ID != "GS_SVALBARD" || stations[0].AntennaGainDBi != 42.0 {
		t.Fatalf("first station = %+v, want GS_SVALBARD with 42 dBi", stations[0])
	}
	// Zero gain falls back to the supplied default.
	if stations[1].AntennaGainDBi != 30.0 {
		t.Fatalf("default gain = %v, want 30", stations[1].AntennaGainDBi)
	}
}

func TestLoadStationsRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name:     "empty catalog",
			contents: "stations: []",
			wantErr:  "no stations",
		},
		{
			name: "missing id",
			contents: `
stations:
  - latitude_deg: 10.0
    longitude_deg: 20.0
`,
			wantErr: "empty id",
		},
		{
			name: "latitude out of range",
			contents: `
stations:
  - id: GS_BAD
    latitude_deg: 123.0
    longitude_deg: 20.0
`,
			wantErr: "GS_BAD",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCatalog(t, "stations.yaml", tc.contents)
			_, err := LoadStations(path, 30.0)
			if err == nil {
				t.Fatalf("LoadStations succeeded, want error mentioning %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadTLEs(t *testing.T) {
	path := writeCatalog(t, "tles.yaml", `
tles:
  - id: ISS
    line1: "1 25544U 98067A   24001.50000000  .00016717  00000-0  10270-3 0  9000"
    line2: "2 25544  51.6400 208.9163 0006317  69.9862 290.2000 15.49140000 00000"
    epoch_utc: "2024-01-01T12:00:00Z"
`)
	cat, err := LoadTLEs(path)
	if err != nil {
		t.Fatalf("LoadTLEs: %v", err)
	}
	if len(cat.TLEs) != 1 || cat.TLEs[0].ID != "ISS" {
		t.Fatalf("catalog = %+v, want one ISS entry", cat)
	}
}

func TestLoadTLEsRejectsMissingLines(t *testing.T) {
	path := writeCatalog(t, "tles.yaml", `
tles:
  - id: HALF
    line1: "1 25544U 98067A   24001.50000000  .00016717  00000-0  10270-3 0  9000"
`)
	_, err := LoadTLEs(path)
	if err == nil || !strings.Contains(err.Error(), "missing TLE lines") {
		t.Fatalf("error = %v, want missing TLE lines", err)
	}
}

func TestLoadStationsMissingFile(t *testing.T) {
	_, err := LoadStations(filepath.Join(t.TempDir(), "nope.yaml"), 30.0)
	if err == nil {
		t.Fatal("LoadStations of missing file succeeded, want error")
	}
}
