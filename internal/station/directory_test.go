package station_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlewave/quake-data-etl/internal/geo"
	"github.com/mantlewave/quake-data-etl/internal/station"
)

func TestReadFileWhitespace(t *testing.T) {
	dir, err := station.ReadFile(filepath.Join("testdata", "stations.txt"), station.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, dir.Len())

	p, ok := dir.Locate("ALLY")
	require.True(t, ok)
	assert.Equal(t, geo.Point{Lat: 41.6492, Lon: -80.1448}, p)

	p, ok = dir.Locate("KSPA")
	require.True(t, ok)
	assert.Equal(t, geo.Point{Lat: 41.557, Lon: -75.7682}, p)

	_, ok = dir.Locate("NOPE")
	assert.False(t, ok)
}

func TestReadFileDelimited(t *testing.T) {
	dir, err := station.ReadFile(filepath.Join("testdata", "stations.csv"), station.ReadOptions{
		Delimiter:  ',',
		StationCol: 3,
		LatCol:     5,
		LonCol:     7,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, dir.Len())

	p, ok := dir.Locate("KSPA")
	require.True(t, ok)
	assert.Equal(t, geo.Point{Lat: 41.557, Lon: -75.7682}, p)
}

func TestReadLaterRowWins(t *testing.T) {
	in := strings.NewReader("ALLY 1.0 2.0\nALLY 41.6492 -80.1448\n")
	dir, err := station.Read(in, station.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, dir.Len())
	p, _ := dir.Locate("ALLY")
	assert.Equal(t, geo.Point{Lat: 41.6492, Lon: -80.1448}, p)
}

func TestReadMalformedRow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSub string
	}{
		{"missing column", "ALLY 41.6492\n", "line 1"},
		{"bad latitude", "ALLY north -80.1448\n", "latitude"},
		{"bad longitude", "ALLY 41.6492 west\n", "longitude"},
		{"second row", "ALLY 41.6492 -80.1448\nKSPA 41.557\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := station.Read(strings.NewReader(tt.input), station.ReadOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}

func TestReadAllCopies(t *testing.T) {
	dir, err := station.Read(strings.NewReader("ALLY 41.6492 -80.1448\n"), station.ReadOptions{})
	require.NoError(t, err)

	m := dir.All()
	m["ALLY"] = geo.Point{}

	p, _ := dir.Locate("ALLY")
	assert.Equal(t, geo.Point{Lat: 41.6492, Lon: -80.1448}, p)
}

func TestReadFileMissing(t *testing.T) {
	_, err := station.ReadFile(filepath.Join("testdata", "does-not-exist.txt"), station.ReadOptions{})
	require.Error(t, err)
}
