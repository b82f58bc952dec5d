package storage

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/circsim/internal/dynamo"
)

func TestCSVSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf)

	require.NoError(t, sink.Record(0, 5))
	require.NoError(t, sink.Record(0.01, 0.3125))
	require.NoError(t, sink.Record(0.099999994, -4.98046875))
	require.NoError(t, sink.Record(1, float32(math.Inf(1))))
	require.NoError(t, sink.Close())

	want := "0,5\n0.01,0.3125\n0.099999994,-4.9804688\n1,inf\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 4, sink.Records())
}

func TestReadSeriesRoundTrip(t *testing.T) {
	series := &dynamo.Series{}
	series.Append(0, 5.3125)
	series.Append(0.01, 4.98046875)
	series.Append(0.02, float32(math.NaN()))

	var buf bytes.Buffer
	require.NoError(t, WriteSeries(&buf, series))

	got, err := ReadSeries(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, series.Times, got.Times)
	assert.Equal(t, series.Values[:2], got.Values[:2])
	assert.True(t, math.IsNaN(float64(got.Values[2])))
}

func TestReadSeriesRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad time", "x,1\n"},
		{"bad value", "0,y\n"},
		{"wrong arity", "0,1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSeries(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestCreateCSVFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	_, err := CreateCSV(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, dynamo.ErrOutput)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateCSVWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc_charge.csv")
	sink, err := CreateCSV(path)
	require.NoError(t, err)
	assert.Equal(t, path, sink.Path())

	require.NoError(t, sink.Record(0, 0))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0,0\n", string(data))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVSinkReportsWriteFailureOnRecord(t *testing.T) {
	sink := NewCSVSink(failingWriter{})

	err := sink.Record(0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, sink.Records())
}

func TestCSVSinkDevFull(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	sink, err := CreateCSV("/dev/full")
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Record(0, 0)
	require.Error(t, err)
	assert.Zero(t, sink.Records())
}
