package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/circsim/internal/dynamo"
)

// CSVSink writes headerless "t,v" records. It satisfies dynamo.Sink.
type CSVSink struct {
	path    string
	closer  io.Closer
	w       *csv.Writer
	records int
}

// CreateCSV truncates or creates path. Failures wrap dynamo.ErrOutput.
func CreateCSV(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, dynamo.OutputError(err)
	}
	logrus.Debugf("created %s", path)

	s := NewCSVSink(f)
	s.path = path
	s.closer = f
	return s, nil
}

// NewCSVSink writes to w. Closing the sink flushes but does not close w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// Record writes one line and flushes it, so a failed write is reported by
// the call that produced it.
func (s *CSVSink) Record(t, v float32) error {
	if err := s.w.Write([]string{dynamo.FormatFloat(t), dynamo.FormatFloat(v)}); err != nil {
		return err
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	s.records++
	return nil
}

func (s *CSVSink) Records() int { return s.records }

func (s *CSVSink) Path() string { return s.path }

// Close releases the file. Records are already flushed, so only the close
// itself can fail here.
func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
		s.closer = nil
	}
	if err != nil {
		return dynamo.OutputError(err)
	}
	if s.path != "" {
		logrus.Debugf("wrote %d records to %s", s.records, s.path)
	}
	return nil
}

// WriteSeries writes every sample of series to w.
func WriteSeries(w io.Writer, series *dynamo.Series) error {
	s := NewCSVSink(w)
	for i := 0; i < series.Len(); i++ {
		if err := s.Record(series.Times[i], series.Values[i]); err != nil {
			return dynamo.OutputError(err)
		}
	}
	return s.Close()
}

// ReadSeries parses records written by CSVSink.
func ReadSeries(r io.Reader) (*dynamo.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true

	series := &dynamo.Series{}
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		t, err := strconv.ParseFloat(record[0], 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: time: %w", line, err)
		}
		v, err := strconv.ParseFloat(record[1], 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: value: %w", line, err)
		}
		series.Append(float32(t), float32(v))
	}

	return series, nil
}

// ReadSeriesFile opens path and parses it with ReadSeries.
func ReadSeriesFile(path string) (*dynamo.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeries(f)
}
