package trace

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tebeka/atexit"
)

// CSVTraceWriter stores frame records in a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File
	csv  *csv.Writer

	records    []Record
	bufferSize int
}

// NewCSVTraceWriter creates a writer for path, without the .csv extension.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the file being written, including the extension.
func (t *CSVTraceWriter) Path() string { return t.path + ".csv" }

// Init creates the trace file. An existing file is never overwritten.
func (t *CSVTraceWriter) Init() error {
	if t.path == "" {
		t.path = defaultPath()
	}

	file, err := os.OpenFile(t.Path(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	t.file = file
	t.csv = csv.NewWriter(file)

	err = t.csv.Write([]string{
		"run_id", "frame", "population", "randomized", "complemented",
		"stalled", "cause", "stall_count", "ignore_frames", "reseeded", "grid",
	})
	if err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			log.Printf("closing trace %s: %v", t.Path(), err)
		}
	})
	return nil
}

// Write buffers a record and flushes once the buffer is full.
func (t *CSVTraceWriter) Write(r Record) {
	t.records = append(t.records, r)
	if len(t.records) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered records to the file.
func (t *CSVTraceWriter) Flush() {
	if t.csv == nil {
		return
	}
	for _, r := range t.records {
		err := t.csv.Write([]string{
			r.RunID,
			strconv.FormatUint(r.Frame, 10),
			strconv.Itoa(r.Population),
			strconv.FormatBool(r.Randomized),
			strconv.FormatBool(r.Complemented),
			strconv.FormatBool(r.Stalled),
			r.Cause,
			strconv.FormatUint(uint64(r.StallCount), 10),
			strconv.FormatUint(uint64(r.IgnoreFrames), 10),
			strconv.FormatBool(r.Reseeded),
			r.Grid,
		})
		if err != nil {
			log.Panicf("writing trace %s: %v", t.Path(), err)
		}
	}
	t.records = nil

	t.csv.Flush()
	if err := t.csv.Error(); err != nil {
		log.Panicf("flushing trace %s: %v", t.Path(), err)
	}
}

// Close flushes and closes the file. Closing twice is a no-op.
func (t *CSVTraceWriter) Close() error {
	if t.file == nil {
		return nil
	}
	t.Flush()
	err := t.file.Close()
	t.file = nil
	t.csv = nil
	return err
}
