package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-motion/measure/tremor"
)

// readSamplesFile reads a trajectory from path; "-" reads stdin.
func readSamplesFile(path string, stdin io.Reader) ([]tremor.Sample, error) {
	if path == "-" {
		return readSamples(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSamples(f)
}

// readSamples decodes a JSON array when the input starts with '[' and CSV
// otherwise.
func readSamples(r io.Reader) ([]tremor.Sample, error) {
	br := bufio.NewReader(r)

	for {
		b, err := br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, err
		}
		if !bytes.ContainsAny(b, " \t\r\n") {
			break
		}
		if _, err := br.ReadByte(); err != nil {
			return nil, err
		}
	}

	if b, _ := br.Peek(1); len(b) == 1 && b[0] == '[' {
		var out []tremor.Sample
		if err := json.NewDecoder(br).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode json samples: %w", err)
		}
		return out, nil
	}

	return readCSV(br)
}

func readCSV(r io.Reader) ([]tremor.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []tremor.Sample
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		vals, err := parseRecord(rec)
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}

		out = append(out, tremor.Sample{X: vals[0], Y: vals[1], TimestampMs: vals[2]})
	}
}

func parseRecord(rec []string) ([3]float64, error) {
	var vals [3]float64
	for i, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return vals, err
		}
		vals[i] = v
	}

	return vals, nil
}

func writeCSV(w io.Writer, samples []tremor.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "timestamp_ms"}); err != nil {
		return err
	}

	for _, s := range samples {
		rec := []string{
			strconv.FormatFloat(s.X, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
			strconv.FormatFloat(s.TimestampMs, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
