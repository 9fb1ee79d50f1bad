package calendar

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/wanphra.yaml
var defaultFallbackYAML []byte

// FallbackTable is read-only observance data keyed by year, then month.
type FallbackTable map[int]map[int][]Observance

// LoadFallbackTable decodes a YAML table and checks every date sits under its key.
func LoadFallbackTable(r io.Reader) (FallbackTable, error) {
	var t FallbackTable
	if err := yaml.NewDecoder(r).Decode(&t); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fallback table: %w", err)
	}
	for year, months := range t {
		for month, obs := range months {
			if !validMonth(year, month) {
				return nil, fmt.Errorf("fallback table: invalid key %d/%d", year, month)
			}
			for _, o := range obs {
				d, err := time.Parse(DateLayout, o.Date)
				if err != nil {
					return nil, fmt.Errorf("fallback table %d/%d: %w", year, month, err)
				}
				if d.Year() != year || int(d.Month()) != month {
					return nil, fmt.Errorf("fallback table %d/%d: date %s out of place", year, month, o.Date)
				}
			}
		}
	}
	if t == nil {
		t = FallbackTable{}
	}
	return t, nil
}

// LoadFallbackFile reads a table from path.
func LoadFallbackFile(path string) (FallbackTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFallbackTable(f)
}

// DefaultFallbackTable returns the table compiled into the binary.
func DefaultFallbackTable() FallbackTable {
	t, err := LoadFallbackTable(bytes.NewReader(defaultFallbackYAML))
	if err != nil {
		panic("calendar: embedded fallback table: " + err.Error())
	}
	return t
}

// Lookup returns a copy of the month's records, or nil.
func (t FallbackTable) Lookup(year, month int) []Observance {
	obs := t[year][month]
	if len(obs) == 0 {
		return nil
	}
	out := make([]Observance, len(obs))
	copy(out, obs)
	return out
}

// FallbackSource serves a FallbackTable. A missing month is ErrNoObservances.
type FallbackSource struct {
	Table FallbackTable
}

func (s *FallbackSource) Name() string { return "fallback" }

func (s *FallbackSource) Observances(_ context.Context, year, month int) ([]Observance, error) {
	obs := s.Table.Lookup(year, month)
	if len(obs) == 0 {
		return nil, ErrNoObservances
	}
	return obs, nil
}
