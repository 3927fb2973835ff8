package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// RegionSeries is one row of the static per-region table: a region code,
// a display name, and one value per year column. Unlike post batches this
// table is loaded once, not polled.
type RegionSeries struct {
	Code   string
	Name   string
	Values map[int]float64
}

// RegionTable holds the parsed table plus the ordered year columns.
type RegionTable struct {
	Years   []int
	Regions []RegionSeries
}

// LoadRegionSeries parses a CSV whose header is
//
//	code,name,<year>,<year>,...
//
// Year columns must be integers; value cells must parse as floats, with
// empty cells treated as missing (no map entry). Row order is preserved.
func LoadRegionSeries(path string) (*RegionTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("regions: %w", err)
	}
	defer f.Close()
	return ParseRegionSeries(f)
}

// ParseRegionSeries reads the region table from r. See LoadRegionSeries
// for the expected shape.
func ParseRegionSeries(r io.Reader) (*RegionTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("regions: header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("regions: header needs code, name, and at least one year column")
	}

	table := &RegionTable{}
	for _, col := range header[2:] {
		year, err := strconv.Atoi(col)
		if err != nil {
			return nil, fmt.Errorf("regions: year column %q: %w", col, err)
		}
		table.Years = append(table.Years, year)
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("regions: line %d: %w", line, err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("regions: line %d: expected %d fields, got %d", line, len(header), len(row))
		}

		reg := RegionSeries{
			Code:   row[0],
			Name:   row[1],
			Values: make(map[int]float64, len(table.Years)),
		}
		for i, cell := range row[2:] {
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("regions: line %d, year %d: %w", line, table.Years[i], err)
			}
			reg.Values[table.Years[i]] = v
		}
		table.Regions = append(table.Regions, reg)
	}

	return table, nil
}
