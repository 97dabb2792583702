// Command genmock writes a synthetic unemployment dataset in the layout the
// dashboard loads: one row per State per month, month-end dates, nine columns.
// Output is deterministic for a given seed. A ".xlsx" output path produces a
// workbook instead of a CSV file.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/unemployment.csv -months 10 -seed 1 -bad-dates 3
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var firstMonth = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

var header = []string{
	"Region", " Date", " Frequency", " Estimated Unemployment Rate (%)", " Estimated Employed",
	" Estimated Labour Participation Rate (%)", "Region.1", "longitude", "latitude",
}

type stateDef struct {
	state    string
	region   string
	lon, lat float64
	// baseRate and employed seed the generated series.
	baseRate float64
	employed float64
}

var states = []stateDef{
	{state: "Andhra Pradesh", region: "South", lon: 15.9129, lat: 79.74, baseRate: 5.5, employed: 16.5e6},
	{state: "Kerala", region: "South", lon: 10.8505, lat: 76.2711, baseRate: 6.0, employed: 9.8e6},
	{state: "Tamil Nadu", region: "South", lon: 11.1271, lat: 78.6569, baseRate: 4.5, employed: 25.0e6},
	{state: "Assam", region: "Northeast", lon: 26.2006, lat: 92.9376, baseRate: 4.5, employed: 12.0e6},
	{state: "Meghalaya", region: "Northeast", lon: 25.467, lat: 91.3662, baseRate: 2.5, employed: 1.2e6},
	{state: "Bihar", region: "East", lon: 25.0961, lat: 85.3131, baseRate: 10.5, employed: 26.4e6},
	{state: "West Bengal", region: "East", lon: 22.9868, lat: 87.855, baseRate: 6.5, employed: 34.0e6},
	{state: "Delhi", region: "North", lon: 28.7041, lat: 77.1025, baseRate: 18.0, employed: 5.2e6},
	{state: "Haryana", region: "North", lon: 29.0588, lat: 76.0856, baseRate: 20.0, employed: 7.5e6},
	{state: "Punjab", region: "North", lon: 31.1471, lat: 75.3412, baseRate: 11.0, employed: 10.0e6},
	{state: "Gujarat", region: "West", lon: 22.2587, lat: 71.1924, baseRate: 5.5, employed: 23.7e6},
	{state: "Maharashtra", region: "West", lon: 19.7515, lat: 75.7139, baseRate: 5.0, employed: 41.0e6},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path (.csv or .xlsx)")
	months := flag.Int("months", 10, "number of monthly observations per state")
	seed := flag.Uint64("seed", 1, "random seed")
	badDates := flag.Int("bad-dates", 0, "number of rows whose date is replaced by an unparseable value")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *months < 1 {
		return fmt.Errorf("-months must be positive, got %d", *months)
	}

	rows := generate(*months, *seed, *badDates)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	var err error
	if strings.EqualFold(filepath.Ext(*out), ".xlsx") {
		err = writeXLSX(*out, rows)
	} else {
		err = writeCSV(*out, rows)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}

	log.Printf("wrote %d rows (%d states x %d months, %d bad dates) to %s",
		len(rows), len(states), *months, min(*badDates, len(rows)), *out)
	return nil
}

// generate builds rows grouped by State, with a rate that rises and falls
// around a spike in the fourth month.
func generate(months int, seed uint64, badDates int) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	rows := make([][]string, 0, len(states)*months)
	for _, s := range states {
		for m := range months {
			date := firstMonth.AddDate(0, m+1, -1)
			spike := 1 + 2*math.Exp(-math.Pow(float64(m-3), 2)/2)
			rate := s.baseRate*spike + rng.NormFloat64()*0.5
			rate = math.Max(0, math.Round(rate*100)/100)
			employed := s.employed * (1 - (spike-1)*0.15) * (1 + rng.NormFloat64()*0.01)
			participation := math.Round((40+rng.NormFloat64()*2)*100) / 100

			rows = append(rows, []string{
				s.state,
				" " + date.Format("02-01-2006"),
				" M",
				strconv.FormatFloat(rate, 'f', 2, 64),
				strconv.FormatInt(int64(employed), 10),
				strconv.FormatFloat(participation, 'f', 2, 64),
				s.region,
				strconv.FormatFloat(s.lon, 'f', 4, 64),
				strconv.FormatFloat(s.lat, 'f', 4, 64),
			})
		}
	}

	for _, i := range rng.Perm(len(rows))[:min(badDates, len(rows))] {
		rows[i][1] = " not recorded"
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeSheetRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}
