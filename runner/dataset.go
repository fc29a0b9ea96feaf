package runner

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"

	"wbgt_calc/wbgt"
)

/*
CSV-backed grid datasets.

One file holds one variable for one year: a row per (day, lat, lon) cell.
Cells absent from the file stay NaN, which the solver treats as missing
data.
*/

// One cell of a single-variable dataset file.
type VariableRow struct {
	Day   int     `csv:"day"`
	Lat   float64 `csv:"lat"`
	Lon   float64 `csv:"lon"`
	Value float64 `csv:"value"`
}

// One cell of an outdoor WBGT output file.
type OutdoorRow struct {
	Day      int     `csv:"day"`
	Lat      float64 `csv:"lat"`
	Lon      float64 `csv:"lon"`
	WBGTmin  float64 `csv:"WBGTmin_od"`
	WBGTmax  float64 `csv:"WBGTmax_od"`
	WBGThalf float64 `csv:"WBGThalf_od"`
}

// Gridded variable reconstructed from a dataset file, with its
// coordinate axes.
type Dataset struct {
	Days []int     // day of year per time step, ascending
	Lats []float64 // latitude axis, ascending
	Lons []float64 // longitude axis, ascending
	Grid *wbgt.Grid
}

/*
Read one variable file into a [t, ny, nx] grid.

    Args:
        path: CSV file with day/lat/lon/value columns

    Returns:
        Dataset with coordinate axes recovered from the rows
*/
func ReadVariableCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*VariableRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: no data rows", path)
	}

	days, lats, lons := collect_axes(rows)
	day_idx := index_ints(days)
	lat_idx := index_floats(lats)
	lon_idx := index_floats(lons)

	nt, ny, nx := len(days), len(lats), len(lons)
	data := make([]float64, nt*ny*nx)
	for i := range data {
		data[i] = math.NaN()
	}
	for _, r := range rows {
		t := day_idx[r.Day]
		j := lat_idx[r.Lat]
		i := lon_idx[r.Lon]
		data[(t*ny+j)*nx+i] = r.Value
	}

	return &Dataset{
		Days: days,
		Lats: lats,
		Lons: lons,
		Grid: wbgt.NewGrid([]int{nt, ny, nx}, data),
	}, nil
}

/*
Write the outdoor WBGT fields of one year as a dataset file.

    Args:
        path: destination CSV path; parent directories are created
        days, lats, lons: coordinate axes shared by the result grids
        res: outdoor result with [t, ny, nx] fields
*/
func WriteOutdoorCSV(path string, days []int, lats, lons []float64, res wbgt.OutdoorResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	nt, ny, nx := len(days), len(lats), len(lons)
	wmin := res.WBGTmin.Data()
	wmax := res.WBGTmax.Data()
	whalf := res.WBGThalf.Data()

	rows := make([]*OutdoorRow, 0, nt*ny*nx)
	for t := 0; t < nt; t++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				k := (t*ny+j)*nx + i
				rows = append(rows, &OutdoorRow{
					Day:      days[t],
					Lat:      lats[j],
					Lon:      lons[i],
					WBGTmin:  wmin[k],
					WBGTmax:  wmax[k],
					WBGThalf: whalf[k],
				})
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gocsv.MarshalFile(&rows, file)
}

// Unique sorted coordinate axes over all rows.
func collect_axes(rows []*VariableRow) ([]int, []float64, []float64) {
	day_set := map[int]struct{}{}
	lat_set := map[float64]struct{}{}
	lon_set := map[float64]struct{}{}
	for _, r := range rows {
		day_set[r.Day] = struct{}{}
		lat_set[r.Lat] = struct{}{}
		lon_set[r.Lon] = struct{}{}
	}
	days := make([]int, 0, len(day_set))
	for d := range day_set {
		days = append(days, d)
	}
	sort.Ints(days)
	return days, sorted_keys(lat_set), sorted_keys(lon_set)
}

func sorted_keys(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func index_ints(vals []int) map[int]int {
	idx := make(map[int]int, len(vals))
	for i, v := range vals {
		idx[v] = i
	}
	return idx
}

func index_floats(vals []float64) map[float64]int {
	idx := make(map[float64]int, len(vals))
	for i, v := range vals {
		idx[v] = i
	}
	return idx
}
