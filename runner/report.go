package runner

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"wbgt_calc/wbgt"
)

/*
Productivity-loss summary derived from one year of outdoor WBGT: the
annual mean capacity loss per grid cell, work intensity and exposure
metric (the min/max/half WBGT proxies).
*/

// One cell of the loss report.
type LossRow struct {
	Lat       float64 `csv:"lat"`
	Lon       float64 `csv:"lon"`
	Intensity string  `csv:"intensity"`
	Metric    string  `csv:"metric"`
	Loss      float64 `csv:"loss"`
}

/*
Write the annual mean loss report for one outdoor result.

    Args:
        path: destination CSV path; parent directories are created
        lats, lons: coordinate axes of the result grids
        res: outdoor result with [t, ny, nx] fields
*/
func WriteLossReport(path string, lats, lons []float64, res wbgt.OutdoorResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	metrics := []struct {
		name string
		grid *wbgt.Grid
	}{
		{"min", res.WBGTmin},
		{"max", res.WBGTmax},
		{"half", res.WBGThalf},
	}
	intensities := []wbgt.Intensity{
		wbgt.IntensityLow, wbgt.IntensityMedium, wbgt.IntensityHigh,
	}

	ny, nx := len(lats), len(lons)
	rows := make([]*LossRow, 0, len(metrics)*len(intensities)*ny*nx)
	for _, intensity := range intensities {
		for _, m := range metrics {
			loss := wbgt.AnnualMeanLoss(m.grid, intensity).Data()
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					rows = append(rows, &LossRow{
						Lat:       lats[j],
						Lon:       lons[i],
						Intensity: intensity.String(),
						Metric:    m.name,
						Loss:      loss[j*nx+i],
					})
				}
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
