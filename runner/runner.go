package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hhkbp2/go-logging"

	"wbgt_calc/wbgt"
)

/*
Batch orchestration around the solver.

Each task is one (model, scenario, year): locate the five variable files,
read and compute, write the outdoor WBGT dataset and the productivity
report, and record the outcome. Worker goroutines drain a shared task
channel; a failed task is recorded and never aborts the batch.
*/

var logger = logging.GetLogger("wbgt_calc.runner")

// The five variables a task needs, in the upstream naming.
var input_variables = []string{"tas", "tasmax", "hurs", "sfcWind", "rsds"}

// Ensemble member directory used by the upstream archive layout.
const ensemble_member = "r1i1p1f1"

// One unit of work.
type Task struct {
	Model    string
	Scenario string
	Year     int
}

type Config struct {
	BaseDir   string  // root of the input archive: <base>/<model>/<scenario>/r1i1p1f1/<var>/
	OutputDir string  // root of the output tree, mirroring the input layout
	Status    string  // path of the JSON status checkpoint
	Workers   int     // worker goroutines; minimum 1
	Pressure  float64 // surface pressure, hPa; 0 selects the solver default
}

type Runner struct {
	cfg    Config
	status *StatusFile
}

func New(cfg Config) (*Runner, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	status, err := LoadStatus(cfg.Status)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, status: status}, nil
}

/*
Process all tasks with the configured worker pool.

    Returns:
        successful and failed task outcomes; already-checkpointed tasks
        count as successful without being recomputed
*/
func (r *Runner) Run(tasks []Task) ([]TaskStatus, []TaskStatus) {
	queue := make(chan Task)
	results := make(chan TaskStatus, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				results <- r.process(task)
			}
		}()
	}

	for _, t := range tasks {
		queue <- t
	}
	close(queue)
	wg.Wait()
	close(results)

	var successful, failed []TaskStatus
	for res := range results {
		if res.Status == "success" {
			successful = append(successful, res)
		} else {
			failed = append(failed, res)
		}
	}

	if err := r.status.Save(); err != nil {
		logger.Errorf("failed to save status checkpoint: %s", err)
	}
	logger.Infof("batch finished: %d successful, %d failed", len(successful), len(failed))
	return successful, failed
}

func (r *Runner) process(task Task) TaskStatus {
	key := StatusKey(task.Model, task.Scenario, task.Year)
	if r.status.IsDone(key) {
		logger.Debugf("%s already processed, skipping", key)
		return TaskStatus{Status: "success", Year: task.Year, Output: "already processed"}
	}

	result := r.process_year(task)
	r.status.Set(key, result)
	if result.Status == "success" {
		logger.Infof("%s done: %s", key, result.Output)
	} else {
		logger.Warnf("%s failed: %s", key, result.Error)
	}
	return result
}

// Compute and persist one model/scenario/year.
func (r *Runner) process_year(task Task) TaskStatus {
	base := filepath.Join(r.cfg.BaseDir, task.Model, task.Scenario, ensemble_member)

	datasets := make(map[string]*Dataset, len(input_variables))
	for _, v := range input_variables {
		path, err := find_variable_file(filepath.Join(base, v), v, task.Year)
		if err != nil {
			return TaskStatus{Status: "error", Year: task.Year, Error: err.Error()}
		}
		ds, err := ReadVariableCSV(path)
		if err != nil {
			return TaskStatus{Status: "error", Year: task.Year, Error: err.Error()}
		}
		datasets[v] = ds
	}

	ref := datasets["tas"]
	var pressure *wbgt.Grid
	if r.cfg.Pressure > 0 {
		pressure = wbgt.Scalar(r.cfg.Pressure)
	}

	days := make([]float64, len(ref.Days))
	for i, d := range ref.Days {
		days[i] = float64(d)
	}

	res := wbgt.ComputeOutdoor(wbgt.OutdoorInput{
		Tas:       datasets["tas"].Grid,
		Tasmax:    datasets["tasmax"].Grid,
		Hurs:      datasets["hurs"].Grid,
		SfcWind:   datasets["sfcWind"].Grid,
		Rsds:      datasets["rsds"].Grid,
		Lat:       wbgt.NewGrid([]int{len(ref.Lats)}, ref.Lats),
		Lon:       wbgt.NewGrid([]int{len(ref.Lons)}, ref.Lons),
		DayOfYear: wbgt.NewGrid([]int{len(days)}, days),
		Pressure:  pressure,
	})
	if !res.Converged {
		logger.Warnf("%s_%s_%d: iteration cap reached on part of the grid",
			task.Model, task.Scenario, task.Year)
	}

	out_dir := filepath.Join(r.cfg.OutputDir, task.Model, task.Scenario, ensemble_member)
	out_path := filepath.Join(out_dir, fmt.Sprintf("outdoor_wbgt_day_%d.csv", task.Year))
	if err := WriteOutdoorCSV(out_path, ref.Days, ref.Lats, ref.Lons, res); err != nil {
		return TaskStatus{Status: "error", Year: task.Year, Error: err.Error()}
	}

	report_path := filepath.Join(out_dir, fmt.Sprintf("productivity_loss_%d.csv", task.Year))
	if err := WriteLossReport(report_path, ref.Lats, ref.Lons, res); err != nil {
		return TaskStatus{Status: "error", Year: task.Year, Error: err.Error()}
	}

	return TaskStatus{Status: "success", Year: task.Year, Output: out_path}
}

/*
Locate the dataset file of one variable and year under dir, accepting any
model/version infix: <var>_day_*_<year>*.csv.
*/
func find_variable_file(dir, variable string, year int) (string, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("%s_day_*_%d*.csv", variable, year))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		// fall back to the bare <var>_<year>.csv layout used by small
		// hand-built archives
		direct := filepath.Join(dir, fmt.Sprintf("%s_%d.csv", variable, year))
		if _, serr := os.Stat(direct); serr == nil {
			return direct, nil
		}
		return "", fmt.Errorf("missing file for %s year %d under %s", variable, year, dir)
	}
	return matches[0], nil
}

/*
Discover model directory names under the archive root, mirroring the
layout <base>/<model>/<scenario>/r1i1p1f1.
*/
func DiscoverModels(base_dir string) ([]string, error) {
	entries, err := os.ReadDir(base_dir)
	if err != nil {
		return nil, err
	}
	var models []string
	for _, e := range entries {
		if e.IsDir() {
			models = append(models, e.Name())
		}
	}
	return models, nil
}
