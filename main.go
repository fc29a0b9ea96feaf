// Outdoor WBGT batch calculator
package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/hhkbp2/go-logging"
	"github.com/joho/godotenv"

	"wbgt_calc/runner"
)

func main() {
	// optional .env with defaults; absence is not an error
	godotenv.Load()

	parser := argparse.NewParser("wbgt_calc",
		"Computes outdoor Wet Bulb Globe Temperature and labor productivity loss over gridded climate datasets")

	input := parser.String("i", "input", &argparse.Options{
		Default: env_or("WBGT_INPUT_DIR", "./climate_input"),
		Help:    "Root of the input archive: <input>/<model>/<scenario>/r1i1p1f1/<var>/"})

	output := parser.String("o", "output", &argparse.Options{
		Default: env_or("WBGT_OUTPUT_DIR", "./wbgt_outdoor_output"),
		Help:    "Root of the output tree"})

	status := parser.String("s", "status", &argparse.Options{
		Default: env_or("WBGT_STATUS_FILE", "wbgt_outdoor_processing_status.json"),
		Help:    "JSON checkpoint recording per-task outcomes; rerun skips successes"})

	threads := parser.Int("t", "threads", &argparse.Options{
		Default: 4,
		Help:    "Worker goroutines"})

	start_year := parser.Int("", "start_year", &argparse.Options{
		Default: 2015,
		Help:    "First year to process (inclusive)"})

	end_year := parser.Int("", "end_year", &argparse.Options{
		Default: 2100,
		Help:    "Last year to process (inclusive)"})

	scenarios := parser.StringList("", "scenario", &argparse.Options{
		Default: []string{"SSP126", "SSP245", "SSP585"},
		Help:    "Scenario directory names to process"})

	models := parser.StringList("", "model", &argparse.Options{
		Help: "Model directory names; all discovered under the input root when omitted"})

	pressure := parser.Float("", "pressure", &argparse.Options{
		Default: 0.0,
		Help:    "Surface pressure in hPa; 0 uses the model default of 1010"})

	level := parser.Selector("", "log_level", []string{"debug", "info", "warn", "error"}, &argparse.Options{
		Default: "info",
		Help:    "Log verbosity"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger := logging.GetLogger("wbgt_calc")
	switch *level {
	case "debug":
		logger.SetLevel(logging.LevelDebug)
	case "info":
		logger.SetLevel(logging.LevelInfo)
	case "warn":
		logger.SetLevel(logging.LevelWarn)
	case "error":
		logger.SetLevel(logging.LevelError)
	}

	model_names := *models
	if len(model_names) == 0 {
		discovered, err := runner.DiscoverModels(*input)
		if err != nil {
			logger.Errorf("cannot discover models under %s: %s", *input, err)
			os.Exit(1)
		}
		model_names = discovered
	}
	if len(model_names) == 0 {
		logger.Errorf("no model directories under %s", *input)
		os.Exit(1)
	}

	var tasks []runner.Task
	for _, model := range model_names {
		for _, scenario := range *scenarios {
			for year := *start_year; year <= *end_year; year++ {
				tasks = append(tasks, runner.Task{Model: model, Scenario: scenario, Year: year})
			}
		}
	}
	logger.Infof("processing %d tasks with %d workers", len(tasks), *threads)

	r, err := runner.New(runner.Config{
		BaseDir:   *input,
		OutputDir: *output,
		Status:    *status,
		Workers:   *threads,
		Pressure:  *pressure,
	})
	if err != nil {
		logger.Errorf("runner setup failed: %s", err)
		os.Exit(1)
	}

	successful, failed := r.Run(tasks)
	logger.Infof("total: %d, successful: %d, failed: %d",
		len(successful)+len(failed), len(successful), len(failed))
	for _, f := range failed {
		logger.Errorf("year %d: %s", f.Year, f.Error)
	}
	if len(failed) > 0 {
		os.Exit(1)
	}
}

func env_or(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
