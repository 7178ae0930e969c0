package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Program parameters
var (
	cfgPath     string
	coursesFile string
	delimiter   string
	windowStart string
	windowEnd   string
	exportFile  string
	show        int
	validate    bool
)

var rootCmd = &cobra.Command{
	Use:           "timetable",
	Short:         "Build conflict-free weekly course timetables",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&coursesFile, "courses-file", "f", "", "course table CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "CSV delimiter (overrides config)")
	rootCmd.PersistentFlags().StringVar(&windowStart, "start", "", "earliest allowed start, HH:MM")
	rootCmd.PersistentFlags().StringVar(&windowEnd, "end", "", "latest allowed end, HH:MM")
	rootCmd.PersistentFlags().StringVarP(&exportFile, "export", "o", "", "write every schedule to this CSV file")
	rootCmd.PersistentFlags().IntVarP(&show, "show", "n", 0, "number of programs to print (default page size)")
	rootCmd.PersistentFlags().BoolVar(&validate, "validate", false, "re-check the result and print the report")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// env is what every command needs after flags and config are merged.
type env struct {
	cfg     *scheduler.Configuration
	log     *zap.Logger
	planner *scheduler.Planner
	rows    []*model.CourseRow
}

func setup() (*env, error) {
	appCfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if coursesFile != "" {
		appCfg.CSV.CoursesFile = coursesFile
	}
	if delimiter != "" {
		appCfg.CSV.Delimiter = delimiter
	}
	if windowStart != "" {
		appCfg.Planner.WindowStart = windowStart
	}
	if windowEnd != "" {
		appCfg.Planner.WindowEnd = windowEnd
	}
	if exportFile != "" {
		appCfg.CSV.ExportFile = exportFile
	}
	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(appCfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	cfg, err := appCfg.Scheduler()
	if err != nil {
		return nil, err
	}

	rows, err := csvio.LoadCourseRows(cfg.CoursesFile, cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	log.Debug("course table loaded", zap.String("file", cfg.CoursesFile), zap.Int("rows", len(rows)))

	return &env{
		cfg:     cfg,
		log:     log,
		planner: scheduler.NewPlanner(cfg, log, nil),
		rows:    rows,
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func showCount(cfg *scheduler.Configuration, total int) int {
	n := show
	if n <= 0 {
		n = cfg.PageSize
	}
	return min(n, total)
}
