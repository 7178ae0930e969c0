package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
)

var (
	preferredFile string
	order         string
)

var planCmd = &cobra.Command{
	Use:   "plan COURSE...",
	Short: "List every conflict-free timetable for one student",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&preferredFile, "preferred", "p", "", "CSV of Course_Code,Section rows restricting sections (overrides config)")
	planCmd.Flags().StringVar(&order, "order", "search", "ranking: search, free-days or free-blocks")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	ord, err := scheduler.ParseOrder(order)
	if err != nil {
		return err
	}
	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	if preferredFile == "" {
		preferredFile = e.cfg.PreferredFile
	}
	preferred, err := csvio.LoadPreferred(preferredFile, e.cfg.Delimiter)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := e.planner.Plan(ctx, scheduler.PlanRequest{
		Courses:   args,
		Rows:      e.rows,
		Preferred: preferred,
		Order:     ord,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	fmt.Fprint(w, out.Report)
	for i := 0; i < showCount(e.cfg, len(out.Schedules)); i++ {
		csvio.PrintSchedule(w, out.Schedules[i], i+1)
	}
	fmt.Fprintln(w)

	if validate {
		_, msg := scheduler.Validate(out.Schedules, out.Window)
		fmt.Fprint(w, msg)
	}
	if exportFile != "" {
		if err := csvio.ExportSchedules(out.Schedules, e.cfg.ExportFile); err != nil {
			return err
		}
		fmt.Fprintln(w, "Exported output to: "+e.cfg.ExportFile)
	}

	fmt.Fprintf(w, "Generated: %d\n", out.Generated)
	fmt.Fprintf(w, "Within %s: %d\n", out.Window, len(out.Schedules))
	if out.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "Search stopped at the limit of %d schedules\n", e.cfg.ScheduleLimit)
	}
	fmt.Fprintf(w, "Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)
	return nil
}
