package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
)

var (
	person1Courses   []string
	person2Courses   []string
	person1Preferred string
	person2Preferred string
)

var jointCmd = &cobra.Command{
	Use:   "joint",
	Short: "Plan two students together, sharing sections of common courses",
	RunE:  runJoint,
}

func init() {
	jointCmd.Flags().StringSliceVar(&person1Courses, "person1", nil, "course codes of the first student")
	jointCmd.Flags().StringSliceVar(&person2Courses, "person2", nil, "course codes of the second student")
	jointCmd.Flags().StringVar(&person1Preferred, "preferred1", "", "preferred sections CSV of the first student")
	jointCmd.Flags().StringVar(&person2Preferred, "preferred2", "", "preferred sections CSV of the second student")
	rootCmd.AddCommand(jointCmd)
}

func runJoint(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	preferred1, err := csvio.LoadPreferred(person1Preferred, e.cfg.Delimiter)
	if err != nil {
		return err
	}
	preferred2, err := csvio.LoadPreferred(person2Preferred, e.cfg.Delimiter)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := e.planner.PlanJoint(ctx, scheduler.JointPlanRequest{
		Person1: scheduler.Person{Courses: person1Courses, Preferred: preferred1},
		Person2: scheduler.Person{Courses: person2Courses, Preferred: preferred2},
		Rows:    e.rows,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	for i, r := range out.Reports {
		fmt.Fprintf(w, "Person %d\n%s", i+1, r)
	}
	if len(out.Common) > 0 {
		fmt.Fprintf(w, "Common courses: %s\n", strings.Join(out.Common, ", "))
	}
	for i := 0; i < showCount(e.cfg, len(out.Schedules)); i++ {
		csvio.PrintJointSchedule(w, out.Schedules[i], i+1)
	}
	fmt.Fprintln(w)

	if validate {
		_, msg := scheduler.ValidateJoint(out.Schedules, out.Common, out.Window)
		fmt.Fprint(w, msg)
	}
	if exportFile != "" {
		if err := csvio.ExportJointSchedules(out.Schedules, e.cfg.ExportFile); err != nil {
			return err
		}
		fmt.Fprintln(w, "Exported output to: "+e.cfg.ExportFile)
	}

	fmt.Fprintf(w, "Generated: %d\n", out.Generated)
	fmt.Fprintf(w, "Within %s: %d\n", out.Window, len(out.Schedules))
	if out.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "Search stopped at the limit of %d joint schedules\n", e.cfg.JointLimit)
	}
	fmt.Fprintf(w, "Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)
	return nil
}
