package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmelo/puckline/internal/pipeline"
	"github.com/hmelo/puckline/internal/scheduler"
	"github.com/hmelo/puckline/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run and inspect scheduled jobs",
	Long: `Starts the scheduler daemon or manages its jobs.

Registered jobs:
- morning_predictions: 10:00 AM daily (first slate, inferred roles)
- lineup_refresh: 4:30 PM daily (re-run with published lineups)

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run a specific job immediately

Example:
  go run ./cmd/puckline scheduler start
  go run ./cmd/puckline scheduler list
  go run ./cmd/puckline scheduler run morning_predictions`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Starts the scheduler and registers the daily prediction jobs.

The scheduler runs until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a specific job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler wires the scheduler with all daily jobs
func initScheduler() (*scheduler.Scheduler, *deps, error) {
	d, err := initDeps(true)
	if err != nil {
		return nil, nil, err
	}

	if err := d.repo.EnsureSchema(context.Background()); err != nil {
		d.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	gen := d.newGenerator(pipeline.DefaultOptions(), false)

	sched := scheduler.New(d.log)
	if err := sched.AddJob(jobs.NewMorningPredictionsJob(gen, d.log)); err != nil {
		d.Close()
		return nil, nil, err
	}
	if err := sched.AddJob(jobs.NewLineupRefreshJob(gen, d.log)); err != nil {
		d.Close()
		return nil, nil, err
	}

	return sched, d, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Puckline Scheduler ===")

	sched, d, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer d.Close()

	sched.Start()

	fmt.Println("\nScheduler started")
	fmt.Println("\nRegistered jobs:")
	for jobName, stats := range sched.GetJobStats() {
		fmt.Printf("  - %-22s %s\n", jobName, stats.Schedule)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, d, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer d.Close()

	fmt.Println("Registered jobs:")
	for jobName, stats := range sched.GetJobStats() {
		fmt.Printf("  - %-22s %s\n", jobName, stats.Schedule)
	}
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, d, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer d.Close()

	fmt.Printf("Running job %s...\n", jobName)
	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	// RunJob is asynchronous; wait for the result to land in history
	waitForJobResult(sched, jobName)
	return nil
}

// waitForJobResult polls job history until the triggered run completes
func waitForJobResult(sched *scheduler.Scheduler, jobName string) {
	for {
		time.Sleep(time.Second)

		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			return
		}
		results := history.GetLatestResults(1)
		if len(results) > 0 {
			r := results[0]
			if r.Success {
				fmt.Printf("Job %s completed in %s\n", jobName, r.Duration)
			} else {
				fmt.Printf("Job %s failed: %s\n", jobName, r.Error)
			}
			return
		}
	}
}
