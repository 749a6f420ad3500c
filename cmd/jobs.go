package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/doxly/doxly/internal/jobs"
	"github.com/doxly/doxly/internal/lifecycle"
	"github.com/doxly/doxly/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(jobsCmd())
}

// jobsCmd runs the background workers in the foreground: the cron jobs plus
// the notification drain, until interrupted.
func jobsCmd() *cobra.Command {
	var overdueSchedule string
	var expirySchedule string

	command := &cobra.Command{
		Use:     "jobs",
		Short:   "run the background jobs",
		Example: "doxly jobs",
		Run: func(cmd *cobra.Command, args []string) {
			app := wire(true)
			clock := lifecycle.RealClock{}

			executor := jobs.NewTaskExecutor([]jobs.CronJob{
				jobs.NewOverdueScan(overdueSchedule, app.store, app.queue, clock),
				jobs.NewShareExpiry(expirySchedule, app.store, clock),
			})
			executor.Run()
			defer executor.Stop()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			notifications := service.NewNotificationService(app.store, app.queue)
			go func() {
				if err := notifications.Drain(ctx); err != nil && ctx.Err() == nil {
					logrus.Errorf("notification drain stopped: %v", err)
				}
			}()

			logrus.Info("jobs running, press ctrl+c to stop")

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop
		},
	}

	command.Flags().StringVar(&overdueSchedule, "overdue-schedule", "0 0 * * * *", "cron schedule of the overdue scan")
	command.Flags().StringVar(&expirySchedule, "expiry-schedule", "0 */5 * * * *", "cron schedule of the share expiry")

	return command
}
