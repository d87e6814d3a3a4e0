package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"todo-app/internal/service"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the digest on a schedule until interrupted",
	Long: `Run in the foreground and produce the digest every day at digest.time
(default 08:00 in the configured timezone), or every --interval when set.
The digest goes to Telegram when a bot is configured and to stdout otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		if DigestSvc == nil {
			return fmt.Errorf("digest service not initialized")
		}
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()
		send := Notifier != nil

		interval := AppConfig.Digest.Interval
		if watchInterval > 0 {
			interval = watchInterval
		}

		scheduler := service.NewSchedulerService(Location, Log)
		job := func() {
			jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := deliverDigest(jobCtx, out, send); err != nil && !errors.Is(err, context.Canceled) {
				Log.WithError(err).Errorw("digest job failed")
			}
		}

		var err error
		if interval > 0 {
			_, err = scheduler.ScheduleInterval(interval, job)
		} else {
			_, err = scheduler.ScheduleDaily(digestTime(), job)
		}
		if err != nil {
			return fmt.Errorf("schedule digest: %w", err)
		}

		scheduler.Start()
		defer scheduler.Stop()
		if interval > 0 {
			Log.Infow("digest scheduled", "every", interval, "telegram", send)
		} else {
			Log.Infow("digest scheduled", "at", digestTime(), "telegram", send)
		}

		<-ctx.Done()
		Log.Infow("watch stopped")
		return nil
	},
}

func digestTime() string {
	if AppConfig.Digest.Time == "" {
		return "08:00"
	}
	return AppConfig.Digest.Time
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "repeat every interval instead of daily")
	rootCmd.AddCommand(watchCmd)
}
