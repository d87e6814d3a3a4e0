package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var errNoNotifier = errors.New("telegram is not configured (set TODO_TELEGRAM_TOKEN and TODO_TELEGRAM_CHAT_ID)")

var digestSend bool

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print today's digest, or send it to Telegram",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		if DigestSvc == nil {
			return fmt.Errorf("digest service not initialized")
		}
		if digestSend && Notifier == nil {
			return errNoNotifier
		}
		return deliverDigest(cmdContext(cmd), cmd.OutOrStdout(), digestSend)
	},
}

func deliverDigest(ctx context.Context, out io.Writer, send bool) error {
	d := DigestSvc.Build(ctx, now())
	if !send {
		fmt.Fprintln(out, d.Text())
		return nil
	}
	if err := Notifier.Send(ctx, d.HTML()); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	fmt.Fprintf(out, "Digest sent (%d open tasks)\n", len(d.Pending))
	return nil
}

func init() {
	digestCmd.Flags().BoolVar(&digestSend, "send", false, "deliver through the Telegram bot")
	rootCmd.AddCommand(digestCmd)
}
