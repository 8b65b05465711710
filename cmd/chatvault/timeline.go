package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chatvault/chatvault/internal/render"
)

func timelineCmd() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "timeline <chat-id>",
		Short: "Show message activity bucketed over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chat id: %s", args[0])
			}

			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			buckets, err := st.ActivityTimeline(chatID, granularity)
			if err != nil {
				return err
			}
			if len(buckets) == 0 {
				fmt.Fprintln(os.Stderr, "No activity found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Print(render.TimelineTable(buckets, color))
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "day", "Bucket size: hour, day, week, month")

	return cmd
}
