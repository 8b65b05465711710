package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chatvault/chatvault/internal/render"
)

func sendersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "senders <chat-id>",
		Short: "Show per-sender statistics for a chat",
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

			aggs, err := st.SenderAggregates(chatID)
			if err != nil {
				return err
			}
			if len(aggs) == 0 {
				fmt.Fprintln(os.Stderr, "No senders found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Print(render.SenderTable(aggs, color))
			return nil
		},
	}
}
