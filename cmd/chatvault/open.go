package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chatvault/chatvault/internal/open"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <chat-id>",
		Short: "Open a chat's original export file in $EDITOR",
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

			return open.OpenChat(st, chatID)
		},
	}
}
