package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <chat-id>",
		Short: "Delete a chat and all of its messages, aggregates, and cache entries",
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

			chat, err := st.GetChat(chatID)
			if err != nil {
				return err
			}
			if chat == nil {
				return fmt.Errorf("chat not found: %d", chatID)
			}

			if err := st.DeleteChat(chatID); err != nil {
				return fmt.Errorf("delete chat: %w", err)
			}
			fmt.Printf("Deleted chat %d (%s, %d messages).\n", chatID, chat.SourcePath, chat.MessageCount)
			return nil
		},
	}
}
