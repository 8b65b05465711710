package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Read and write the per-chat analysis cache",
		Long: `Analysis collaborators store opaque result payloads against a chat and
a named analysis kind. The store never expires or interprets them.`,
	}
	cmd.AddCommand(cacheGetCmd())
	cmd.AddCommand(cachePutCmd())
	return cmd
}

func cacheGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <chat-id> <kind>",
		Short: "Print a cached analysis payload",
		Args:  cobra.ExactArgs(2),
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

			payload, ok, err := st.CacheGet(chatID, args[1])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(os.Stderr, "No cached %q result for chat %d.\n", args[1], chatID)
				return nil
			}
			os.Stdout.Write(payload)
			return nil
		},
	}
}

func cachePutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <chat-id> <kind> [payload]",
		Short: "Store an analysis payload (from the argument, or stdin)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chat id: %s", args[0])
			}

			var payload []byte
			if len(args) == 3 {
				payload = []byte(args[2])
			} else {
				payload, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read payload: %w", err)
				}
			}

			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			return st.CachePut(chatID, args[1], payload)
		},
	}
}
