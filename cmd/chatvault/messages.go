package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chatvault/chatvault/internal/render"
	"github.com/chatvault/chatvault/internal/store"
)

func messagesCmd() *cobra.Command {
	var sender, search, from, to, sentiment string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "messages <chat-id>",
		Short: "Show a chat's messages, filtered and paginated",
		Long: `Prints messages ordered by timestamp ascending. Filters combine with
AND. Output is a colorized transcript on a terminal and TSV
(timestamp, sender, text) when piped.`,
		Args: cobra.ExactArgs(1),
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

			filter := store.MessageFilter{
				Start:          from,
				End:            to,
				Sender:         sender,
				Search:         search,
				SentimentLabel: sentiment,
			}
			msgs, err := st.QueryMessages(chatID, filter, limit, offset)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Fprintln(os.Stderr, "No messages found.")
				return nil
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				width, _, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					width = 0
				}
				fmt.Print(render.Transcript(msgs, render.Options{Width: width, Color: true}))
				return nil
			}

			for _, m := range msgs {
				text := strings.ReplaceAll(m.Text, "\t", " ")
				fmt.Printf("%s\t%s\t%s\n", m.Timestamp, m.Sender, text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this sender")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring match on text")
	cmd.Flags().StringVar(&from, "from", "", "Lower timestamp bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Upper timestamp bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sentiment, "sentiment", "", "Only messages with this sentiment label")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")

	return cmd
}
