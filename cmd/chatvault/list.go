package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chatvault/chatvault/internal/render"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported chats, most recently accessed first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			chats, err := st.ListChats()
			if err != nil {
				return err
			}
			if len(chats) == 0 {
				fmt.Fprintln(os.Stderr, "No chats imported yet. Run 'chatvault import <file>'.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Print(render.ChatTable(chats, color))
			return nil
		},
	}
}
