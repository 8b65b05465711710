// Package open opens a chat's original export file in the user's editor.
package open

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/chatvault/chatvault/internal/store"
)

func OpenChat(s *store.Store, chatID int64) error {
	chat, err := s.GetChat(chatID)
	if err != nil {
		return fmt.Errorf("get chat: %w", err)
	}
	if chat == nil {
		return fmt.Errorf("chat not found: %d", chatID)
	}

	if _, err := os.Stat(chat.SourcePath); err != nil {
		return fmt.Errorf("source file not found: %s", chat.SourcePath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := exec.Command(editor, chat.SourcePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
