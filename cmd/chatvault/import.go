package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatvault/chatvault/internal/config"
	"github.com/chatvault/chatvault/internal/fingerprint"
	"github.com/chatvault/chatvault/internal/parse"
	"github.com/chatvault/chatvault/internal/scan"
	"github.com/chatvault/chatvault/internal/store"
)

func importCmd() *cobra.Command {
	var force, strict bool

	cmd := &cobra.Command{
		Use:   "import <file-or-dir>",
		Short: "Parse a chat export (or a directory of exports) into the store",
		Long: `Parses one exported chat transcript, or every .txt file under a
directory, and loads the result into the store. Re-importing unchanged
content is a no-op: imports are deduplicated by a fingerprint of the
source bytes. Use --force to re-parse and replace an existing dataset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}

			if !info.IsDir() {
				return importFile(cfg, st, args[0], force, strict)
			}

			files, err := scan.ScanDir(args[0])
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}
			if len(files) == 0 {
				fmt.Fprintln(os.Stderr, "No .txt exports found.")
				return nil
			}
			failures := 0
			for _, f := range files {
				if err := importFile(cfg, st, f.Path, force, strict); err != nil {
					failures++
					fmt.Fprintf(os.Stderr, "  WARN: import %s: %v\n", f.Path, err)
				}
			}
			fmt.Fprintf(os.Stderr, "Done. %d imported, %d failed.\n", len(files)-failures, failures)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-parse and replace an already-imported dataset")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of warn when validation fails")

	return cmd
}

func importFile(cfg *config.Config, st *store.Store, path string, force, strict bool) error {
	parser := parse.Parser{MaxTextLen: cfg.MaxTextLen}
	msgs, stats, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	if ok, reason := parse.Validate(stats, len(msgs)); !ok {
		if strict {
			return fmt.Errorf("validation failed: %s", reason)
		}
		fmt.Fprintf(os.Stderr, "  WARN: %s: validation failed: %s (importing anyway)\n", path, reason)
	}

	fp := fingerprint.File(path)
	id, err := st.Load(path, fp, msgs, force)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	fmt.Printf("%s: chat %d, %d messages, %d senders, %d failed lines\n",
		path, id, stats.ParsedMessages, stats.UniqueSenders, stats.FailedLines)
	return nil
}
