package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/lexgrep/lexgrep/pkg/session"
	"github.com/lexgrep/lexgrep/pkg/store"
	"github.com/lexgrep/lexgrep/pkg/types"
	"github.com/spf13/cobra"
)

var (
	runToken      string
	runFormat     string
	runOutputPath string
)

var runCmd = &cobra.Command{
	Use:   "run [session.yaml]",
	Short: "Execute a session and print its matches",
	Long: `Execute a session against its subject text and print every match.

The session comes from a YAML file argument, from a share token passed with
--token, or — with neither — the built-in example session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runToken, "token", "", "Share token (or full share path) to execute")
	runCmd.Flags().StringVar(&runFormat, "format", "human", "Output format: human, json")
	runCmd.Flags().StringVar(&runOutputPath, "output", "", "Record the run in a SQLite database at this path")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSession(args)
	if err != nil {
		return err
	}

	// non-nil so json output renders an empty run as [] rather than null
	matches := make([]types.Match, 0)
	if err := cfg.Run(func(m types.Match) { matches = append(matches, m) }); err != nil {
		return fmt.Errorf("running session: %w", err)
	}

	if runOutputPath != "" {
		if err := recordRun(cfg, matches); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch runFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	case "human":
		if len(matches) == 0 {
			fmt.Fprintln(out, "no matches")
			return nil
		}
		name := color.New(color.FgGreen, color.Bold)
		pos := color.New(color.FgCyan)
		for _, m := range matches {
			name.Fprintf(out, "%s", m.Name)
			pos.Fprintf(out, " %d:%d-%d:%d", m.Start.Line, m.Start.Column, m.End.Line, m.End.Column)
			if len(m.Captures) > 0 {
				fmt.Fprintf(out, " %s", m.CapturesJSON())
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d match(es)\n", len(matches))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", runFormat)
	}
}

// resolveSession picks the session source: file argument, --token, or the
// built-in default.
func resolveSession(args []string) (session.Config, error) {
	if len(args) == 1 && runToken != "" {
		return session.Config{}, fmt.Errorf("pass a session file or --token, not both")
	}
	if len(args) == 1 {
		return loadSessionFile(args[0])
	}
	if runToken != "" {
		return codec().Decode(runToken), nil
	}
	return session.Default(), nil
}

func recordRun(cfg session.Config, matches []types.Match) error {
	s, err := store.New(store.Config{Path: runOutputPath})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	runID, err := s.AddRun(cfg.Language.Display(), cfg.Subject)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	for _, m := range matches {
		if err := s.AddMatch(runID, m); err != nil {
			return fmt.Errorf("recording match: %w", err)
		}
	}
	return nil
}
