package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var encodeOrigin string

var encodeCmd = &cobra.Command{
	Use:   "encode <session.yaml>",
	Short: "Encode a session file into a share token",
	Long: `Encode a session YAML file into a URL-safe share token.

With --origin the full shareable URL is printed instead of the bare token.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeOrigin, "origin", "", "Origin to compose a full share URL (e.g. https://example.org)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadSessionFile(args[0])
	if err != nil {
		return err
	}

	token, err := codec().Encode(cfg)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	out := cmd.OutOrStdout()
	if encodeOrigin != "" {
		fmt.Fprintf(out, "%s/%s%s\n", encodeOrigin, publicPrefix, token)
		return nil
	}
	fmt.Fprintln(out, token)
	return nil
}
