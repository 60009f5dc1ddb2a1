package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a share token into a session file",
	Long: `Decode a share token (or full share path) and print the session as YAML.

Decoding never fails: a malformed or stale token yields the built-in example
session.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg := codec().Decode(args[0])
	text, err := renderSessionFile(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
