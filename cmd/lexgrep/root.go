package main

import (
	"github.com/lexgrep/lexgrep/pkg/share"
	"github.com/spf13/cobra"
)

var publicPrefix string

var rootCmd = &cobra.Command{
	Use:   "lexgrep",
	Short: "lexgrep - lexical multi-pattern search with shareable sessions",
	Long: `lexgrep searches source text with token-level patterns: named rules with
captures ($NAME), unifying captures (&NAME) and gaps (...), grouped into a
session that round-trips through a single URL-safe share token.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&publicPrefix, "public-prefix", share.DefaultPublicPrefix,
		"Public path prefix used when composing and stripping share URLs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(versionCmd)
}

func codec() share.Codec {
	return share.New(publicPrefix)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
