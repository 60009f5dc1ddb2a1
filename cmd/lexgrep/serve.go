package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lexgrep/lexgrep/pkg/serve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming NDJSON server",
	Long: `Run lexgrep as a long-lived server that accepts run/encode/decode requests
via stdin and answers via stdout using NDJSON format.

This mode is designed for embedding the core behind an editor front end.
The process answers requests until stdin closes or SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	srv := serve.NewServer(codec(), cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
