package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"mdxls/internal/server"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	var logfile string
	var verbose int

	rootCmd := &cobra.Command{
		Use:     "mdxls",
		Short:   "Language server for MDX documents with partial references",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to stderr or a file
			var path *string
			if logfile != "" {
				path = &logfile
			}
			commonlog.Configure(verbose, path)

			srv, err := server.NewServer()
			if err != nil {
				return err
			}
			return srv.RunStdio()
		},
	}
	rootCmd.Flags().StringVar(&logfile, "logfile", "", "write logs to this file instead of stderr")
	rootCmd.Flags().IntVar(&verbose, "verbose", 1, "log verbosity")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
