package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orderingest",
		Short: "Parse agency insertion-order PDFs into normalized broadcast schedules",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDetectCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newCustomerCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
