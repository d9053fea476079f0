package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "logidash",
		Short:         "logistics operations dashboard",
		Long:          `logidash serves and queries the operations records of a logistics company: inquiries, trips, drivers, driver payables, SLA records and users.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("store", "mem", "Entity store backend (mem, pg)")
	root.AddCommand(serverCommand())
	root.AddCommand(queryCommand())
	root.AddCommand(consoleCommand())
	root.AddCommand(reportCommand())
	root.AddCommand(migrateCommand())
	return root
}
