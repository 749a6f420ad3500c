package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doxly",
	Short: "document management tool",
	Example: `doxly create -n <name> -f <file> -p <project-id>
doxly get -d <doc-id>
doxly upload -d <doc-id> -f <file>
doxly list -p <project-id>
doxly share -d <doc-id> -w <user-id> -l view
doxly status -d <doc-id>
doxly versions -d <doc-id>
doxly delete -d <doc-id>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
