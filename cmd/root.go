// Package cmd implements the mediatray command line interface.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
	"github.com/refka/mediatray/internal/config"
	"github.com/refka/mediatray/internal/logging"
	"github.com/refka/mediatray/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediatray",
	Short: "A media library that keeps itself in sync while you watch.",
	Long:  `A media library that keeps itself in sync while you watch.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initApp)

	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Set custom help function
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})
}

// initApp loads configuration and initializes logging before any command
// runs.
func initApp() {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("failed to initialize logging: %v", err))
	}
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"list",
		"play",
		"like",
		"favorite",
		"add",
		"delete",
		"notifications",
		"follow",
		"panel",
		"stats",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`mediatray v%s

A media library that keeps itself in sync while you watch.

USAGE:
    mediatray [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Print(helpText)
}
