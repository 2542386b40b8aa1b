package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

// CompareFlags holds the comparison flag values
type CompareFlags struct {
	Diffoscope bool
	OutputFile string
	Stats      bool
	Sort       bool
	Format     string
}

var (
	globalFlags  GlobalFlags
	compareFlags CompareFlags
)

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/imgdiff/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// AddCompareFlags adds the comparison flags to the root command
func AddCompareFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(
		&compareFlags.Diffoscope,
		"diffoscope",
		"d",
		false,
		"run diffoscope on files that do not match",
	)
	cmd.Flags().StringVarP(
		&compareFlags.OutputFile,
		"output-file",
		"o",
		"",
		"output file to use instead of stdout",
	)
	cmd.Flags().BoolVarP(
		&compareFlags.Stats,
		"stats",
		"s",
		false,
		"output statistics about the diff",
	)
	cmd.Flags().BoolVarP(
		&compareFlags.Sort,
		"sort",
		"r",
		false,
		"traverse files in sorted order (easier for human inspection)",
	)
	cmd.Flags().StringVar(
		&compareFlags.Format,
		"format",
		"",
		"report format: human, json",
	)
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}
