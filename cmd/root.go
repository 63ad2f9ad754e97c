package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/app"
	"github.com/Norgate-AV/presetgen/internal/config"
	"github.com/Norgate-AV/presetgen/internal/logger"
	"github.com/Norgate-AV/presetgen/internal/version"
)

// NewRootCmd builds the presetgen command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "presetgen [preset]",
		Short: "Generate build projects from presets",
		Long: `Resolve a build preset into configuration tool command lines and configure
its output directories. Without a preset, the presets applicable to this host
are listed for selection.`,
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().String("tool", "", "Path to the configuration tool (default: from PM_cmake_PATH or PATH)")
	rootCmd.PersistentFlags().StringP("presets-dir", "p", "", "Directory holding preset definitions")
	rootCmd.PersistentFlags().StringP("env-file", "e", "", "Dotenv file filling unset environment bindings")
	rootCmd.PersistentFlags().String("journal-dir", "", "Directory of the run journal")
	rootCmd.PersistentFlags().Bool("no-journal", false, "Do not record configure runs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable styled output")
	rootCmd.Flags().BoolP("dry-run", "n", false, "Print the command lines without touching any directory")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// Execute runs the CLI and exits with status 1 on any failure
func Execute() {
	ctx := context.Background()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		zerr.Log(ctx, logger.Default(false), err)
		os.Exit(1)
	}
}

// loadComponents loads configuration for cmd and wires the application graph
func loadComponents(cmd *cobra.Command) (*app.Components, error) {
	cfg, err := config.NewLoader().LoadForCommand(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	comps, _, err := graft.ExecuteFor[*app.Components](ctx, graft.PatchValue[*config.Config](cfg))
	if err != nil {
		return nil, err
	}

	return comps, nil
}
