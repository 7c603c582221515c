package main

import (
	"os"

	"github.com/san-kum/seesaw/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	backend    string
	dataDir    string
	seed       int64
	noSound    bool
	logFile    string
	theme      string

	weight   int
	fallTime string
	outFile  string
	format   string
	svgFile  string
	force    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "seesaw",
		Short:        "drop weights on a seesaw and watch it tilt",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", config.DefaultBackend, "storage backend: gdata, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory (sqlite)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "weight generator seed (0 = time based)")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "disable the drop sound")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write the event log to a file")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "terminal theme: classic, retro or ocean")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "play in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "play in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	dropCmd := &cobra.Command{
		Use:     "drop [position]",
		Short:   "drop one object and wait for it to land",
		Example: "  seesaw drop 120 --weight 4\n  seesaw drop -- -80",
		Args:    cobra.ExactArgs(1),
		RunE:    runDrop,
	}
	dropCmd.Flags().IntVar(&weight, "weight", 0, "object weight 1-10 (0 = next weight)")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "clear the seesaw and its saved state",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "show the saved seesaw",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "print the saved state as json or an svg snapshot",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&format, "format", "json", "output format: json or svg")

	simulateCmd := &cobra.Command{
		Use:     "simulate [position:weight...]",
		Short:   "run a scripted sequence of drops and plot the angle",
		Example: "  seesaw simulate -- -100:5 150:3 50:8",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runSimulate,
	}
	simulateCmd.Flags().StringVar(&fallTime, "fall", "20ms", "fall duration used for the run")
	simulateCmd.Flags().StringVar(&svgFile, "svg", "", "also write the angle history as svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, dropCmd, resetCmd, statusCmd, exportCmd, simulateCmd, presetsCmd, configCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
