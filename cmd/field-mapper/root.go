package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"field-mapper/mapper"
	"field-mapper/profile"
)

// app carries the state shared by subcommands after configuration is loaded.
type app struct {
	configFile string
	cfg        *Config
	logger     *zap.Logger
	mapper     *mapper.Mapper
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "field-mapper",
		Short: "Inspect runtime struct-to-struct field mappings",
		Long: `field-mapper shows how same-named exported fields are matched between
struct types: which fields are copied directly, which need nullable coercion,
which are only bound when type conflicts are ignored, and which are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./fieldmapper.yaml)")
	flags.String("profile", "", "mapping profile YAML")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolP("verbose", "v", false, "log mapper activity to stderr")

	root.AddCommand(newVersionCommand())
	root.AddCommand(newTypesCommand())
	root.AddCommand(newInspectCommand(a))
	root.AddCommand(newPlanCommand(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	a.cfg = cfg

	if cfg.NoColor {
		color.NoColor = true
	}

	a.logger = zap.NewNop()
	if cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		a.logger = logger
	}

	opts := []mapper.Option{
		mapper.WithLogger(a.logger),
		mapper.WithDefaults(cfg.Defaults.Flags()),
	}

	if cfg.Profile != "" {
		p, err := profile.LoadFile(cfg.Profile)
		if err != nil {
			return err
		}

		opts = append(opts, mapper.WithProfile(p))
	}

	a.mapper = mapper.New(opts...)

	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "field-mapper version: %s\n", Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", BuildDate)
		},
	}
}

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the sample types available to inspect and plan",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range catalogNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
