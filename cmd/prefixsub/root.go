package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"prefixsub/internal/config"
	"prefixsub/internal/logging"
	"prefixsub/internal/orchestrator"
	"prefixsub/internal/organizer"
	"prefixsub/internal/output"
	"prefixsub/internal/scanner"
)

func newRootCommand() *cobra.Command {
	var opts config.Options

	rootCmd := &cobra.Command{
		Use:   "prefixsub",
		Short: "Move files sharing a filename prefix into a subdirectory named after it",
		Long: `prefixsub splits every file name in a directory on a delimiter, groups the
files by their first segment (case-insensitive) and moves each group with more
than one member into a subdirectory named after the prefix.`,
		Example: `  prefixsub -s " - " -d ~/Pictures --dry -v
  prefixsub -s _ -r -l prefixsub.log`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReorganize(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.Directory, "directory", "d", "", "Directory to reorganize (default: current directory)")
	flags.BoolVarP(&opts.RemovePrefix, "remove", "r", false, "Remove the prefix and its delimiter from moved file names")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Show every planned and performed move on the console")
	flags.StringVarP(&opts.LogFile, "logfile", "l", "", "Also write a JSON log of every level to this file")
	flags.StringVarP(&opts.SplitOn, "split-on", "s", "", "Literal delimiter separating the prefix from the rest of the name")
	flags.BoolVar(&opts.DryRun, "dry", false, "Compute the moves without touching the filesystem")
	flags.BoolVar(&opts.RenameDuplicates, "rename-duplicates", false, "Rename instead of skipping when the destination name is taken")
	flags.StringVar(&opts.SymlinkPolicy, "symlinks", scanner.SymlinkPolicyFollow, "How to treat symlinked files: follow, skip, or error to abort the run")
	_ = rootCmd.MarkFlagRequired("split-on")

	return rootCmd
}

func runReorganize(cmd *cobra.Command, opts config.Options) error {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Application: "prefixsub",
		Verbose:     cfg.Verbose,
		LogFile:     cfg.LogFile,
		Console:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	sink := logging.NewSink(logger.Logger)
	fs := organizer.NewOSFileSystem(cfg.ScanOptions())

	start := time.Now()
	report, runErr := orchestrator.Run(cfg, fs, sink)
	summary := orchestrator.GenerateSummary(report, time.Since(start), cfg.Verbose)

	outCfg := output.DefaultConfig()
	outCfg.Verbose = cfg.Verbose
	outCfg.Writer = cmd.OutOrStdout()
	outCfg.ErrWriter = cmd.ErrOrStderr()
	if outCfg.Writer != os.Stdout {
		outCfg.IsTTY = false
	}
	output.New(outCfg).PrintRun(summary, report)

	return runErr
}
