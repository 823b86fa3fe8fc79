// Command richsink demonstrates the panel logger: it emits one record per
// level, draws a progress bar and completes the run.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/pkg/configloader"
	"github.com/maxludden/loguru-rich-sink/pkg/log"
	"github.com/maxludden/loguru-rich-sink/pkg/progress"
	"github.com/maxludden/loguru-rich-sink/pkg/runcounter"
)

type options struct {
	configPath string
	logsDir    string
	run        int
	noColor    bool
	noFile     bool
	steps      int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "richsink",
		Short:        "Render log records as gradient panels",
		Long:         "richsink emits one record per level to the console and logs/trace.log, then advances the run counter.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logsDir, "logs-dir", "", "directory holding run.txt and trace.log")
	flags.IntVar(&opts.run, "run", 0, "pin the run number instead of reading run.txt")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	flags.BoolVar(&opts.noFile, "no-file", false, "disable the trace file log")
	root.Flags().IntVar(&opts.steps, "steps", 5, "progress steps to draw, 0 disables the bar")

	root.AddCommand(newRunCommand(opts))

	return root
}

func newRunCommand(opts *options) *cobra.Command {
	run := &cobra.Command{
		Use:   "run",
		Short: "Inspect or advance the persisted run counter",
	}

	run.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current run number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counter, err := counterFor(cmd, opts)
			if err != nil {
				return err
			}

			current, err := counter.Setup()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Run %d\n", current)

			return err
		},
	})

	run.AddCommand(&cobra.Command{
		Use:   "increment",
		Short: "Advance the run counter and print the new value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counter, err := counterFor(cmd, opts)
			if err != nil {
				return err
			}

			next, err := counter.Increment()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Run %d\n", next)

			return err
		},
	})

	return run
}

// loadConfig reads --config when given, otherwise RICHSINK_* variables, and
// applies the command-line overrides.
func loadConfig(cmd *cobra.Command, opts *options) (richsink.Config, error) {
	var (
		cfg *richsink.Config
		err error
	)

	if opts.configPath != "" {
		cfg, err = configloader.FromFile(opts.configPath)
	} else {
		cfg, err = configloader.FromEnv("")
	}

	if err != nil {
		return richsink.Config{}, err
	}

	builder := richsink.NewConfigBuilderFrom(*cfg).WithConsole(consoleFor(cmd, cfg.Console))

	if opts.logsDir != "" {
		builder.WithLogsDir(opts.logsDir)
	}

	if cmd.Flags().Changed("run") {
		builder.WithRun(opts.run)
	}

	if opts.noColor {
		builder.WithColors(false)
	}

	if opts.noFile {
		builder.WithFileLog(false)
	}

	return *builder.Build(), nil
}

// consoleFor keeps a console file named by the "output" key and otherwise
// renders to the command output.
func consoleFor(cmd *cobra.Command, configured io.Writer) io.Writer {
	if configured == nil || configured == io.Writer(os.Stdout) {
		return cmd.OutOrStdout()
	}

	return configured
}

// closeConsole closes a console file opened by the configuration loader.
func closeConsole(console io.Writer) error {
	file, ok := console.(*os.File)
	if !ok || file == os.Stdout || file == os.Stderr {
		return nil
	}

	return file.Close()
}

func counterFor(cmd *cobra.Command, opts *options) (*runcounter.Counter, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	err = closeConsole(cfg.Console)
	if err != nil {
		return nil, err
	}

	return runcounter.New(cfg.LogsDir), nil
}

func runDemo(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = closeConsole(cfg.Console)
	}()

	session, err := log.New(cfg)
	if err != nil {
		return err
	}

	defer func() {
		_ = session.Close()
	}()

	logger := session.Logger
	logger.Trace("Entering the demo")
	logger.Debug("Loaded configuration")
	logger.Info("Service started successfully")
	logger.Success("All records rendered")
	logger.Warning("Disk usage at 85%")
	logger.Error("Upstream returned 503")
	logger.Critical("Shutting down the worker pool")

	if opts.steps > 0 {
		bar := progress.New(
			cfg.Console,
			progress.WithStyle(cfg.Styles.Resolve(richsink.SuccessLevel.String())),
			progress.WithColorConfig(cfg.Color),
		)

		for done := 0; done <= opts.steps; done++ {
			err = bar.Print("Processing", done, opts.steps, time.Duration(done)*time.Second)
			if err != nil {
				return err
			}
		}
	}

	_, err = session.Complete()

	return err
}
