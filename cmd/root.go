package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codesnap/pkg/config"
	"codesnap/pkg/logging"
	"codesnap/pkg/output"
	"codesnap/pkg/snap"
)

// diagnosticLogName is the file the --log flag writes to.
const diagnosticLogName = "codesnap.log"

// Exit codes reported by ExitCode. Each fatal error kind maps to its own
// code so callers and scripts can tell them apart.
const (
	exitOK          = 0
	exitFailure     = 1
	exitConfig      = 2
	exitNoContent   = 3
	exitDelivery    = 4
	exitInterrupted = 130
)

var (
	configPath string
	printDoc   bool
	saveDoc    bool
	logEnabled bool
	treeMode   bool
	verbose    bool
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "codesnap",
	Short: "Copy a configured set of source files to the clipboard",
	Long: `Codesnap aggregates the files and folders listed in codesnap.yml into a
single annotated document and copies it to the clipboard, for pasting into
tools like LLM prompts. A template configuration is created on first run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default: codesnap.yml in current directory)")
	RootCmd.Flags().BoolVarP(&printDoc, "print", "p", false, "print the collected content to the terminal")
	RootCmd.Flags().BoolVarP(&saveDoc, "output", "o", false, "save the content to a timestamped text file")
	RootCmd.Flags().BoolVarP(&logEnabled, "log", "l", false, "write diagnostics to "+diagnosticLogName)
	RootCmd.Flags().BoolVarP(&treeMode, "tree", "t", false, "copy the folder structure tree instead of file contents")
	RootCmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// Execute runs the root command under ctx and returns its error for exit
// code mapping.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	var parseErr *config.ParseError
	var schemaErr *config.SchemaError
	var deliveryErr *output.DeliveryError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &parseErr),
		errors.As(err, &schemaErr),
		errors.Is(err, config.ErrEmptySelection):
		return exitConfig
	case errors.Is(err, snap.ErrNoContent):
		return exitNoContent
	case errors.As(err, &deliveryErr):
		return exitDelivery
	default:
		return exitFailure
	}
}

// run wires the configuration resolver, the aggregation engine, and the
// output sinks together for one invocation.
func run(ctx context.Context, stdout io.Writer) error {
	var logFile string
	if logEnabled {
		logFile = diagnosticLogName
	}
	logger, closeLogger := logging.New(logging.Options{Verbose: verbose, File: logFile})
	defer closeLogger()

	cfg, err := config.Load(configPath)
	if errors.Is(err, config.ErrTemplateCreated) {
		fmt.Fprintln(stdout, "No codesnap.yml found. Created a template configuration file.")
		fmt.Fprintln(stdout, "Please edit the file and run codesnap again.")
		return nil
	}
	if err != nil {
		return err
	}

	engine := snap.New(cfg, logger)

	var document string
	var processed int
	if treeMode {
		document, err = engine.Tree(ctx)
	} else {
		var res *snap.Result
		if res, err = engine.Run(ctx); err == nil {
			document, processed = res.Document, res.Processed
		}
	}
	if err != nil {
		return err
	}

	if err := (output.Clipboard{}).Deliver(document); err != nil {
		return err
	}
	if treeMode {
		fmt.Fprintln(stdout, "Directory tree structure copied to clipboard.")
	} else {
		fmt.Fprintf(stdout, "Copied %d files to clipboard.\n", processed)
	}

	if printDoc {
		if err := (output.Terminal{W: stdout}).Deliver(document); err != nil {
			return err
		}
	}
	if saveDoc {
		sink := &output.File{}
		if err := sink.Deliver(document); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Content saved to: %s\n", sink.Path)
	}
	return nil
}
