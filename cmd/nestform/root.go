package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flavono123/nestform/internal/config"
	"github.com/flavono123/nestform/internal/export"
	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   config.AppID,
		Short: "Build a nested field schema in the terminal",
		Long: `nestform edits a list of named, typed fields where nested fields hold
their own list of fields. Submitting (ctrl+s) emits every complete field
as a document in the chosen format.

The document is written to --output on each submit, or printed to stdout
after the editor exits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/nestform/config.yaml)")
	flags.StringP(config.KeyFormat, "f", string(export.FormatJSON), fmt.Sprintf("document format, one of %v", export.Formats))
	flags.StringP(config.KeyOutput, "o", "", "file the document is written to on submit")
	flags.Bool(config.KeyDebug, false, "log to the debug log file")
	for _, name := range []string{config.KeyFormat, config.KeyOutput, config.KeyDebug} {
		cobra.CheckErr(v.BindPFlag(name, flags.Lookup(name)))
	}

	return cmd
}

func run(stdout io.Writer, cfg config.Config) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	format := cfg.OutputFormat()
	out := &submitter{format: format, path: outputPath(cfg.Output, format)}

	program := tea.NewProgram(
		ui.InitModel(schema.NewTree(), ui.Options{Format: format, Submit: out.submit}),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	if cfg.Output == "" && out.last != nil {
		if _, err := stdout.Write(out.last); err != nil {
			return fmt.Errorf("failed to print document: %w", err)
		}
	}
	return nil
}

func setupLogging(cfg config.Config) (func(), error) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if !cfg.Debug {
		logrus.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to log to file: %w", err)
	}
	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	return func() { f.Close() }, nil
}

// outputPath gives an extensionless output file the format's extension.
func outputPath(path string, format export.Format) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + format.Ext()
}

// submitter keeps the latest submitted document and writes it to path when
// one is set.
type submitter struct {
	format export.Format
	path   string
	last   []byte
}

func (s *submitter) submit(doc schema.Document) error {
	b, err := export.Marshal(doc, s.format)
	if err != nil {
		return err
	}
	if s.path != "" {
		if err := os.WriteFile(s.path, b, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.path, err)
		}
		logrus.WithField("path", s.path).Info("document written")
	}
	s.last = b
	return nil
}
