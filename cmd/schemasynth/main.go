// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schemasynth/internal/config"
	_ "schemasynth/internal/dialect/mysql"
	"schemasynth/internal/logging"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "schemasynth",
		Short:         "Synthesize table DDL from contributed column requirements",
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Project file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(dumpCmd(opts))
	rootCmd.AddCommand(nameCmd())
	rootCmd.AddCommand(tablesCmd(opts))
	rootCmd.AddCommand(diffCmd(opts))
	return rootCmd
}

// config loads the project file, or the defaults when no file is given and
// none exists in the working directory.
func (o *rootOptions) config() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return config.Default(), nil
			}
			return nil, fmt.Errorf("failed to stat %s: %w", config.DefaultFile, err)
		}
		path = config.DefaultFile
	}
	return config.Load(path)
}

// logger builds the logger from the config, with flags taking precedence.
// Logs always go to w (stderr) so stdout only carries output.
func (o *rootOptions) logger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	levelName, formatName := cfg.Log.Level, cfg.Log.Format
	if o.logLevel != "" {
		levelName = o.logLevel
	}
	if o.logFormat != "" {
		formatName = o.logFormat
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	return logging.New(w, level, format), nil
}
