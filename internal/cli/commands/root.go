/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package commands implements the facadectl command tree.
package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/facade"
	facadeconfig "dirpx.dev/facade/config"
	"dirpx.dev/facade/internal/cli/config"
	"dirpx.dev/facade/internal/cli/ui"
	"dirpx.dev/facade/provider/memory"
)

var (
	// Version information, set at build time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	u       *facade.Universe
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "facadectl",
		Short: "Inspect reflection models through the non-null facade",
		Long: color.CyanString(`facadectl - reflection facade inspector

facadectl loads a YAML model of assemblies and types, and walks it through
the facade. Accessors the model cannot answer are shown as unsupported
instead of empty.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./facadectl.yaml)")
	flags.StringP("model", "m", "model.yaml", "model document to load")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("non-public", false, "include non-public and static members")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newKindsCommand(a))
	rootCmd.AddCommand(newAssembliesCommand(a))
	rootCmd.AddCommand(newTypesCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log := newLogger(cfg.Level(), cmd.ErrOrStderr())
	a.cfg = cfg
	a.log = log
	a.u = facade.New(facadeconfig.WithLogger(log))
	log.Debug("configuration loaded", zap.String("model", cfg.Model), zap.Bool("non_public", cfg.NonPublic))
	return nil
}

// newLogger builds a console logger writing to w at the given level.
func newLogger(level zapcore.Level, w io.Writer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Named("facadectl")
}

// provider loads the configured model.
func (a *app) provider() (*memory.Provider, error) {
	p, err := memory.LoadFile(a.cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", a.cfg.Model, err)
	}
	a.log.Info("model loaded", zap.String("path", a.cfg.Model), zap.Int("assemblies", len(p.Assemblies())))
	return p, nil
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			title := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			title.Fprint(out, "facadectl version: ")
			fmt.Fprintln(out, Version)
			title.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			title.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			title.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		ui.PrintError(rootCmd.ErrOrStderr(), err, noColor)
		return err
	}
	return nil
}
