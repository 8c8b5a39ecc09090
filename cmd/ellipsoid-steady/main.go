// Command ellipsoid-steady derives the steady-rolling constraint equations
// for a rigid ellipsoid rolling without slip and writes them out as C-like
// procedural code.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/go-kane/mech"
)

// fileConfig is the optional YAML override for output location and emit
// options.
type fileConfig struct {
	Output string           `yaml:"output"`
	Emit   mech.EmitOptions `yaml:",inline"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output  string
		cfgPath string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "ellipsoid-steady",
		Short: "Emit steady-rolling constraint equations for a rigid ellipsoid",
		Long: `ellipsoid-steady symbolically derives the conditions for steady rolling
of a rigid ellipsoid on a horizontal plane (constant lean, constant spin,
constant yaw rate) via Kane's method, and writes the resulting equation
families h[0..3] and dh[0..7] as C-like assignments with shared
subexpressions factored into a z[] array.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			opts := mech.DefaultEmitOptions()
			if cfgPath != "" {
				raw, err := os.ReadFile(cfgPath)
				if err != nil {
					return fmt.Errorf("read config: %w", err)
				}
				fc := fileConfig{Emit: opts}
				if err := yaml.Unmarshal(raw, &fc); err != nil {
					return fmt.Errorf("parse config %s: %w", cfgPath, err)
				}
				opts = fc.Emit
				if fc.Output != "" && !cmd.Flags().Changed("output") {
					output = fc.Output
				}
			}

			d, err := mech.Derive(mech.WithLogger(logger))
			if err != nil {
				return err
			}

			fh, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := mech.Emit(fh, d, opts); err != nil {
				fh.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := fh.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			logger.Info("wrote equations", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "ellipsoid_no_slip_steady.c", "output file path")
	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML file overriding emit options")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
