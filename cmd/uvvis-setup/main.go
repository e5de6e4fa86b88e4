// Command uvvis-setup checks a Linux host for the prerequisites of a real
// Ocean Optics UV-Vis spectrometer and writes an install script plus a
// simulator configuration for offline work.
//
// Usage:
//
//	uvvis-setup [--dir DIR] [--log-level LEVEL] [--color auto|always|never]
//
// Failed checks are advisory: the command exits 0 unless the generated files
// cannot be written.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-uvvis/internal/config"
	"github.com/cwbudde/algo-uvvis/internal/envcheck"
	"github.com/cwbudde/algo-uvvis/internal/logging"
	"github.com/cwbudde/algo-uvvis/internal/scaffold"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

func main() {
	rootCmd := newRootCmd(envcheck.New(), isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command around checker. tty reports whether stdout
// is a terminal and decides colour in "auto" mode.
func newRootCmd(checker *envcheck.Checker, tty bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uvvis-setup",
		Short: "Check UV-Vis spectrometer prerequisites and generate setup files",
		Long: `uvvis-setup inspects the host for libusb, the Ocean Optics udev rules,
plugdev membership and python-seabreeze, then writes install_uvvis_setup.sh
and uvvis-mock.yaml into --dir.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			level, _ := cmd.Flags().GetString("log-level")
			colorMode, _ := cmd.Flags().GetString("color")

			color, err := useColor(colorMode, tty)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(level, cmd.ErrOrStderr())
			r := &reporter{w: cmd.OutOrStdout(), color: color}

			r.header("UV-Vis Spectrometer Setup Check")
			logger.Debug("running host checks", "root", checker.Root)
			results := checker.Run(cmd.Context())
			for _, res := range results {
				r.result(res)
			}

			script, err := scaffold.WriteInstallScript(dir, scaffold.DefaultScriptData())
			if err != nil {
				return err
			}
			logger.Info("wrote install script", "path", script)

			cfgPath, err := scaffold.WriteConfig(dir, config.Default())
			if err != nil {
				return err
			}
			logger.Info("wrote simulator config", "path", cfgPath)

			r.summary(results, script, cfgPath)
			return nil
		},
	}

	cmd.Flags().String("dir", ".", "Directory for the generated files")
	cmd.Flags().String("log-level", "warn", "Log level: debug, info, warn, error, off")
	cmd.Flags().String("color", "auto", "Colourise output: auto, always, never")

	return cmd
}

func useColor(mode string, tty bool) (bool, error) {
	switch mode {
	case "auto":
		return tty, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}
}

type reporter struct {
	w     io.Writer
	color bool
}

func (r *reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

func (r *reporter) header(title string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, r.paint(ansiBold, title))
	fmt.Fprintln(r.w, rule)
}

func (r *reporter) result(res envcheck.Result) {
	mark := r.paint(ansiGreen, "✓")
	if !res.Passed {
		mark = r.paint(ansiRed, "✗")
	}
	fmt.Fprintf(r.w, "\n%s:\n  %s %s\n", res.Name, mark, res.Detail)
	if len(res.Remedy) > 0 {
		fmt.Fprintln(r.w, "  Fix:")
		for _, step := range res.Remedy {
			fmt.Fprintf(r.w, "    %s\n", step)
		}
	}
}

func (r *reporter) summary(results []envcheck.Result, script, cfgPath string) {
	passed := 0
	for _, res := range results {
		if res.Passed {
			passed++
		}
	}

	fmt.Fprintln(r.w)
	r.header("Summary")
	for _, res := range results {
		status := r.paint(ansiGreen, "PASS")
		if !res.Passed {
			status = r.paint(ansiRed, "FAIL")
		}
		fmt.Fprintf(r.w, "%s: %s\n", res.Name, status)
	}
	fmt.Fprintf(r.w, "\n%d/%d checks passed\n", passed, len(results))

	fmt.Fprintf(r.w, "\nGenerated:\n  %s\n  %s\n", script, cfgPath)

	fmt.Fprintln(r.w, "\nNext steps:")
	if passed == len(results) {
		fmt.Fprintln(r.w, "  All checks passed. Connect the spectrometer via USB and start acquiring.")
	} else {
		fmt.Fprintf(r.w, "  1. Run: bash %s\n", script)
		fmt.Fprintln(r.w, "  2. Log out and log back in for group changes to take effect")
		fmt.Fprintln(r.w, "  3. Run uvvis-setup again to verify")
	}
	fmt.Fprintf(r.w, "  Without hardware: uvvis-demo -config %s\n", cfgPath)
}
