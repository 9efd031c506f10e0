package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xtding233/parabola/internal/config"
	"github.com/xtding233/parabola/internal/share"
	"github.com/xtding233/parabola/internal/tui"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive sliders, undo/redo, presets, share and export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	// the terminal belongs to the program; logs go to --log-file or nowhere
	a, err := newApp(cmd, opts, io.Discard)
	if err != nil {
		return err
	}
	m := tui.New(a.session, tui.Options{
		Clipboard: share.SystemClipboard{},
		Log:       a.log,
	})
	_, runErr := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}
	return errors.Join(runErr, a.close(opts))
}

func newExplainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Print the equation, vertex, axis, discriminant, solutions and derivation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, opts)
		},
	}
}

func runExplain(cmd *cobra.Command, opts *options) error {
	a, err := newApp(cmd, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range a.session.Display().Lines() {
		fmt.Fprintln(out, line)
	}
	return a.close(opts)
}

func newShareCmd(opts *options) *cobra.Command {
	var (
		base     string
		copyLink bool
	)
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that reproduces the current triple",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			link, err := a.session.ShareURL(base)
			if err != nil {
				return errors.Join(err, a.close(opts))
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			if copyLink {
				// clipboard failures never fail the command
				if err := share.Copy(share.SystemClipboard{}, link); err != nil {
					a.log.Warn("copy link", slog.String("error", err.Error()))
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), a.cfg.Buttons.ShareSuccess)
				}
			}
			return a.close(opts)
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base URL (default: app.base_url from the config)")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "also copy the link to the clipboard")
	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	var (
		out      string
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the chart as PNG without a terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := renderOnce(cmd, opts, out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if !watch {
				return nil
			}
			return watchAndRender(cmd, opts, out, interval)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: app.export_file from the config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-render whenever the config file changes")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval for --watch")
	return cmd
}

func renderOnce(cmd *cobra.Command, opts *options, out string) (string, error) {
	a, err := newApp(cmd, opts, cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	var path string
	if out == "" {
		path, err = a.session.ExportFile(".")
	} else {
		path, err = exportTo(a, out)
	}
	if err != nil {
		if d := a.session.Display(); d.Cleared && d.Analysis == nil {
			err = fmt.Errorf("%w: %s", err, d.Discriminant)
		}
		return "", errors.Join(err, a.close(opts))
	}
	return path, a.close(opts)
}

func exportTo(a *app, out string) (string, error) {
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := a.session.Export(f); err != nil {
		f.Close()
		os.Remove(out)
		return "", err
	}
	return out, f.Close()
}

func watchAndRender(cmd *cobra.Command, opts *options, out string, interval time.Duration) error {
	w, err := config.NewWatcher(opts.configPath, interval, func(changed string) {
		path, err := renderOnce(cmd, opts, out)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s changed: %v\n", changed, err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	})
	if err != nil {
		return err
	}
	err = w.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
