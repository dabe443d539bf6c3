// Package cli hosts the cobra surface, the confirmation prompter and
// the result renderers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sami-lachheb/local-warp/internal/app"
	"github.com/sami-lachheb/local-warp/internal/domain"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. With arguments it runs a
// single query; without arguments it drops into the interactive loop.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.Executor.SetPrompter(NewPrompter(nil, nil))

	var (
		autoExecute bool
		timeout     time.Duration
	)

	root := &cobra.Command{
		Use:   "warp [query]",
		Short: "local-warp - natural language shell assistant",
		Long:  "local-warp turns natural language into shell commands, asking for confirmation before anything runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runRepl(cmd.Context(), container, autoExecute)
			}
			return runQuery(cmd.Context(), container, strings.Join(args, " "), autoExecute, timeout)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			container.Close()
		},
	}

	root.PersistentFlags().BoolVarP(&autoExecute, "auto-execute", "a", false, "Execute without asking for confirmation")
	root.Flags().DurationVar(&timeout, "timeout", 0, "Override the per-command execution timeout")

	root.AddCommand(newReplCommand(container, &autoExecute))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}

// runQuery performs one query cycle and renders the outcome. Failures
// are rendered, not returned, so cobra does not double-report them.
func runQuery(ctx context.Context, container *app.Container, query string, autoExecute bool, timeout time.Duration) error {
	renderer := NewRenderer(os.Stdout)

	req := domain.QueryRequest{
		Context:     ctx,
		Query:       query,
		AutoExecute: autoExecute,
	}
	if timeout > 0 {
		container.Executor.SetTimeout(timeout)
	}

	resp, err := container.Session.Run(req)
	if err != nil {
		renderer.RenderFailure(err)
		if isFatal(err) {
			return err
		}
		return nil
	}
	if resp.Result != nil {
		renderer.RenderResult(*resp.Result)
	}
	return nil
}

func newReplCommand(container *app.Container, autoExecute *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.Context(), container, *autoExecute)
		},
	}
}

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect local-warp configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, container)
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, container)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.Loader.Path())
			return nil
		},
	})

	return configCmd
}

func runConfigShow(cmd *cobra.Command, container *app.Container) error {
	raw, err := yaml.Marshal(container.Config)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", container.Loader.Path(), raw)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the local-warp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "local-warp", Version)
		},
	}
}

// isFatal reports whether the failure cannot be recovered by retyping
// the query, such as a rejected API key.
func isFatal(err error) bool {
	var genErr *domain.GenerateError
	return errors.As(err, &genErr) && genErr.Fatal()
}
