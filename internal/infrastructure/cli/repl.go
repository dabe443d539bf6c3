package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sami-lachheb/local-warp/internal/app"
	"github.com/sami-lachheb/local-warp/internal/domain"
)

var exitWords = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
}

// runRepl drives the interactive session: read a query, run one cycle,
// render, repeat. Recoverable failures keep the loop alive; only a
// fatal failure (rejected API key) or EOF ends it.
func runRepl(ctx context.Context, container *app.Container, autoExecute bool) error {
	return repl(ctx, container, autoExecute, os.Stdin, os.Stdout)
}

func repl(ctx context.Context, container *app.Container, autoExecute bool, in io.Reader, out io.Writer) error {
	renderer := NewRenderer(out)
	reader := bufio.NewReader(in)

	renderer.RenderNotice(fmt.Sprintf("local-warp ready. Model: %s", container.Config.Model.ModelID))
	renderer.RenderNotice("Describe what you want to do, or type 'exit' to leave.")

	for {
		fmt.Fprint(out, "\n❯ What do you need help with? ")
		line, err := reader.ReadString('\n')
		query := strings.TrimSpace(line)

		if exitWords[strings.ToLower(query)] {
			renderer.RenderNotice("Goodbye.")
			return nil
		}
		if query != "" {
			resp, runErr := container.Session.Run(domain.QueryRequest{
				Context:     ctx,
				Query:       query,
				AutoExecute: autoExecute,
			})
			switch {
			case runErr != nil && isFatal(runErr):
				renderer.RenderFailure(runErr)
				return runErr
			case runErr != nil:
				renderer.RenderFailure(runErr)
			case resp.Result != nil:
				renderer.RenderResult(*resp.Result)
			}
		}

		if err != nil {
			// EOF or a closed terminal; leave quietly.
			fmt.Fprintln(out)
			return nil
		}
	}
}
