package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"rink-finder-service/internal/services"
	"strings"

	"github.com/spf13/cobra"
)

const prompt = `Enter your coordinates as "latitude, longitude": `

// NewRootCommand builds the complete command tree.
// Without a subcommand the root runs the interactive closest-rink prompt.
func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "rinks",
		Short:         "Find the closest outdoor ice rink in Toronto.",
		Args:          cobra.NoArgs,
		Version:       resolvedVersion(deps.Version),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, deps)
		},
	}

	root.AddCommand(newListCommand(deps))
	root.AddCommand(newResourcesCommand(deps))

	return root
}

func resolvedVersion(v string) string {
	if strings.TrimSpace(v) == "" {
		return "dev"
	}
	return v
}

// runInteractive prompts for one coordinate line and prints the closest rink.
func runInteractive(cmd *cobra.Command, deps Dependencies) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, prompt)

	line, err := readLine(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read coordinates: %w", err)
	}

	result, err := services.LocateClosestRink(cmd.Context(), line, deps.Source)
	if err != nil {
		_, _ = fmt.Fprintln(out, services.UserMessage(err))
		return &exitError{code: 1}
	}

	_, _ = fmt.Fprintln(out, services.FormatResult(result))
	return nil
}

// readLine reads a single line; a final line without newline is accepted.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
