// Command llmls-complete sends one completion request to a configured
// backend and prints the generations, one per line.
//
// Configuration is read from a YAML file and LLMLS_* environment variables
// (see pkg/config); flags override both:
//
//	llmls-complete --backend ollama --url http://localhost:11434/api/generate \
//	    --model codellama:7b "func fib(n int) int {"
//
// With --dry-run the headers and body are printed instead of being sent.
// With --metrics-file the request metrics are written in the Prometheus text
// format once the request finishes, successful or not.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/backend"
	"github.com/rhuss/llmls/pkg/client"
	"github.com/rhuss/llmls/pkg/config"
	"github.com/rhuss/llmls/pkg/debug"
	"github.com/rhuss/llmls/pkg/observability"
)

type options struct {
	configPath  string
	backend     string
	url         string
	model       string
	ide         string
	metricsFile string
	dryRun      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("completion failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "llmls-complete [prompt]",
		Short:         "Request a code completion from an LLM backend",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to the YAML config file")
	flags.StringVar(&opts.backend, "backend", "", "backend kind: huggingface, tgi, ollama, openai")
	flags.StringVar(&opts.url, "url", "", "backend endpoint URL")
	flags.StringVar(&opts.model, "model", "", "model identifier")
	flags.StringVar(&opts.ide, "ide", "", "client identity sent in the User-Agent")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the request")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print headers and body without sending")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := config.Load(opts.configPath, func(c *config.Config) { applyFlags(c, opts) })
	if err != nil {
		return err
	}

	debug.Init(cfg.Debug.Categories, cfg.Debug.Level, cmd.ErrOrStderr())

	prompt, err := readPrompt(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	b := cfg.Selector()
	req := cfg.Request(prompt)
	out := cmd.OutOrStdout()

	if opts.dryRun {
		return printRequest(out, b, req)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.Timeout)
	defer c.Close()

	gens, err := c.Complete(ctx, b, req)
	if opts.metricsFile != "" {
		if werr := observability.WriteTextfile(opts.metricsFile); werr != nil {
			return errors.Join(err, fmt.Errorf("writing metrics file: %w", werr))
		}
	}
	if err != nil {
		return err
	}
	for _, g := range gens {
		fmt.Fprintln(out, g.GeneratedText)
	}
	return nil
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.url != "" {
		cfg.URL = opts.url
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.ide != "" {
		cfg.Ide = api.Ide(opts.ide)
	}
}

// readPrompt returns the prompt argument, or all of stdin when none is given.
func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading prompt from stdin: %w", err)
	}
	prompt := strings.TrimRight(string(data), "\n")
	if prompt == "" {
		return "", errors.New("a prompt is required, as an argument or on stdin")
	}
	return prompt, nil
}

// printRequest writes what would be sent: endpoint, sorted headers, body.
func printRequest(w io.Writer, b backend.Backend, req backend.Request) error {
	headers, body, err := backend.Build(b, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "POST %s\n", backend.Endpoint(b, req.Model))

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := headers.Get(name)
		if name == "Authorization" {
			value = "Bearer ***"
		}
		fmt.Fprintf(w, "%s: %s\n", name, value)
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	fmt.Fprintf(w, "\n%s\n", data)
	return nil
}

