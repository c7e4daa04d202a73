// Command characard prints the character card embedded in a PNG image.
//
// Usage:
//
//	characard [flags] <file.png>
//
// Logging is configured through CHARACARD_LOG_LEVEL and CHARACARD_LOG_FORMAT,
// which may also be set in a .env file in the working directory.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/characard"
	"github.com/leofalp/characard/core/card"
	"github.com/leofalp/characard/core/selection"
	"github.com/leofalp/characard/internal/utils"
	"github.com/leofalp/characard/providers/observability/slogobs"

	_ "github.com/joho/godotenv/autoload"
)

const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "markdown"
)

type options struct {
	raw     bool
	format  string
	keyword string
	base64  bool
	repair  bool
	list    bool
	verbose bool
	path    string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	observer := slogobs.New(slogobs.WithOutput(stderr), slogobs.WithLevel(logLevel(opts.verbose)))
	extractorOpts := []characard.Option{
		characard.WithObserver(observer),
		characard.WithKeyword(opts.keyword),
	}
	if opts.base64 {
		extractorOpts = append(extractorOpts, characard.WithBase64())
	}
	if opts.repair {
		extractorOpts = append(extractorOpts, characard.WithRepair())
	}
	ex := characard.New(extractorOpts...)

	if opts.list {
		err = list(ctx, ex, opts.path, stdout)
	} else {
		err = extract(ctx, ex, opts, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "characard: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("characard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: characard [flags] <file.png>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.BoolVar(&opts.raw, "raw", false, "print the raw embedded text instead of the parsed JSON")
	fs.StringVar(&opts.format, "format", formatJSON, "output format: json, yaml or markdown")
	fs.StringVar(&opts.keyword, "keyword", selection.ReservedKeyword, "chunk keyword that marks the card")
	fs.BoolVar(&opts.base64, "base64", false, "also accept base64 encoded card text")
	fs.BoolVar(&opts.repair, "repair", false, "repair malformed JSON as a last resort")
	fs.BoolVar(&opts.list, "list", false, "list the textual chunks instead of extracting")
	fs.BoolVar(&opts.verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return nil, errors.New("missing file path")
	}
	switch opts.format {
	case formatJSON, formatYAML, formatMarkdown:
	default:
		fmt.Fprintf(stderr, "characard: unknown format %q\n", opts.format)
		fs.Usage()
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}

	opts.path = fs.Arg(0)
	return opts, nil
}

// logLevel picks the CLI log level. Without -v or an explicit
// CHARACARD_LOG_LEVEL / LOG_LEVEL only errors are logged, so a failed run
// leaves a single diagnostic line on stderr.
func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if os.Getenv("CHARACARD_LOG_LEVEL") == "" && os.Getenv("LOG_LEVEL") == "" {
		return slog.LevelError
	}
	return slogobs.GetLogLevelFromEnv()
}

func extract(ctx context.Context, ex *characard.Extractor, opts *options, w io.Writer) error {
	res, err := ex.ExtractFile(ctx, opts.path)
	if err != nil {
		return err
	}

	if opts.raw {
		_, err = fmt.Fprintln(w, res.RawText)
		return err
	}

	switch opts.format {
	case formatYAML:
		out, err := yaml.Marshal(yamlValue(res.Parsed))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case formatMarkdown:
		c, err := card.FromValue(res.Parsed)
		if err != nil {
			return err
		}
		md, err := c.Markdown()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	default:
		_, err = fmt.Fprintln(w, utils.JSONToString(res.Parsed, true))
		return err
	}
}

func list(ctx context.Context, ex *characard.Extractor, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	cands, err := ex.Candidates(ctx, data)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tKEYWORD\tLANGUAGE\tSIZE")
	for _, c := range cands {
		lang := c.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Kind, c.Keyword, lang, humanize.Bytes(uint64(len(c.Text))))
	}
	return tw.Flush()
}

// yamlValue turns json.Number leaves into Go numbers so they are emitted as
// YAML scalars instead of quoted strings.
func yamlValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = yamlValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = yamlValue(item)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
