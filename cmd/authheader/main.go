// Command authheader parses, formats and checks HTTP authentication header values.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/alecthomas/kong"
	"github.com/caarlos0/env/v11"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/httpauth/auth"
	"github.com/ghettovoice/httpauth/internal/errorutil"
	"github.com/ghettovoice/httpauth/internal/log"
)

// version is set at build time.
var version = "dev"

type (
	// cmd corresponds to the top-level `authheader` command.
	cmd struct {
		// Version is the sub-command to show the version.
		Version struct{} `cmd:"" help:"Show version."`
		// Parse is the sub-command parsed by the `cmdParse` struct.
		Parse cmdParse `cmd:"" help:"Parse header values and print their structure."`
		// Format is the sub-command parsed by the `cmdFormat` struct.
		Format cmdFormat `cmd:"" help:"Build a header value from a scheme and credentials."`
		// Check is the sub-command parsed by the `cmdCheck` struct.
		Check cmdCheck `cmd:"" help:"Check that a header value is valid."`
	}
	// cmdParse corresponds to `authheader parse` command.
	cmdParse struct {
		Legacy    bool     `help:"Accept whitespace separated params and '/' or ';' in unquoted values."`
		Output    string   `enum:"json,text" default:"json" help:"Output format (json, text)."`
		JSONInput bool     `name:"json-input" help:"Decode every stdin line as a JSON string."`
		Values    []string `arg:"" optional:"" name:"value" help:"Header values. One value per stdin line is read when omitted."`
	}
	// cmdFormat corresponds to `authheader format` command.
	cmdFormat struct {
		Scheme  string   `required:"" help:"Auth scheme."`
		Token68 string   `name:"token68" help:"Token68 credentials."`
		Params  []string `name:"param" sep:"none" placeholder:"NAME=VALUE" help:"Auth param, can be repeated."`
		Quote   bool     `help:"Quote every param value."`
		Spaced  bool     `help:"Separate params with a comma and a space."`
	}
	// cmdCheck corresponds to `authheader check` command.
	cmdCheck struct {
		Legacy bool   `help:"Accept whitespace separated params and '/' or ';' in unquoted values."`
		Value  string `arg:"" name:"value" help:"Header value to check."`
	}
)

// Validate is called by Kong after parsing to validate the cmdFormat arguments.
func (c *cmdFormat) Validate() error {
	if c.Token68 != "" && len(c.Params) > 0 {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("token68 and param are mutually exclusive"))
	}
	for _, p := range c.Params {
		if !strings.Contains(p, "=") {
			return errtrace.Wrap(errorutil.NewInvalidArgumentError("param %q: want NAME=VALUE", p))
		}
	}
	return nil
}

func (c *cmdFormat) header() *auth.Header {
	hdr := &auth.Header{Scheme: c.Scheme}
	switch {
	case c.Token68 != "":
		hdr.Credentials = auth.Token68(c.Token68)
	case len(c.Params) > 0:
		ps := make(auth.Params, 0, len(c.Params))
		for _, p := range c.Params {
			name, value, _ := strings.Cut(p, "=")
			ps = append(ps, auth.Param{Name: name, Value: value})
		}
		hdr.Credentials = ps
	}
	return hdr
}

func main() {
	doMain(os.Stdin, os.Stdout, os.Stderr, os.Args[1:], env.ToMap(os.Environ()), os.Exit)
}

// doMain is the main entry point for the CLI. It parses the command line arguments and executes the appropriate command.
//
//   - stdin is read by `parse` when no values are given.
//   - stdout is the writer to use for standard output. Mainly for testing.
//   - stderr is the writer to use for logs and errors. Mainly for testing.
//   - args are the command line arguments without the program name.
//   - environ holds the environment variables used to load the config.
//   - exitFn is the function to call to exit the program. Mainly for testing.
func doMain(stdin io.Reader, stdout, stderr io.Writer, args []string, environ map[string]string, exitFn func(int)) {
	cfg, err := loadConfig(environ)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		exitFn(1)
		return
	}

	logger, err := log.New(stderr, &log.Options{
		Format:     cfg.LogFormat,
		Level:      cfg.LogLevel,
		Formatters: []slogformatter.Formatter{parseErrorFormatter()},
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		exitFn(1)
		return
	}

	var c cmd
	parser, err := kong.New(&c,
		kong.Name("authheader"),
		kong.Description("HTTP authentication header tool"),
		kong.Writers(stdout, stderr),
		kong.Exit(exitFn),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating parser: %v\n", err)
		exitFn(1)
		return
	}
	parsed, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	switch name, _, _ := strings.Cut(parsed.Command(), " "); name {
	case "version":
		_, _ = fmt.Fprintf(stdout, "authheader: %s\n", version)
	case "parse":
		p := &auth.Parser{Legacy: c.Parse.Legacy || cfg.Legacy, Log: logger}
		if !runParse(c.Parse, p, stdin, stdout, logger) {
			exitFn(1)
		}
	case "format":
		if !runFormat(c.Format, stdout, logger) {
			exitFn(1)
		}
	case "check":
		p := &auth.Parser{Legacy: c.Check.Legacy || cfg.Legacy, Log: logger}
		if _, err := p.Parse(c.Check.Value); err != nil {
			_, _ = fmt.Fprintln(stdout, err)
			exitFn(1)
			return
		}
		_, _ = fmt.Fprintln(stdout, "ok")
	default:
		panic("unreachable")
	}
}

func runParse(c cmdParse, p *auth.Parser, stdin io.Reader, stdout io.Writer, logger *slog.Logger) bool {
	ok, n := true, 0
	handle := func(i int, value string) {
		hdr, err := p.Parse(value)
		if err == nil {
			err = printHeader(stdout, c.Output, n, hdr)
		}
		if err != nil {
			ok = false
			logError(logger, "failed to parse value", i, err)
			return
		}
		n++
	}

	if len(c.Values) > 0 {
		for i, v := range c.Values {
			handle(i, v)
		}
		return ok
	}

	sc := bufio.NewScanner(stdin)
	for i := 0; sc.Scan(); i++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if c.JSONInput {
			v, err := decodeJSONInput(line)
			if err != nil {
				ok = false
				logError(logger, "failed to decode value", i, err)
				continue
			}
			line = v
		}
		handle(i, line)
	}
	if err := sc.Err(); err != nil {
		logger.Error("failed to read input", slog.Any("error", err))
		return false
	}
	return ok
}

func decodeJSONInput(line string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(line), &v); err != nil {
		return "", errtrace.Wrap(err)
	}
	s, ok := v.(string)
	if !ok {
		return "", errtrace.Wrap(&auth.ParseError{
			Kind:  auth.ErrInvalidInputType,
			Input: line,
			Err:   errorutil.Errorf("expected a JSON string, got %s", jsonTypeName(v)),
		})
	}
	return s, nil
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	default:
		return "object"
	}
}

func printHeader(w io.Writer, output string, n int, hdr *auth.Header) error {
	if output == "json" {
		return errtrace.Wrap(json.NewEncoder(w).Encode(hdr))
	}

	sb := &strings.Builder{}
	if n > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(hdr.Scheme)
	sb.WriteString("\n")
	switch crd := hdr.Credentials.(type) {
	case auth.Token68:
		sb.WriteString("token68: ")
		sb.WriteString(string(crd))
		sb.WriteString("\n")
	case auth.Params:
		for _, p := range crd {
			sb.WriteString(p.Name)
			sb.WriteString(" = ")
			sb.WriteString(strconv.Quote(p.Value))
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return errtrace.Wrap(err)
}

func runFormat(c cmdFormat, stdout io.Writer, logger *slog.Logger) bool {
	hdr := c.header()
	logger.Debug("formatting header", slog.Any("header", log.FmtValue(hdr, false)))
	s, err := auth.Format(hdr, &auth.RenderOptions{QuoteValues: c.Quote, SpaceAfterComma: c.Spaced})
	if err != nil {
		logger.Error("failed to format value", slog.Any("error", err))
		return false
	}
	_, _ = fmt.Fprintln(stdout, s)
	return true
}

func logError(logger *slog.Logger, msg string, i int, err error) {
	attrs := []any{slog.Int("index", i), slog.Any("error", err)}
	if perr := (*auth.ParseError)(nil); errors.As(err, &perr) {
		attrs = append(attrs, slog.Any("details", perr))
	}
	logger.Error(msg, attrs...)
}

func parseErrorFormatter() slogformatter.Formatter {
	return slogformatter.FormatByType(func(e *auth.ParseError) slog.Value {
		attrs := []slog.Attr{
			slog.String("kind", string(e.Kind)),
			slog.Int("pos", e.Pos),
			slog.String("input", e.Input),
		}
		if e.Err != nil {
			attrs = append(attrs, slog.String("cause", e.Err.Error()))
		}
		return slog.GroupValue(attrs...)
	})
}
