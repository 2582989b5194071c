// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/httpauth/internal/constraints"
	"github.com/ghettovoice/httpauth/internal/errorutil"
)

// Output formats supported by [New].
const (
	FormatConsole = "console"
	FormatDev     = "dev"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned by [New] for an unsupported output format.
const ErrUnknownFormat errorutil.Error = "unknown log format"

// Options configure a logger built by [New].
type Options struct {
	// Format is one of [FormatConsole], [FormatDev] or [FormatJSON].
	// Empty means [FormatConsole].
	Format string
	// Level is the minimum enabled level. Nil means [slog.LevelInfo].
	Level slog.Leveler
	// AddSource adds the caller position to every record.
	AddSource bool
	// Formatters are applied to attribute values in addition to the error formatter.
	Formatters []slogformatter.Formatter
}

func (o *Options) format() string {
	if o == nil || o.Format == "" {
		return FormatConsole
	}
	return strings.ToLower(o.Format)
}

func (o *Options) level() slog.Leveler {
	if o == nil || o.Level == nil {
		return slog.LevelInfo
	}
	return o.Level
}

func (o *Options) formatters() []slogformatter.Formatter {
	fs := []slogformatter.Formatter{slogformatter.ErrorFormatter("error")}
	if o != nil {
		fs = append(fs, o.Formatters...)
	}
	return fs
}

// New builds a logger writing to w.
func New(w io.Writer, opts *Options) (*slog.Logger, error) {
	var h slog.Handler
	switch opts.format() {
	case FormatConsole:
		h = console.NewHandler(w, &console.HandlerOptions{
			AddSource:  opts != nil && opts.AddSource,
			Level:      opts.level(),
			TimeFormat: time.RFC3339Nano,
		})
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: opts != nil && opts.AddSource,
				Level:     opts.level(),
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: opts != nil && opts.AddSource,
			Level:     opts.level(),
		})
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownFormat, "%q", opts.format()))
	}
	return slog.New(slogformatter.NewFormatterHandler(opts.formatters()...)(h)), nil
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
