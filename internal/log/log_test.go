package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/httpauth/internal/log"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"", log.FormatConsole, log.FormatDev, log.FormatJSON, "JSON"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			l, err := log.New(buf, &log.Options{Format: format, Level: slog.LevelDebug})
			if err != nil {
				t.Fatalf("log.New(buf, %q) error = %v, want nil", format, err)
			}
			l.Debug("parsed", "scheme", "Bearer")
			if got := buf.String(); !strings.Contains(got, "Bearer") {
				t.Errorf("log output = %q, want it to contain %q", got, "Bearer")
			}
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := log.New(&bytes.Buffer{}, &log.Options{Format: "xml"})
	if diff := cmp.Diff(err, log.ErrUnknownFormat, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("log.New(buf, \"xml\") error = %v, want %v\ndiff (-got +want):\n%v", err, log.ErrUnknownFormat, diff)
	}
}

func TestNew_Formatters(t *testing.T) {
	t.Parallel()

	type secret struct{ v string }

	buf := &bytes.Buffer{}
	l, err := log.New(buf, &log.Options{
		Format: log.FormatJSON,
		Formatters: []slogformatter.Formatter{
			slogformatter.FormatByType(func(s secret) slog.Value { return slog.StringValue("***") }),
		},
	})
	if err != nil {
		t.Fatalf("log.New() error = %v, want nil", err)
	}
	l.Info("check", "token", secret{"QWxhZGRpbg=="}, "error", errors.New("boom"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v, want nil", buf.String(), err)
	}
	if got, want := rec["token"], "***"; got != want {
		t.Errorf("rec[\"token\"] = %v, want %v", got, want)
	}
	errRec, ok := rec["error"].(map[string]any)
	if !ok {
		t.Fatalf("rec[\"error\"] = %#v, want an object", rec["error"])
	}
	if got, want := errRec["message"], "boom"; got != want {
		t.Errorf("rec[\"error\"][\"message\"] = %v, want %v", got, want)
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Noop.Enabled(LevelError) = true, want false")
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	if got, want := log.StringValue([]byte("Bearer")).LogValue().String(), "Bearer"; got != want {
		t.Errorf("log.StringValue([]byte(\"Bearer\")) = %q, want %q", got, want)
	}
}

func TestFmtValue(t *testing.T) {
	t.Parallel()

	v := struct{ Scheme string }{"Basic"}
	if got, want := log.FmtValue(v, false).LogValue().String(), "{Scheme:Basic}"; got != want {
		t.Errorf("log.FmtValue(v, false) = %q, want %q", got, want)
	}
	if got, want := log.FmtValue(v, true).LogValue().String(), `struct { Scheme string }{Scheme:"Basic"}`; got != want {
		t.Errorf("log.FmtValue(v, true) = %q, want %q", got, want)
	}
}
