package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/forcekit/forcesql/internal/sferr"
)

// usePlainOutput forces plain mode so assertions see no ANSI escapes.
func usePlainOutput(t *testing.T) {
	t.Helper()
	prev := Default()
	SetDefault(&Config{Mode: ModePlain})
	t.Cleanup(func() { SetDefault(prev) })
}

func TestFormatErrorNil(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q, want empty", got)
	}
}

func TestFormatErrorGeneric(t *testing.T) {
	usePlainOutput(t)

	got := FormatError(errors.New("something broke"))
	want := "error: something broke\n"
	if got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}

func TestFormatErrorCoded(t *testing.T) {
	usePlainOutput(t)

	err := sferr.New(sferr.ErrAPIResponse, "request failed (NOT_FOUND)").
		With("status", 404).
		WithObject("NoSuchObject")

	got := FormatError(err)
	if !strings.HasPrefix(got, "error[E3002]: request failed (NOT_FOUND)\n") {
		t.Errorf("FormatError() = %q, want error[E3002] header", got)
	}
	if !strings.Contains(got, "| object: NoSuchObject") {
		t.Errorf("FormatError() missing object context: %q", got)
	}
	if !strings.Contains(got, "| status: 404") {
		t.Errorf("FormatError() missing status context: %q", got)
	}
}

func TestFormatErrorContextSorted(t *testing.T) {
	usePlainOutput(t)

	err := sferr.New(sferr.ErrCacheRead, "read failed").
		With("zebra", 1).
		With("alpha", 2)

	got := FormatError(err)
	if strings.Index(got, "alpha") > strings.Index(got, "zebra") {
		t.Errorf("FormatError() context not sorted: %q", got)
	}
}

func TestFormatErrorHelp(t *testing.T) {
	usePlainOutput(t)

	err := sferr.New(sferr.ErrDialect, "unsupported dialect \"mysql\"").
		WithHelp("run `forcesql dialects` to list supported dialects")

	got := FormatError(err)
	if !strings.Contains(got, "help: run `forcesql dialects` to list supported dialects") {
		t.Errorf("FormatError() missing help line: %q", got)
	}
	// Helps are rendered as help lines, never as context detail.
	if strings.Contains(got, "| helps:") {
		t.Errorf("FormatError() leaked helps into context: %q", got)
	}
}

func TestFormatErrorCause(t *testing.T) {
	usePlainOutput(t)

	err := sferr.Wrap(sferr.ErrSQLWrite, errors.New("disk full"), "failed to write SQL file")
	got := FormatError(err)
	if !strings.Contains(got, "cause: disk full") {
		t.Errorf("FormatError() missing cause: %q", got)
	}
}

func TestFormatErrorWrappedCoded(t *testing.T) {
	usePlainOutput(t)

	// A coded error wrapped by fmt.Errorf still formats as coded.
	inner := sferr.New(sferr.ErrNotAuthenticated, "must login first")
	got := FormatError(wrapPlain(inner))
	if !strings.Contains(got, "error[E2001]") {
		t.Errorf("FormatError() = %q, want coded format", got)
	}
}

func wrapPlain(err error) error {
	return &plainWrapper{err}
}

type plainWrapper struct{ err error }

func (w *plainWrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w *plainWrapper) Unwrap() error { return w.err }

func TestConfigIsTTY(t *testing.T) {
	tests := []struct {
		name string
		mode OutputMode
		want bool
	}{
		{"tty", ModeTTY, true},
		{"plain", ModePlain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsTTY(); got != tt.want {
				t.Errorf("IsTTY() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStylingDisabledInPlainMode(t *testing.T) {
	usePlainOutput(t)

	if got := Error("error"); got != "error" {
		t.Errorf("Error() = %q, want unstyled text", got)
	}
	if got := Pipe(); got != "|" {
		t.Errorf("Pipe() = %q, want bare pipe", got)
	}
}
