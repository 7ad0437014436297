package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/forcekit/forcesql/internal/sferr"
)

// FormatError formats an error for CLI display in Cargo/rustc style.
// If the error is an *sferr.Error, it extracts structured information.
// Otherwise, it formats as a generic error.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sfe *sferr.Error
	if errors.As(err, &sfe) {
		return formatCodedError(sfe)
	}

	return formatGenericError(err)
}

// formatCodedError formats an *sferr.Error in Cargo style:
//
//	error[E3002]: request failed (NOT_FOUND)
//	   | object: NoSuchObject
//	   | status: 404
//	help: check the object name with `forcesql describe`
func formatCodedError(err *sferr.Error) string {
	var b strings.Builder

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	ctx := err.GetContext()

	// Context details in sorted order, helps rendered separately below
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		if k == "helps" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		for _, k := range keys {
			b.WriteString("   ")
			b.WriteString(Pipe())
			b.WriteString(" ")
			b.WriteString(fmt.Sprintf("%s: %v", k, ctx[k]))
			b.WriteString("\n")
		}
	}

	if cause := errors.Unwrap(err); cause != nil {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString(" ")
		b.WriteString(Dim(fmt.Sprintf("cause: %v", cause)))
		b.WriteString("\n")
	}

	for _, help := range err.Helps() {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	return b.String()
}

// formatGenericError formats a plain error.
func formatGenericError(err error) string {
	var b strings.Builder
	b.WriteString(Error("error"))
	b.WriteString(": ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	return b.String()
}
