package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printer writes labelled, optionally colored output.
type printer struct {
	w     io.Writer
	key   *color.Color
	value *color.Color
	dim   *color.Color
	added *color.Color
	gone  *color.Color
	warn  *color.Color
}

func newPrinter(w io.Writer, mode string) *printer {
	p := &printer{
		w:     w,
		key:   color.New(color.FgCyan),
		value: color.New(color.FgWhite, color.Bold),
		dim:   color.New(color.FgHiBlack),
		added: color.New(color.FgGreen),
		gone:  color.New(color.FgRed),
		warn:  color.New(color.FgYellow),
	}

	enabled := colorEnabled(w, mode)
	for _, c := range []*color.Color{p.key, p.value, p.dim, p.added, p.gone, p.warn} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// colorEnabled resolves a color mode; auto colors only terminals.
func colorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// field prints "label: value" with the label padded to width.
func (p *printer) field(width int, label string, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.key.Sprintf("%-*s", width, label+":"), p.value.Sprint(value))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// formatValue renders a decoded field value on one line.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case float32:
		return formatFloat(x)
	case []float32:
		return joinValues(x, formatFloat)
	case [][]float32:
		return joinValues(x, func(vec []float32) string { return joinValues(vec, formatFloat) })
	case []int32:
		return joinValues(x, func(i int32) string { return strconv.FormatInt(int64(i), 10) })
	case []bool:
		return joinValues(x, strconv.FormatBool)
	case []string:
		return joinValues(x, strconv.Quote)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func joinValues[T any](values []T, format func(T) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
