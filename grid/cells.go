package grid

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/iw2rmb/frametable/internal/grapheme"
	"github.com/iw2rmb/frametable/store"
)

// DateLayout formats time.Time values.
const DateLayout = "2006-01-02"

var numbers = message.NewPrinter(language.English)

// FormatValue is the default text of a cell value.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return grapheme.Flatten(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case fmt.Stringer:
		return grapheme.Flatten(v.String())
	default:
		return grapheme.Flatten(fmt.Sprint(v))
	}
}

// TextRenderer draws the value under the column key.
func TextRenderer[T any](ctx store.CellContext[T]) string {
	v, _ := store.Lookup(ctx.Values, ctx.Column.Key)
	return FormatValue(v)
}

// NumberRenderer draws numbers with thousands separators and a fixed number
// of decimals. Other values fall back to FormatValue.
func NumberRenderer[T any](decimals int) store.CellRenderer[T] {
	return func(ctx store.CellContext[T]) string {
		v, _ := store.Lookup(ctx.Values, ctx.Column.Key)
		return FormatNumber(v, decimals)
	}
}

func FormatNumber(v any, decimals int) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if decimals <= 0 {
			return numbers.Sprintf("%d", rv.Int())
		}
		return formatDecimal(float64(rv.Int()), decimals)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if decimals <= 0 {
			return numbers.Sprintf("%d", rv.Uint())
		}
		return formatDecimal(float64(rv.Uint()), decimals)
	case reflect.Float32, reflect.Float64:
		return formatDecimal(rv.Float(), decimals)
	default:
		return FormatValue(v)
	}
}

func formatDecimal(f float64, decimals int) string {
	decimals = max(decimals, 0)
	return numbers.Sprint(number.Decimal(f,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// StatusRenderer draws the row status: empty for unchanged rows.
func StatusRenderer[T any](ctx store.CellContext[T]) string {
	if ctx.Item.Status == store.StatusUnset {
		return ""
	}
	return ctx.Item.Status.String()
}

// CheckedRenderer draws the row's checked flag as a checkbox.
func CheckedRenderer[T any](ctx store.CellContext[T]) string {
	return checkbox(ctx.Item.Checked, ctx.Width, "✓", " ")
}

// checkbox draws "[x]" when the cell is wide enough, a single glyph
// otherwise.
func checkbox(checked bool, width int, on, off string) string {
	if width >= 3 {
		if checked {
			return "[x]"
		}
		return "[ ]"
	}
	if checked {
		return on
	}
	return off
}

// fitCell truncates text to width and pads it according to align.
func fitCell(text string, width int, align store.Align) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "…")
	gap := width - ansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case store.AlignRight:
		return strings.Repeat(" ", gap) + text
	case store.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

// cellLines splits rendered text into exactly n lines.
func cellLines(text string, n int) []string {
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
