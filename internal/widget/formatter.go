package widget

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/itchyny/timefmt-go"

	"github.com/jwtly10/tradetables/internal/analysis"
)

const (
	DefaultNumberFormat = "0,0"
	DefaultDateFormat   = "%Y-%m-%d"
)

// Formatter renders a single cell of a table column.
type Formatter interface {
	// Pattern is the format string the formatter was built with.
	Pattern() string
	Format(v analysis.Value) string
}

// NumberFormatter formats numbers with a numeral-style pattern such as
// "0,0", "0.000" or "0.000 %". A trailing percent multiplies by 100.
// Non-numeric values are shown verbatim.
type NumberFormatter struct {
	pattern string
	num     numeral
}

func NewNumberFormatter(pattern string) *NumberFormatter {
	if pattern == "" {
		pattern = DefaultNumberFormat
	}
	return &NumberFormatter{
		pattern: pattern,
		num:     parseNumeral(pattern),
	}
}

func (f *NumberFormatter) Pattern() string {
	return f.pattern
}

func (f *NumberFormatter) Format(v analysis.Value) string {
	n, ok := v.Number()
	if !ok {
		return v.String()
	}
	return f.num.format(n)
}

// DateFormatter formats timestamps with a strftime pattern.
type DateFormatter struct {
	pattern string
}

func NewDateFormatter(pattern string) *DateFormatter {
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	return &DateFormatter{pattern: pattern}
}

func (f *DateFormatter) Pattern() string {
	return f.pattern
}

func (f *DateFormatter) Format(v analysis.Value) string {
	t, ok := v.Time()
	if !ok {
		return v.String()
	}
	return timefmt.Format(t, f.pattern)
}

// StringFormatter shows values as they are.
type StringFormatter struct{}

func NewStringFormatter() *StringFormatter {
	return &StringFormatter{}
}

func (f *StringFormatter) Pattern() string {
	return ""
}

func (f *StringFormatter) Format(v analysis.Value) string {
	return v.String()
}

type numeral struct {
	decimals  int
	thousands bool
	percent   bool
	suffix    string
}

func parseNumeral(pattern string) numeral {
	body := strings.TrimRight(pattern, " %")
	n := numeral{
		suffix:    pattern[len(body):],
		thousands: strings.Contains(body, ","),
	}
	n.percent = strings.Contains(n.suffix, "%")
	if dot := strings.IndexByte(body, '.'); dot >= 0 {
		n.decimals = strings.Count(body[dot+1:], "0")
	}
	return n
}

func (n numeral) format(f float64) string {
	if n.percent {
		f *= 100
	}
	s := strconv.FormatFloat(f, 'f', n.decimals, 64)
	if n.thousands {
		s = groupThousands(s)
	}
	return s + n.suffix
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	i, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + s
	}
	out := sign + humanize.Comma(i)
	if hasFrac {
		out += "." + frac
	}
	return out
}
