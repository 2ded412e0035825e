package analysis

import (
	"strconv"
	"time"
)

// Kind identifies the scalar type carried by a Value.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindTime
	KindBool
	KindDuration
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindFloat:    "float",
	KindInt:      "int",
	KindTime:     "time",
	KindBool:     "bool",
	KindDuration: "duration",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// timeLayout matches how analyzer timestamps are shown when no formatter applies
const timeLayout = "2006-01-02 15:04:05"

// Value is a single typed statistic. The zero value is an empty string.
type Value struct {
	kind Kind
	s    string
	f    float64
	i    int64
	t    time.Time
	d    time.Duration
	b    bool
}

func String(s string) Value          { return Value{kind: KindString, s: s} }
func Float(f float64) Value          { return Value{kind: KindFloat, f: f} }
func Int(i int64) Value              { return Value{kind: KindInt, i: i} }
func Time(t time.Time) Value         { return Value{kind: KindTime, t: t} }
func Bool(b bool) Value              { return Value{kind: KindBool, b: b} }
func Duration(d time.Duration) Value { return Value{kind: KindDuration, d: d} }

func (v Value) Kind() Kind {
	return v.kind
}

// Number returns the numeric view of ints and floats.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Time returns the timestamp for time values.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// String renders the value verbatim, the way it is shown in a String column.
func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindTime:
		return v.t.Format(timeLayout)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDuration:
		return v.d.String()
	default:
		return v.s
	}
}
