package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Text is an optional string attribute. Valid is false when the attribute is
// absent or stored with a non-string type.
type Text struct {
	String string
	Valid  bool
}

// NewText returns a valid Text.
func NewText(s string) Text { return Text{String: s, Valid: true} }

// Trimmed returns the whitespace-trimmed value, or "" when not a string.
func (t Text) Trimmed() string {
	if !t.Valid {
		return ""
	}
	return strings.TrimSpace(t.String)
}

func (t *Text) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	*t = Text{}
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		*t = NewText(s.Value)
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String)
}

// Flag is an optional boolean attribute. Only a stored BOOL counts as present.
type Flag struct {
	Bool  bool
	Valid bool
}

// NewFlag returns a present Flag.
func NewFlag(b bool) Flag { return Flag{Bool: b, Valid: true} }

// IsExplicitlyFalse reports whether the flag is present and false.
func (f Flag) IsExplicitlyFalse() bool { return f.Valid && !f.Bool }

func (f *Flag) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	*f = Flag{}
	if b, ok := av.(*types.AttributeValueMemberBOOL); ok {
		*f = NewFlag(b.Value)
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Bool)
}

// Offset is a signed number of minutes east of UTC.
type Offset struct {
	Minutes int
	Valid   bool
}

// NewOffset returns a present Offset.
func NewOffset(minutes int) Offset { return Offset{Minutes: minutes, Valid: true} }

// OrZero returns the offset, defaulting to UTC when absent.
func (o Offset) OrZero() int {
	if !o.Valid {
		return 0
	}
	return o.Minutes
}

// UnmarshalDynamoDBAttributeValue accepts finite numbers only and rounds
// fractional values to the nearest minute.
func (o *Offset) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	*o = Offset{}
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*o = NewOffset(int(math.Round(f)))
	return nil
}

func (o Offset) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Minutes)
}

// InstantKind tags the source representation of an Instant.
type InstantKind int

const (
	InstantNone InstantKind = iota
	// InstantTimestamp is a seconds/nanoseconds pair exported from a document store.
	InstantTimestamp
	// InstantString is an ISO-like date-time string.
	InstantString
	// InstantEpochMillis is milliseconds since the Unix epoch.
	InstantEpochMillis
)

// Instant is a point in time as it was stored, before interpretation.
type Instant struct {
	Kind    InstantKind
	Seconds int64
	Nanos   int64
	Text    string
	Millis  float64
}

// InstantFromTime wraps a native time value as a timestamp variant.
func InstantFromTime(t time.Time) Instant {
	return Instant{Kind: InstantTimestamp, Seconds: t.Unix(), Nanos: int64(t.Nanosecond())}
}

// InstantFromString wraps an ISO-like string.
func InstantFromString(s string) Instant { return Instant{Kind: InstantString, Text: s} }

// InstantFromMillis wraps epoch milliseconds.
func InstantFromMillis(ms float64) Instant { return Instant{Kind: InstantEpochMillis, Millis: ms} }

// maxEpochMillis is the largest magnitude accepted for epoch-millisecond values.
const maxEpochMillis = 8.64e15

// instantLayouts are tried in order for the string variant. Layouts without a
// zone are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	time.UnixDate,
}

// Time converts the stored value to an instant. ok is false for absent,
// empty, zero or unparsable values.
func (i Instant) Time() (time.Time, bool) {
	switch i.Kind {
	case InstantTimestamp:
		if i.Seconds == 0 && i.Nanos == 0 {
			return time.Time{}, false
		}
		return time.Unix(i.Seconds, i.Nanos).UTC(), true
	case InstantString:
		s := strings.TrimSpace(i.Text)
		if s == "" {
			return time.Time{}, false
		}
		if idx := strings.Index(s, " ("); idx > 0 {
			s = s[:idx]
		}
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	case InstantEpochMillis:
		if i.Millis == 0 || math.IsNaN(i.Millis) || math.Abs(i.Millis) > maxEpochMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(i.Millis)).UTC(), true
	default:
		return time.Time{}, false
	}
}

func (i *Instant) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	*i = Instant{}
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		*i = InstantFromString(v.Value)
	case *types.AttributeValueMemberN:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			*i = InstantFromMillis(f)
		}
	case *types.AttributeValueMemberM:
		secs, ok := firstNumber(v.Value, "seconds", "_seconds")
		if !ok {
			return nil
		}
		nanos, _ := firstNumber(v.Value, "nanoseconds", "_nanoseconds", "nanos")
		*i = Instant{Kind: InstantTimestamp, Seconds: int64(secs), Nanos: int64(nanos)}
	}
	return nil
}

func (i Instant) MarshalJSON() ([]byte, error) {
	t, ok := i.Time()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(t)
}

func firstNumber(m map[string]types.AttributeValue, names ...string) (float64, bool) {
	for _, name := range names {
		n, ok := m[name].(*types.AttributeValueMemberN)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			continue
		}
		return f, true
	}
	return 0, false
}
