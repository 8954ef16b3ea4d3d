package transaction

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// timestampFormat is the millisecond-precision RFC 3339 form used on
// the JSON wire.
const timestampFormat = "2006-01-02T15:04:05.000Z"

const (
	millisPerSecond = 1000
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
	millisPerDay    = 24 * millisPerHour
)

var (
	_ encoding.TextMarshaler   = Timestamp(0)
	_ encoding.TextUnmarshaler = (*Timestamp)(nil)
	_ encoding.TextMarshaler   = Duration(0)
	_ encoding.TextUnmarshaler = (*Duration)(nil)
)

// Timestamp is a point in time with millisecond precision, counted
// since the Unix epoch.
type Timestamp uint64

// NewTimestamp converts a time.Time into a Timestamp, truncating to
// millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the timestamp as a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// Bytes returns the canonical byte encoding, a u64 millisecond count.
func (t Timestamp) Bytes() []byte {
	return bytecodec.ToBytesU64(uint64(t))
}

// String returns the wire string form.
func (t Timestamp) String() string {
	return t.Time().Format(timestampFormat)
}

// MarshalText encodes a Timestamp into its wire string form.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a text marshaled Timestamp.
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.RFC3339, string(text))
	if err != nil {
		return err
	}
	*t = NewTimestamp(parsed)
	return nil
}

// TimestampFromBytes decodes a timestamp from the front of data and
// returns the remainder.
func TimestampFromBytes(data []byte) (Timestamp, []byte, error) {
	v, rest, err := bytecodec.FromBytesU64(data)
	return Timestamp(v), rest, err
}

// Duration is a time span with millisecond precision, used for
// transaction time-to-live values.
type Duration uint64

// NewDuration converts a time.Duration into a Duration, truncating to
// millisecond precision.
func NewDuration(d time.Duration) Duration {
	return Duration(d.Milliseconds())
}

// Bytes returns the canonical byte encoding, a u64 millisecond count.
func (d Duration) Bytes() []byte {
	return bytecodec.ToBytesU64(uint64(d))
}

// String returns the humanized wire form, e.g. "1h 30m" or "1day".
func (d Duration) String() string {
	return HumanizeDuration(uint64(d))
}

// MarshalText encodes a Duration into its humanized wire form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a text marshaled Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	ms, err := DehumanizeDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(ms)
	return nil
}

// DurationFromBytes decodes a duration from the front of data and
// returns the remainder.
func DurationFromBytes(data []byte) (Duration, []byte, error) {
	v, rest, err := bytecodec.FromBytesU64(data)
	return Duration(v), rest, err
}

// HumanizeDuration renders a millisecond count in the humanized wire
// form: space-separated components in descending unit order (days,
// hours, minutes, seconds, milliseconds), zero components omitted.
// Zero renders as "0s". Day components use the "day"/"days" suffix
// with no space, e.g. "1day 2h".
func HumanizeDuration(ms uint64) string {
	if ms == 0 {
		return "0s"
	}

	var parts []string
	if days := ms / millisPerDay; days == 1 {
		parts = append(parts, "1day")
	} else if days > 1 {
		parts = append(parts, strconv.FormatUint(days, 10)+"days")
	}
	ms %= millisPerDay

	for _, u := range []struct {
		suffix string
		size   uint64
	}{
		{"h", millisPerHour},
		{"m", millisPerMinute},
		{"s", millisPerSecond},
		{"ms", 1},
	} {
		if n := ms / u.size; n > 0 {
			parts = append(parts, strconv.FormatUint(n, 10)+u.suffix)
		}
		ms %= u.size
	}

	return strings.Join(parts, " ")
}

// DehumanizeDuration parses the humanized wire form back into a
// millisecond count.
func DehumanizeDuration(s string) (uint64, error) {
	if len(strings.TrimSpace(s)) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrMalformedDuration)
	}

	var total uint64
	for _, tok := range strings.Fields(s) {
		var (
			n    uint64
			unit uint64
		)
		digits := tok
		switch {
		case strings.HasSuffix(tok, "days"):
			digits, unit = tok[:len(tok)-4], millisPerDay
		case strings.HasSuffix(tok, "day"):
			digits, unit = tok[:len(tok)-3], millisPerDay
		case strings.HasSuffix(tok, "ms"):
			digits, unit = tok[:len(tok)-2], 1
		case strings.HasSuffix(tok, "h"):
			digits, unit = tok[:len(tok)-1], millisPerHour
		case strings.HasSuffix(tok, "m"):
			digits, unit = tok[:len(tok)-1], millisPerMinute
		case strings.HasSuffix(tok, "s"):
			digits, unit = tok[:len(tok)-1], millisPerSecond
		default:
			return 0, fmt.Errorf("%w: token %q", ErrMalformedDuration, tok)
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: token %q", ErrMalformedDuration, tok)
		}
		total += n * unit
	}
	return total, nil
}
