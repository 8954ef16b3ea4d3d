package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampRoundTrip(t *testing.T) {
	require := require.New(t)

	at := time.Date(2020, 1, 2, 3, 4, 5, 6*int(time.Millisecond), time.UTC)
	ts := NewTimestamp(at)
	require.Equal("2020-01-02T03:04:05.006Z", ts.String(), "String")

	text, err := ts.MarshalText()
	require.NoError(err, "MarshalText")

	var decoded Timestamp
	require.NoError(decoded.UnmarshalText(text), "UnmarshalText")
	require.Equal(ts, decoded, "text round trip")

	recovered, rest, err := TimestampFromBytes(ts.Bytes())
	require.NoError(err, "TimestampFromBytes")
	require.Empty(rest, "TimestampFromBytes remainder")
	require.Equal(ts, recovered, "byte round trip")
}

func TestTimestampMalformed(t *testing.T) {
	require := require.New(t)

	var ts Timestamp
	require.Error(ts.UnmarshalText([]byte("yesterday")), "UnmarshalText(garbage)")

	_, _, err := TimestampFromBytes([]byte{1, 2, 3})
	require.Error(err, "TimestampFromBytes(short)")
}

func TestHumanizeDuration(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		ms   uint64
		text string
	}{
		{0, "0s"},
		{5, "5ms"},
		{1000, "1s"},
		{60_000, "1m"},
		{1_800_000, "30m"},
		{3_600_000, "1h"},
		{5_400_000, "1h 30m"},
		{86_400_000, "1day"},
		{172_800_000, "2days"},
		{91_800_000, "1day 1h 30m"},
		{93_784_005, "1day 2h 3m 4s 5ms"},
	} {
		require.Equal(tc.text, HumanizeDuration(tc.ms), "HumanizeDuration(%d)", tc.ms)

		ms, err := DehumanizeDuration(tc.text)
		require.NoError(err, "DehumanizeDuration(%q)", tc.text)
		require.Equal(tc.ms, ms, "DehumanizeDuration(%q)", tc.text)
	}
}

func TestDehumanizeDurationMalformed(t *testing.T) {
	require := require.New(t)

	for _, text := range []string{"", "   ", "12", "xh", "1h 2q", "ms"} {
		_, err := DehumanizeDuration(text)
		require.ErrorIs(err, ErrMalformedDuration, "DehumanizeDuration(%q)", text)
	}
}

func TestDurationJSONForm(t *testing.T) {
	require := require.New(t)

	d := NewDuration(25*time.Hour + 30*time.Minute)
	text, err := d.MarshalText()
	require.NoError(err, "MarshalText")
	require.Equal("1day 1h 30m", string(text), "humanized form")

	var decoded Duration
	require.NoError(decoded.UnmarshalText(text), "UnmarshalText")
	require.Equal(d, decoded, "round trip")
}
