package seed

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tcs := []struct {
		in   string
		want uint64
	}{
		{in: "70600503E849", want: 123557703313481},
		{in: "70600503e849", want: 123557703313481},
		{in: "0x70600503E849", want: 123557703313481},
		{in: " 0X70600503E849\n", want: 123557703313481},
		{in: "d:123557703313481", want: 123557703313481},
		{in: "10", want: 16},
		{in: "FFFFFFFFFFFFFFFF", want: 1<<64 - 1},
	}
	for _, tc := range tcs {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "0x", "xyz", "d:12ab", "-1", "1FFFFFFFFFFFFFFFF"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidSeed) {
			t.Fatalf("Parse(%q) error = %v, want %v", in, err, ErrInvalidSeed)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	value := Encode(1234567890123456789, StatRange{Type: StatTypeDiplomacy, Min: 80, Max: 900, WinPercent: 0.42})
	got, err := Parse(Hex(value))
	if err != nil {
		t.Fatalf("Parse(Hex) error = %v", err)
	}
	if got != value {
		t.Fatalf("Parse(Hex(%d)) = %d", value, got)
	}
}

func TestSnowflakeTime(t *testing.T) {
	created := time.Date(2026, time.March, 4, 12, 30, 15, 250*int(time.Millisecond), time.UTC)
	id := SnowflakeFromTime(created, 0x3FFFFF)

	if got := SnowflakeTime(id); !got.Equal(created) {
		t.Fatalf("SnowflakeTime = %v, want %v", got, created)
	}
	if id&(1<<22-1) != 0x3FFFFF {
		t.Fatalf("low bits = %x, want 3fffff", id&(1<<22-1))
	}
}

func TestSnowflakeFromTimeClampsBeforeEpoch(t *testing.T) {
	id := SnowflakeFromTime(DiscordEpoch.Add(-time.Hour), 1<<22|5)
	if id != 5 {
		t.Fatalf("SnowflakeFromTime before epoch = %d, want 5", id)
	}
}

func TestTimestampTimeBoundsEventTime(t *testing.T) {
	created := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	id := SnowflakeFromTime(created, 42)
	ts := Decode(Encode(id, StatRange{})).Timestamp

	earliest := TimestampTime(ts)
	if earliest.After(created) {
		t.Fatalf("TimestampTime = %v after creation %v", earliest, created)
	}
	if created.Sub(earliest) >= 1<<16*time.Millisecond {
		t.Fatalf("TimestampTime = %v too far before %v", earliest, created)
	}
}

func TestTimestampTimeConcreteExample(t *testing.T) {
	want := DiscordEpoch.Add(29425664 * time.Millisecond)
	if got := TimestampTime(449); !got.Equal(want) {
		t.Fatalf("TimestampTime(449) = %v, want %v", got, want)
	}
}
