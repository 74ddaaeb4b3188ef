package seed

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Field layout. Every recorded seed depends on these values.
const (
	TimestampShift = 38
	HPShift        = TimestampShift - 1
	MinStatShift   = HPShift - StatBits
	MaxStatShift   = MinStatShift - StatBits

	// StatBits is the width of each stat field.
	StatBits = 14
	// MaxStat is the largest stat a seed can carry.
	MaxStat = 1<<StatBits - 1
	// WinBits is the width of the win percent field.
	WinBits = MaxStatShift

	statMask = MaxStat
	winMask  = 1<<WinBits - 1
)

// StatType names the stat axis a range prefers.
type StatType string

const (
	// StatTypeHP prefers hit points.
	StatTypeHP StatType = "hp"
	// StatTypeDiplomacy prefers diplomacy (charisma).
	StatTypeDiplomacy StatType = "dipl"
)

var (
	// ErrStatOverflow indicates a stat that does not fit in StatBits.
	ErrStatOverflow = errors.New("stat exceeds seed field width")
	// ErrWinPercentRange indicates a win percent outside [0, 1].
	ErrWinPercentRange = errors.New("win percent must be between 0 and 1")
	// ErrUnknownStatType indicates an unrecognized stat type name.
	ErrUnknownStatType = errors.New("unknown stat type")
)

// ParseStatType resolves a stat type from its user-facing name.
func ParseStatType(value string) (StatType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hp", "health":
		return StatTypeHP, nil
	case "dipl", "diplomacy", "cha", "charisma":
		return StatTypeDiplomacy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatType, value)
	}
}

// StatRange bounds the entities an encounter may select.
type StatRange struct {
	Type       StatType
	Min        int
	Max        int
	WinPercent float64
}

// Valid reports whether t is one of the known stat types. Encode treats any
// other value as diplomacy.
func (t StatType) Valid() bool {
	return t == StatTypeHP || t == StatTypeDiplomacy
}

// String renders the range for audit output.
func (r StatRange) String() string {
	return fmt.Sprintf("%s %d-%d win %.2f", r.Type, r.Min, r.Max, r.WinPercent)
}

// Validate reports whether the range survives an encode/decode round trip.
// Encode never calls it; out-of-range values are truncated there.
func (r StatRange) Validate() error {
	if r.Min > MaxStat || r.Max > MaxStat {
		return fmt.Errorf("%w: min %d max %d, limit %d", ErrStatOverflow, r.Min, r.Max, MaxStat)
	}
	if r.WinPercent < 0 || r.WinPercent > 1 || math.IsNaN(r.WinPercent) {
		return fmt.Errorf("%w: %v", ErrWinPercentRange, r.WinPercent)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatType, r.Type)
	}
	return nil
}

// Encode packs an event identifier and stat range into a seed.
//
// Negative stats encode as zero and stats above MaxStat keep only their low
// StatBits bits, so 50000 becomes 1248. The win percent is rounded half to
// even and clamped to what WinBits can hold; only 0-100 is meaningful.
func Encode(eventID uint64, stats StatRange) uint64 {
	timestamp := eventID >> TimestampShift

	var hp uint64
	if stats.Type == StatTypeHP {
		hp = 1
	}

	return timestamp<<TimestampShift |
		hp<<HPShift |
		packStat(stats.Min)<<MinStatShift |
		packStat(stats.Max)<<MaxStatShift |
		packWin(stats.WinPercent)
}

func packStat(value int) uint64 {
	if value < 0 {
		return 0
	}
	return uint64(value) & statMask
}

func packWin(percent float64) uint64 {
	if math.IsNaN(percent) {
		return 0
	}
	win := math.RoundToEven(percent * 100)
	switch {
	case win < 0:
		return 0
	case win > winMask:
		return winMask
	}
	return uint64(win)
}

// Decoded is the information recoverable from a seed.
type Decoded struct {
	// Timestamp is the event identifier shifted right by TimestampShift.
	Timestamp uint64
	Stats     StatRange
}

// EventIDPrefix returns the event identifier with its unrecoverable low
// bits zeroed.
func (d Decoded) EventIDPrefix() uint64 {
	return d.Timestamp << TimestampShift
}

// Decode unpacks a seed. Any integer decodes; there is no validity check.
func Decode(value uint64) Decoded {
	statType := StatTypeDiplomacy
	if value>>HPShift&1 == 1 {
		statType = StatTypeHP
	}
	return Decoded{
		Timestamp: value >> TimestampShift,
		Stats: StatRange{
			Type:       statType,
			Min:        int(value >> MinStatShift & statMask),
			Max:        int(value >> MaxStatShift & statMask),
			WinPercent: float64(value&winMask) / 100,
		},
	}
}

// Seed is an encounter seed together with the inputs that built it.
type Seed struct {
	EventID uint64
	Stats   StatRange
}

// New builds a seed for an event.
func New(eventID uint64, stats StatRange) Seed {
	return Seed{EventID: eventID, Stats: stats}
}

// FromUint64 rebuilds a seed from its packed form. EventID holds only the
// recoverable prefix of the original identifier; Uint64 returns value again.
func FromUint64(value uint64) Seed {
	decoded := Decode(value)
	return Seed{EventID: decoded.EventIDPrefix(), Stats: decoded.Stats}
}

// Uint64 returns the packed seed.
func (s Seed) Uint64() uint64 {
	return Encode(s.EventID, s.Stats)
}

// Hex returns the packed seed as uppercase hexadecimal.
func (s Seed) Hex() string {
	return Hex(s.Uint64())
}

// String implements fmt.Stringer.
func (s Seed) String() string {
	return s.Hex()
}
