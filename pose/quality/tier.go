package quality

import (
	"errors"
	"fmt"
)

// ErrUnknownTier is returned when parsing an unrecognized tier name.
var ErrUnknownTier = errors.New("quality: unknown tier")

// Tier is a coarse quality class.
type Tier int

// Tiers ordered from worst to best.
const (
	Red Tier = iota
	Amber
	Green
)

func (t Tier) String() string {
	switch t {
	case Red:
		return "red"
	case Amber:
		return "amber"
	case Green:
		return "green"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	switch t {
	case Red, Amber, Green:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	tier, err := ParseTier(string(b))
	if err != nil {
		return err
	}

	*t = tier

	return nil
}

// ParseTier converts "red", "amber" or "green" to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "red":
		return Red, nil
	case "amber":
		return Amber, nil
	case "green":
		return Green, nil
	default:
		return Red, fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
}
