package components

import (
	"fmt"
	"strings"
)

// Kind selects which feeding strategy an organism follows.
type Kind uint8

const (
	KindGrazer Kind = iota // Eats from the shared resource pool only
	KindHunter             // Preys on the next organism in line only
	KindBoth               // Grazes first, then hunts
)

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"grazer", "hunter", "both"}
}

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Grazes reports whether organisms of this kind feed on the resource pool.
func (k Kind) Grazes() bool {
	return k == KindGrazer || k == KindBoth
}

// Hunts reports whether organisms of this kind prey on others.
func (k Kind) Hunts() bool {
	return k == KindHunter || k == KindBoth
}

// ParseKind converts a name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range KindNames() {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feeding kind %q", s)
}

// MarshalText writes the kind by name (used by CSV and JSON output).
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText reads the kind by name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML reads the kind by name.
func (k *Kind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
