package ctrlperm

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTarget is returned when a permission target does not name a known
// family.
var ErrInvalidTarget = errors.New("invalid permission target")

// Target identifies a permission family. Families never compare equal or imply
// across each other, and each owns an independent action space. The only
// family defined so far is control.
type Target struct {
	name  string
	value uint8
}

// TargetControl is the family gating lifecycle control of a process.
var TargetControl = Target{name: "control", value: 0}

// TargetValues returns all known targets.
func TargetValues() []Target {
	return []Target{TargetControl}
}

// TargetNames returns the names of all known targets.
func TargetNames() []string {
	values := TargetValues()
	res := make([]string, 0, len(values))
	for _, t := range values {
		res = append(res, t.name)
	}
	return res
}

// ParseTarget converts a family name to a Target, matching case-insensitively.
func ParseTarget(v string) (Target, error) {
	for _, t := range TargetValues() {
		if strings.EqualFold(v, t.name) {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, v)
}

// MustTarget is like ParseTarget but panics on error.
func MustTarget(v string) Target {
	t, err := ParseTarget(v)
	if err != nil {
		panic(err)
	}
	return t
}

// String implements fmt.Stringer
func (e Target) String() string {
	return e.name
}

// MarshalText implements encoding.TextMarshaler
func (e Target) MarshalText() ([]byte, error) {
	return []byte(e.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Target) UnmarshalText(text []byte) error {
	t, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*e = t
	return nil
}

// Value implements driver.Valuer
func (e Target) Value() (driver.Value, error) {
	return e.name, nil
}

// Scan implements sql.Scanner, NULL scans to the first known target
func (e *Target) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*e = TargetValues()[0]
		return nil
	case string:
		return e.UnmarshalText([]byte(v))
	case []byte:
		return e.UnmarshalText(v)
	}
	return fmt.Errorf("invalid target value: %v", value)
}
