package ctrlperm

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidAction is returned when an action list contains a token that is not
// one of the known lifecycle actions or the "*" wildcard.
var ErrInvalidAction = errors.New("invalid action")

// Wildcard is the action token implying all actions for a target.
const Wildcard = "*"

// Action is a bitmask of the lifecycle-control operations a permission grants.
// The zero value grants nothing.
type Action uint8

// the four independent action bits
const (
	ActionStart Action = 1 << iota
	ActionStop
	ActionShutdown
	ActionReload
)

// ActionAll is the full mask, what the "*" wildcard parses to.
const ActionAll = ActionStart | ActionStop | ActionShutdown | ActionReload

// actionNames fixes the canonical rendering order: start, stop, shutdown, reload
var actionNames = []struct {
	action Action
	name   string
}{
	{ActionStart, "start"},
	{ActionStop, "stop"},
	{ActionShutdown, "shutdown"},
	{ActionReload, "reload"},
}

// ParseActions converts a comma-separated action list to a mask. Tokens are
// trimmed and matched case-insensitively, duplicates are idempotent and empty
// tokens are skipped, so an empty list yields the empty mask without error.
// The "*" wildcard returns ActionAll right away, ignoring anything after it;
// tokens before it are still validated.
func ParseActions(list string) (Action, error) {
	var mask Action
tokens:
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == Wildcard {
			return ActionAll, nil
		}
		for _, e := range actionNames {
			if strings.EqualFold(tok, e.name) {
				mask |= e.action
				continue tokens
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, tok)
	}
	return mask, nil
}

// MustActions is like ParseActions but panics on error.
func MustActions(list string) Action {
	mask, err := ParseActions(list)
	if err != nil {
		panic(err)
	}
	return mask
}

// Has reports whether a contains every bit of other.
func (a Action) Has(other Action) bool {
	return a&other == other
}

// String returns the mask in canonical comma-separated form, empty for the
// empty mask.
func (a Action) String() string {
	var b strings.Builder
	for _, e := range actionNames {
		if a&e.action == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.name)
	}
	return b.String()
}

// ActionValues returns all single-bit actions in canonical order.
func ActionValues() []Action {
	res := make([]Action, 0, len(actionNames))
	for _, e := range actionNames {
		res = append(res, e.action)
	}
	return res
}

// ActionNames returns the names of all single-bit actions in canonical order.
func ActionNames() []string {
	res := make([]string, 0, len(actionNames))
	for _, e := range actionNames {
		res = append(res, e.name)
	}
	return res
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	mask, err := ParseActions(string(text))
	if err != nil {
		return err
	}
	*a = mask
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (a Action) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return a.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer
func (a Action) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner, NULL scans to the empty mask
func (a *Action) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = 0
		return nil
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	}
	return fmt.Errorf("invalid action value: %v", value)
}
