// Package ctrlperm provides the permission value type gating lifecycle control
// (start, stop, shutdown, reload) of a controllable process. A Permission is a
// target family plus a bitmask of granted actions; an external checker
// authorizes a requested operation by building the required permission and
// asking each granted one whether it Implies it. Values are immutable after
// construction and safe to share without synchronization.
package ctrlperm

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// Permission is an immutable grant of actions on a target family. The zero
// value grants nothing and belongs to no family; construct with New or
// ParsePermission. Permissions are comparable and usable as map keys.
type Permission struct {
	target  Target
	actions Action
}

// New makes a permission for the given target family with the given
// comma-separated action list. An empty list grants nothing and is not an
// error. Fails with ErrInvalidTarget or ErrInvalidAction on bad input, and no
// partially constructed value is ever returned.
func New(target, actions string) (Permission, error) {
	tgt, err := ParseTarget(target)
	if err != nil {
		return Permission{}, err
	}
	mask, err := ParseActions(actions)
	if err != nil {
		return Permission{}, err
	}
	return Permission{target: tgt, actions: mask}, nil
}

// Must is like New but panics on error.
func Must(target, actions string) Permission {
	p, err := New(target, actions)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePermission converts the canonical "target" or "target:actions" form,
// as produced by Key, back to a permission.
func ParsePermission(s string) (Permission, error) {
	target, actions, _ := strings.Cut(s, ":")
	return New(target, actions)
}

// Target returns the permission family.
func (p Permission) Target() Target {
	return p.target
}

// Mask returns the raw action mask.
func (p Permission) Mask() Action {
	return p.actions
}

// Actions returns the granted actions in canonical order, empty when nothing
// is granted. Feeding the result back to New with the same target reproduces
// an equal permission.
func (p Permission) Actions() string {
	return p.actions.String()
}

// Equal reports whether both permissions belong to the same family and carry
// bit-for-bit equal masks. Casing and token order of the construction input
// never matter, both are normalized by New.
func (p Permission) Equal(other Permission) bool {
	return p.target == other.target && p.actions == other.actions
}

// Implies reports whether p is at least as permissive as other: never across
// families, within one iff p's granted bits are a superset of other's. The
// relation is reflexive and deliberately asymmetric, and a permission granting
// nothing implies only another one granting nothing.
func (p Permission) Implies(other Permission) bool {
	if p.target != other.target {
		return false
	}
	return p.actions.Has(other.actions)
}

// Key returns the canonical "target:actions" identity form, just the target
// name when nothing is granted. Equal permissions produce identical keys.
func (p Permission) Key() string {
	if p.actions == 0 {
		return p.target.name
	}
	return p.target.name + ":" + p.actions.String()
}

// String implements fmt.Stringer with a debug form like
// "ctrlperm.Permission[control:start,stop]".
func (p Permission) String() string {
	return fmt.Sprintf("ctrlperm.Permission[%s:%s]", p.target.name, p.actions.String())
}

// MarshalText implements encoding.TextMarshaler using the Key form.
func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Permission) UnmarshalText(text []byte) error {
	parsed, err := ParsePermission(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (p Permission) MarshalYAML() (any, error) {
	return p.Key(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Permission) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(s))
}

// MarshalBSONValue implements bson.ValueMarshaler
func (p Permission) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.Key())
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (p *Permission) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal bson value: %w", err)
	}
	return p.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer using the Key form.
func (p Permission) Value() (driver.Value, error) {
	return p.Key(), nil
}

// Scan implements sql.Scanner, NULL scans to the control permission granting
// nothing
func (p *Permission) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*p = Permission{target: TargetControl}
		return nil
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	}
	return fmt.Errorf("invalid permission value: %v", value)
}
