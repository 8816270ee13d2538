package domain

import "strings"

// Slots maps slot names to values. A nil value is an unfilled slot.
type Slots map[string]*string

// Value returns the trimmed slot value, or "" when the slot is missing or null.
func (s Slots) Value(name string) string {
	v, ok := s[name]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// Ptr returns the slot value as a pointer, nil when missing, null or blank.
func (s Slots) Ptr(name string) *string {
	v := s.Value(name)
	if v == "" {
		return nil
	}
	return &v
}

func (s Slots) Clone() Slots {
	if s == nil {
		return Slots{}
	}
	out := make(Slots, len(s))
	for k, v := range s {
		if v == nil {
			out[k] = nil
			continue
		}
		cp := *v
		out[k] = &cp
	}
	return out
}

// Without returns a copy of s with name cleared.
func (s Slots) Without(name string) Slots {
	out := s.Clone()
	out[name] = nil
	return out
}

func StringPtr(v string) *string {
	return &v
}

// SessionAttributes is the opaque state the platform round-trips between turns.
type SessionAttributes map[string]string

func (a SessionAttributes) Clone() SessionAttributes {
	out := make(SessionAttributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
