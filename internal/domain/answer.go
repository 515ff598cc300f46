package domain

import (
	"sort"
	"time"
)

// StageAnswer is the accumulated result of one stage.
// Values holds single-select and scalar fields, Lists holds multi-select
// and free-text sets in selection order, Maps holds keyed entries such as
// per-feature priorities.
type StageAnswer struct {
	Stage     StageName                    `json:"stage" yaml:"stage"`
	Timestamp time.Time                    `json:"timestamp" yaml:"timestamp"`
	Values    map[string]string            `json:"values,omitempty" yaml:"values,omitempty"`
	Lists     map[string][]string          `json:"lists,omitempty" yaml:"lists,omitempty"`
	Maps      map[string]map[string]string `json:"maps,omitempty" yaml:"maps,omitempty"`
}

// NewStageAnswer creates an empty answer for a stage
func NewStageAnswer(stage StageName) StageAnswer {
	return StageAnswer{
		Stage:  stage,
		Values: make(map[string]string),
		Lists:  make(map[string][]string),
		Maps:   make(map[string]map[string]string),
	}
}

// Value returns a scalar field, or "" when unset
func (a StageAnswer) Value(field string) string {
	return a.Values[field]
}

// List returns a copy of a list field
func (a StageAnswer) List(field string) []string {
	src := a.Lists[field]
	if len(src) == 0 {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// MapValue returns one entry of a keyed field
func (a StageAnswer) MapValue(field, key string) string {
	return a.Maps[field][key]
}

// Map returns a copy of a keyed field
func (a StageAnswer) Map(field string) map[string]string {
	src := a.Maps[field]
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Contains reports whether a list field holds value
func (a StageAnswer) Contains(field, value string) bool {
	for _, v := range a.Lists[field] {
		if v == value {
			return true
		}
	}
	return false
}

// SetValue overwrites a scalar field; an empty value clears it
func (a *StageAnswer) SetValue(field, value string) {
	if a.Values == nil {
		a.Values = make(map[string]string)
	}
	if value == "" {
		delete(a.Values, field)
		return
	}
	a.Values[field] = value
}

// Toggle adds value to a list field if absent and removes it if present.
// It returns true when the value ends up selected.
func (a *StageAnswer) Toggle(field, value string) bool {
	if a.Lists == nil {
		a.Lists = make(map[string][]string)
	}
	list := a.Lists[field]
	for i, v := range list {
		if v == value {
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(a.Lists, field)
			} else {
				a.Lists[field] = list
			}
			return false
		}
	}
	a.Lists[field] = append(list, value)
	return true
}

// SetMapValue sets one entry of a keyed field; an empty value clears it
func (a *StageAnswer) SetMapValue(field, key, value string) {
	if a.Maps == nil {
		a.Maps = make(map[string]map[string]string)
	}
	m := a.Maps[field]
	if value == "" {
		if m != nil {
			delete(m, key)
			if len(m) == 0 {
				delete(a.Maps, field)
			}
		}
		return
	}
	if m == nil {
		m = make(map[string]string)
		a.Maps[field] = m
	}
	m[key] = value
}

// IsEmpty reports whether no field has been answered
func (a StageAnswer) IsEmpty() bool {
	return len(a.Values) == 0 && len(a.Lists) == 0 && len(a.Maps) == 0
}

// Clone returns a deep copy
func (a StageAnswer) Clone() StageAnswer {
	out := NewStageAnswer(a.Stage)
	out.Timestamp = a.Timestamp
	for k, v := range a.Values {
		out.Values[k] = v
	}
	for k, v := range a.Lists {
		out.Lists[k] = append([]string(nil), v...)
	}
	for k, m := range a.Maps {
		cp := make(map[string]string, len(m))
		for mk, mv := range m {
			cp[mk] = mv
		}
		out.Maps[k] = cp
	}
	return out
}

// Fields returns the names of every answered field, sorted
func (a StageAnswer) Fields() []string {
	var names []string
	for k := range a.Values {
		names = append(names, k)
	}
	for k := range a.Lists {
		names = append(names, k)
	}
	for k := range a.Maps {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
