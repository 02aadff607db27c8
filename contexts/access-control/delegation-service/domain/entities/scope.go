package entities

import (
	"encoding/json"
	"sort"
)

// Scope is a tagged union: either All (a dynamic sentinel resolved lazily at
// evaluation time against the grantor's reach) or an explicit identifier set.
// All is never represented as a literal member of the set.
type Scope struct {
	all bool
	ids map[string]struct{}
}

// AllScope covers everything the grantor can reach at evaluation time.
func AllScope() Scope {
	return Scope{all: true}
}

// SpecificScope covers exactly the given identifiers.
func SpecificScope(ids ...string) Scope {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return Scope{ids: set}
}

func (s Scope) IsAll() bool { return s.all }

func (s Scope) IsEmpty() bool { return !s.all && len(s.ids) == 0 }

// Contains reports scope membership. All contains every identifier; the
// grantor-reach narrowing happens through capability intersection, not here.
func (s Scope) Contains(id string) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// IDs returns the explicit identifier set, sorted. Nil for All.
func (s Scope) IDs() []string {
	if s.all {
		return nil
	}
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type scopeJSON struct {
	All bool     `json:"all,omitempty"`
	IDs []string `json:"ids,omitempty"`
}

func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(scopeJSON{All: s.all, IDs: s.IDs()})
}

func (s *Scope) UnmarshalJSON(data []byte) error {
	var raw scopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.All {
		*s = AllScope()
		return nil
	}
	*s = SpecificScope(raw.IDs...)
	return nil
}
