package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity is an extracurricular offering with a capacity-bounded roster.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft reports how many more participants the activity accepts.
func (a Activity) SpotsLeft() int {
	if left := a.MaxParticipants - len(a.Participants); left > 0 {
		return left
	}
	return 0
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// CatalogEntry pairs an activity with its name.
type CatalogEntry struct {
	Name     string
	Activity Activity
}

// Catalog is an ordered set of activities. Its JSON form is an object keyed
// by activity name whose members keep the catalog order.
type Catalog []CatalogEntry

// Lookup returns the activity registered under name.
func (c Catalog) Lookup(name string) (Activity, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Activity, true
		}
	}
	return Activity{}, false
}

// Names lists activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Activity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	out := Catalog{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected activity name, got %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("catalog: activity %q: %w", name, err)
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		out = append(out, CatalogEntry{Name: name, Activity: a})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
