// internal/directory/directory.go
package directory

import (
	"fmt"
	"sync"

	"github.com/samber/lo"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/models"
)

// entry guards one activity. Rosters of different activities never contend.
type entry struct {
	mu       sync.Mutex
	activity models.Activity
}

// Directory is the in-memory activity store. The set of activities is fixed
// at construction; only participant lists change afterwards.
type Directory struct {
	order   []string
	entries map[string]*entry
}

// New builds a directory from a seed catalog. Seeds with duplicate names,
// duplicate participants or rosters over capacity are rejected.
func New(catalog models.Catalog) (*Directory, error) {
	d := &Directory{
		order:   make([]string, 0, len(catalog)),
		entries: make(map[string]*entry, len(catalog)),
	}

	for _, e := range catalog {
		if _, exists := d.entries[e.Name]; exists {
			return nil, apperrors.NewCatalogInvalidError(fmt.Sprintf("duplicate activity %q", e.Name))
		}
		if e.Activity.MaxParticipants < 1 {
			return nil, apperrors.NewCatalogInvalidError(fmt.Sprintf("activity %q: max_participants must be at least 1", e.Name))
		}
		if dups := lo.FindDuplicates(e.Activity.Participants); len(dups) > 0 {
			return nil, apperrors.NewCatalogInvalidError(fmt.Sprintf("activity %q: duplicate participants %v", e.Name, dups))
		}
		if len(e.Activity.Participants) > e.Activity.MaxParticipants {
			return nil, apperrors.NewCatalogInvalidError(fmt.Sprintf("activity %q: %d participants exceed capacity %d",
				e.Name, len(e.Activity.Participants), e.Activity.MaxParticipants))
		}

		d.order = append(d.order, e.Name)
		d.entries[e.Name] = &entry{activity: e.Activity.Clone()}
	}

	return d, nil
}

// List returns a snapshot of every activity in catalog order. Each roster is
// read under its own lock, so the snapshot is consistent per activity.
func (d *Directory) List() models.Catalog {
	out := make(models.Catalog, 0, len(d.order))
	for _, name := range d.order {
		e := d.entries[name]
		e.mu.Lock()
		out = append(out, models.CatalogEntry{Name: name, Activity: e.activity.Clone()})
		e.mu.Unlock()
	}
	return out
}

// Get returns a snapshot of a single activity.
func (d *Directory) Get(name string) (models.Activity, error) {
	e, ok := d.entries[name]
	if !ok {
		return models.Activity{}, apperrors.NewActivityNotFoundError(name)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.Clone(), nil
}

// Names lists activity names in catalog order.
func (d *Directory) Names() []string {
	return append([]string(nil), d.order...)
}

// Signup appends email to the activity's roster and returns the updated
// activity. Checks run in order: existence, duplicate, capacity.
func (d *Directory) Signup(name, email string) (models.Activity, error) {
	e, ok := d.entries[name]
	if !ok {
		return models.Activity{}, apperrors.NewActivityNotFoundError(name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if lo.Contains(e.activity.Participants, email) {
		return models.Activity{}, apperrors.NewAlreadyEnrolledError(name, email)
	}
	if len(e.activity.Participants) >= e.activity.MaxParticipants {
		return models.Activity{}, apperrors.NewCapacityExceededError(name, e.activity.MaxParticipants)
	}

	e.activity.Participants = append(e.activity.Participants, email)
	return e.activity.Clone(), nil
}

// Unregister removes email from the activity's roster and returns the updated
// activity. The relative order of remaining participants is preserved.
func (d *Directory) Unregister(name, email string) (models.Activity, error) {
	e, ok := d.entries[name]
	if !ok {
		return models.Activity{}, apperrors.NewActivityNotFoundError(name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !lo.Contains(e.activity.Participants, email) {
		return models.Activity{}, apperrors.NewParticipantNotFoundError(name, email)
	}

	e.activity.Participants = lo.Without(e.activity.Participants, email)
	return e.activity.Clone(), nil
}
