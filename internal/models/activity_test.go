package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_MarshalKeepsOrder(t *testing.T) {
	catalog := Catalog{
		{Name: "Programming Class", Activity: Activity{Description: "p", Schedule: "Tue", MaxParticipants: 20, Participants: []string{"emma@mergington.edu"}}},
		{Name: "Chess Club", Activity: Activity{Description: "c", Schedule: "Fri", MaxParticipants: 12, Participants: []string{}}},
	}

	data, err := json.Marshal(catalog)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"Programming Class": {"description":"p","schedule":"Tue","max_participants":20,"participants":["emma@mergington.edu"]},
		"Chess Club": {"description":"c","schedule":"Fri","max_participants":12,"participants":[]}
	}`, string(data))
	assert.Less(t, strings.Index(string(data), "Programming Class"), strings.Index(string(data), "Chess Club"))
}

func TestCatalog_UnmarshalKeepsOrder(t *testing.T) {
	var catalog Catalog
	err := json.Unmarshal([]byte(`{
		"Zeta": {"description":"z","schedule":"Mon","max_participants":1},
		"Alpha": {"description":"a","schedule":"Tue","max_participants":2,"participants":["x@y.z"]}
	}`), &catalog)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha"}, catalog.Names())
	zeta, ok := catalog.Lookup("Zeta")
	require.True(t, ok)
	assert.NotNil(t, zeta.Participants)
	assert.Empty(t, zeta.Participants)

	_, ok = catalog.Lookup("Omega")
	assert.False(t, ok)
}

func TestCatalog_UnmarshalRejectsNonObject(t *testing.T) {
	var catalog Catalog
	assert.Error(t, json.Unmarshal([]byte(`["Chess Club"]`), &catalog))
}

func TestActivity_CloneAndSpotsLeft(t *testing.T) {
	a := Activity{MaxParticipants: 2, Participants: []string{"a@x", "b@x"}}
	c := a.Clone()
	c.Participants[0] = "changed"

	assert.Equal(t, "a@x", a.Participants[0])
	assert.Equal(t, 0, a.SpotsLeft())
	assert.Equal(t, 2, Activity{MaxParticipants: 2}.SpotsLeft())
}
