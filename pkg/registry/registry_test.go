package registry

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mergington-activities/internal/common/errors"
)

func TestDefault(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	names := catalog.Names()
	assert.Equal(t, "Chess Club", names[0])
	assert.Contains(t, names, "Programming Class")

	programming, ok := catalog.Lookup("Programming Class")
	require.True(t, ok)
	assert.Contains(t, programming.Participants, "emma@mergington.edu")

	for _, entry := range catalog {
		assert.LessOrEqual(t, len(entry.Activity.Participants), entry.Activity.MaxParticipants, entry.Name)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "empty catalog",
			doc:     `{}`,
			wantMsg: "",
		},
		{
			name:    "missing schedule",
			doc:     `{"Chess Club": {"description": "d", "max_participants": 3, "participants": []}}`,
			wantMsg: "schedule",
		},
		{
			name:    "zero capacity",
			doc:     `{"Chess Club": {"description": "d", "schedule": "s", "max_participants": 0, "participants": []}}`,
			wantMsg: "max_participants",
		},
		{
			name:    "duplicate participants",
			doc:     `{"Chess Club": {"description": "d", "schedule": "s", "max_participants": 3, "participants": ["a@x", "a@x"]}}`,
			wantMsg: "participants",
		},
		{
			name:    "unknown field",
			doc:     `{"Chess Club": {"description": "d", "schedule": "s", "max_participants": 3, "participants": [], "room": "B2"}}`,
			wantMsg: "room",
		},
		{
			name:    "not an object",
			doc:     `["Chess Club"]`,
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, apperrors.ErrCatalogInvalid))
			if tt.wantMsg != "" {
				assert.Contains(t, apperrors.AsStandardError(err).Details, tt.wantMsg)
			}
		})
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"Chess Club":`))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrCatalogInvalid))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"Robotics": {"description": "Build robots", "schedule": "Mondays", "max_participants": 2, "participants": ["ada@mergington.edu"]},
		"Choir": {"description": "Sing", "schedule": "Tuesdays", "max_participants": 40, "participants": []}
	}`), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Robotics", "Choir"}, catalog.Names())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
