package db_test

import (
	"path/filepath"
	"testing"
	"time"

	"samm/internal/domain"
	"samm/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}

func event(component string, source domain.InstallSource, at time.Time) domain.InstallEvent {
	return domain.InstallEvent{
		GameID:     "sadx",
		Component:  component,
		Kind:       domain.ComponentDependency,
		Source:     source,
		RecordedAt: at,
	}
}

func TestNew_RunsMigrations(t *testing.T) {
	database := setupTestDB(t)

	var count int
	assert.NoError(t, database.QueryRow("SELECT COUNT(*) FROM install_events").Scan(&count))
	assert.NoError(t, database.QueryRow("SELECT COUNT(*) FROM api_tokens").Scan(&count))

	version, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samm.db")

	first, err := db.New(path)
	require.NoError(t, err)
	require.NoError(t, first.RecordInstall(event("BASS", domain.SourceOnline, time.Now())))
	require.NoError(t, first.Close())

	second, err := db.New(path)
	require.NoError(t, err)
	defer second.Close()

	events, err := second.ListInstalls("sadx", 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecordInstall_RoundTrip(t *testing.T) {
	database := setupTestDB(t)
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	ev := domain.InstallEvent{
		GameID:     "sadx",
		Component:  "SADXModLoader",
		Kind:       domain.ComponentLoader,
		Source:     domain.SourceOnline,
		Version:    "abc123",
		RecordedAt: at,
	}
	require.NoError(t, database.RecordInstall(ev))

	got, err := database.LatestInstall("sadx", "SADXModLoader")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ev.Kind, got.Kind)
	assert.Equal(t, ev.Source, got.Source)
	assert.Equal(t, "abc123", got.Version)
	assert.True(t, at.Equal(got.RecordedAt))
}

func TestRecordInstall_DefaultsTimestamp(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, database.RecordInstall(domain.InstallEvent{GameID: "sadx", Component: "Codes", Kind: domain.ComponentCodes, Source: domain.SourceOnline}))

	got, err := database.LatestInstall("sadx", "Codes")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got.RecordedAt, time.Minute)
}

func TestListInstalls_NewestFirst(t *testing.T) {
	database := setupTestDB(t)
	now := time.Now()

	require.NoError(t, database.RecordInstall(event("BASS", domain.SourceOnline, now)))
	require.NoError(t, database.RecordInstall(event("SDL2", domain.SourceFailed, now)))
	require.NoError(t, database.RecordInstall(event("BASS", domain.SourceOffline, now)))
	other := event("SA2ModLoader", domain.SourceOnline, now)
	other.GameID = "sa2"
	require.NoError(t, database.RecordInstall(other))

	events, err := database.ListInstalls("sadx", 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.SourceOffline, events[0].Source)
	assert.Equal(t, "SDL2", events[1].Component)

	limited, err := database.ListInstalls("sadx", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	latest, err := database.LatestInstall("sadx", "BASS")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceOffline, latest.Source)
}

func TestLatestInstall_None(t *testing.T) {
	database := setupTestDB(t)

	got, err := database.LatestInstall("sadx", "D3D8M")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestPruneInstalls(t *testing.T) {
	database := setupTestDB(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, database.RecordInstall(event("BASS", domain.SourceOnline, time.Now())))
	}

	removed, err := database.PruneInstalls("sadx", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	events, err := database.ListInstalls("sadx", 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestTokens(t *testing.T) {
	database := setupTestDB(t)

	token, err := database.GetToken("github")
	require.NoError(t, err)
	assert.Nil(t, token)

	require.NoError(t, database.SaveToken("github", "ghp_old"))
	require.NoError(t, database.SaveToken("github", "ghp_new"))

	token, err = database.GetToken("github")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "github", token.Host)
	assert.Equal(t, "ghp_new", token.Token)
	assert.False(t, token.UpdatedAt.IsZero())

	require.NoError(t, database.DeleteToken("github"))
	token, err = database.GetToken("github")
	require.NoError(t, err)
	assert.Nil(t, token)
}
