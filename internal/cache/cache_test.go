package cache

import (
	"context"
	"path/filepath"
	"testing"

	"server-scribe/internal/catalog"

	"github.com/stretchr/testify/require"
)

func TestKeysAreLowercased(t *testing.T) {
	require.Equal(t, "PF_COMMAND:greet", CommandKey("GREET"))
	require.Equal(t, "PF_VERSION:compact", VersionKey("Compact"))
}

func TestPutAndGetCommand(t *testing.T) {
	c := New()

	cmd := catalog.Command{
		ID:      "cmd-1",
		Name:    "Greet",
		Aliases: []string{"hello"},
		Contents: []catalog.ContentVariant{
			{VersionID: catalog.GenericVersionID, Title: "Hello"},
		},
	}
	require.NoError(t, c.PutCommand(cmd))

	got, ok := c.GetCommand("greet")
	require.True(t, ok)
	require.Equal(t, "cmd-1", got.ID)

	viaAlias, ok := c.GetCommand("HELLO")
	require.True(t, ok)
	require.Equal(t, "cmd-1", viaAlias.ID)

	_, ok = c.GetCommand("missing")
	require.False(t, ok)

	c.DeleteCommand(cmd)
	_, ok = c.GetCommand("greet")
	require.False(t, ok)
	_, ok = c.GetCommand("hello")
	require.False(t, ok)
}

func TestGetCommandIgnoresCorruptSnapshot(t *testing.T) {
	c := New()
	c.Set(CommandKey("broken"), []byte("{not json"))

	_, ok := c.GetCommand("broken")
	require.False(t, ok)
}

func TestRefreshMirrorsStore(t *testing.T) {
	store, err := catalog.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, store.ApplyMigrations())
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	_, err = store.CreateCommand(ctx, catalog.Command{
		Name:    "greet",
		Aliases: []string{"hello"},
		Contents: []catalog.ContentVariant{
			{VersionID: catalog.GenericVersionID, Title: "Hello"},
		},
	})
	require.NoError(t, err)
	_, err = store.CreateVersion(ctx, catalog.Version{Name: "compact", Enabled: true})
	require.NoError(t, err)

	c := New()
	c.Set(CommandKey("stale"), []byte(`{"id":"old"}`))
	require.NoError(t, c.Refresh(ctx, store))

	// command, alias and version keys; the stale entry is gone
	require.Equal(t, 3, c.Len())

	cmd, ok := c.GetCommand("hello")
	require.True(t, ok)
	require.Equal(t, "greet", cmd.Name)

	v, ok := c.GetVersion("compact")
	require.True(t, ok)
	require.True(t, v.Enabled)

	_, ok = c.GetCommand("stale")
	require.False(t, ok)
}
