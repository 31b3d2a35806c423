package discord

import (
	"testing"

	"server-scribe/internal/cache"
	"server-scribe/internal/catalog"

	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c := cache.New()

	require.NoError(t, c.PutCommand(catalog.Command{
		ID:   "cmd-greet",
		Name: "greet",
		Contents: []catalog.ContentVariant{
			{VersionID: catalog.GenericVersionID, Title: "Hello"},
			{VersionID: "ver-compact", Title: "Hi"},
		},
	}))
	require.NoError(t, c.PutCommand(catalog.Command{
		ID:   "cmd-rules",
		Name: "rules",
		Contents: []catalog.ContentVariant{
			{VersionID: catalog.GenericVersionID, Title: "Rules", Content: "Be nice."},
		},
	}))
	require.NoError(t, c.PutVersion(catalog.Version{ID: "ver-compact", Name: "compact", Enabled: true}))
	require.NoError(t, c.PutVersion(catalog.Version{ID: "ver-legacy", Name: "legacy", Enabled: false}))

	return c
}

func TestResolveIgnoresNonPrefixedText(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	for _, body := range []string{"", "hello there", "greet", "?greet", "! "} {
		_, ok := r.Resolve(body)
		require.False(t, ok, "body %q must not resolve", body)
	}
}

func TestResolveGenericVersion(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	res, ok := r.Resolve("!greet")
	require.True(t, ok)
	require.Equal(t, "cmd-greet", res.Command.ID)
	require.Equal(t, catalog.GenericVersionID, res.Version.ID)
	require.Equal(t, "Hello", res.Content.Title)
}

func TestResolveUnknownCommandIsSilent(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	_, ok := r.Resolve("!nosuchcommand")
	require.False(t, ok)
}

func TestResolveVersionTokenSelectsVariant(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	res, ok := r.Resolve("!compact greet")
	require.True(t, ok)
	require.Equal(t, "cmd-greet", res.Command.ID)
	require.Equal(t, "ver-compact", res.Version.ID)
	require.Equal(t, "Hi", res.Content.Title)
}

func TestResolveDisabledVersionSuppressesExecution(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	_, ok := r.Resolve("!legacy greet")
	require.False(t, ok)
}

func TestResolveMissingVariantIsSilent(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	// rules has no compact variant
	_, ok := r.Resolve("!compact rules")
	require.False(t, ok)
}

func TestResolveVersionTokenAloneFallsThroughToCommandLookup(t *testing.T) {
	c := newTestCache(t)
	// a version whose name is also a command name
	require.NoError(t, c.PutCommand(catalog.Command{
		ID:   "cmd-compact",
		Name: "compact",
		Contents: []catalog.ContentVariant{
			{VersionID: "ver-compact", Title: "Compact self"},
		},
	}))
	r := NewResolver("!", c)

	// with no second token, token1 doubles as the command candidate
	res, ok := r.Resolve("!compact")
	require.True(t, ok)
	require.Equal(t, "cmd-compact", res.Command.ID)
	require.Equal(t, "ver-compact", res.Version.ID)
}

func TestResolveCaseInsensitiveCacheKeys(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	res, ok := r.Resolve("!GREET")
	require.True(t, ok)
	require.Equal(t, "cmd-greet", res.Command.ID)
}

func TestResolveTokenization(t *testing.T) {
	r := NewResolver("!", newTestCache(t))

	// anything non-token separates the two tokens
	res, ok := r.Resolve("!compact: greet please ignore the rest")
	require.True(t, ok)
	require.Equal(t, "cmd-greet", res.Command.ID)
	require.Equal(t, "ver-compact", res.Version.ID)
}
