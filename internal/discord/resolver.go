package discord

import (
	"log"
	"regexp"
	"strings"

	"server-scribe/internal/cache"
	"server-scribe/internal/catalog"
)

// Resolver turns a raw message body into an executable prefix command, or
// nothing. It reads only the catalog mirror and never the durable store, so
// a lookup is a map read and a JSON decode.
type Resolver struct {
	prefix  string
	pattern *regexp.Regexp
	cache   *cache.Cache
}

// Resolution is a prefix command ready for the reply composer.
type Resolution struct {
	Command catalog.Command
	Version catalog.Version
	Content catalog.ContentVariant
}

func NewResolver(prefix string, c *cache.Cache) *Resolver {
	// Token1 is the first run of word/hyphen/underscore characters after the
	// prefix; token2, if any, is a second such run past any separator.
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `([\w\d_-]+)[^\w\d_-]*([\w\d_-]+)?`)
	return &Resolver{prefix: prefix, pattern: pattern, cache: c}
}

// Resolve parses body and resolves it against the catalog mirror. The second
// return is false whenever no reply should be sent; ordinary chat text lands
// there constantly, so every failure path is silent apart from a debug log.
func (r *Resolver) Resolve(body string) (Resolution, bool) {
	if !strings.HasPrefix(body, r.prefix) {
		return Resolution{}, false
	}

	match := r.pattern.FindStringSubmatch(body)
	if match == nil {
		return Resolution{}, false
	}
	commandText := match[1]

	// Token1 is tried as a version name first. Only when it names a cached
	// version does token2 take over as the command text; otherwise token1
	// doubles as the command candidate under the synthetic GENERIC version.
	version, versionCached := r.cache.GetVersion(commandText)
	if !versionCached {
		version = catalog.GenericVersion()
	}
	if versionCached && match[2] != "" {
		commandText = match[2]
	}
	if !version.Enabled {
		log.Printf("[DEBUG] Prefix Command - Version %q is disabled - Not executing command %q", version.Name, commandText)
		return Resolution{}, false
	}

	command, ok := r.cache.GetCommand(commandText)
	if !ok {
		return Resolution{}, false
	}

	content, ok := command.ContentFor(version.ID)
	if !ok {
		log.Printf("[DEBUG] Prefix Command - Version %q not found for command %q based on user command %q", version.Name, command.Name, commandText)
		return Resolution{}, false
	}

	log.Printf("[DEBUG] Prefix Command - Executing version %q for command %q based on user command %q", version.Name, command.Name, commandText)
	return Resolution{Command: command, Version: version, Content: content}, true
}
