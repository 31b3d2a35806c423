package discord

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"server-scribe/internal/cache"
	"server-scribe/internal/catalog"
	"server-scribe/internal/config"
	"server-scribe/internal/core"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	catalog  *catalog.Store
	cache    *cache.Cache
	cfg      *config.Config
	resolver *Resolver
	prefix   core.Command
}

func NewBot(cfg *config.Config, store *catalog.Store, c *cache.Cache) *Bot {
	b := &Bot{
		catalog:  store,
		cache:    c,
		cfg:      cfg,
		resolver: NewResolver(cfg.PrefixCommandPrefix, c),
	}
	b.prefix = core.ApplyMiddlewares(&prefixCommand{bot: b},
		core.WithGuildOnly(),
		core.WithCommandLogger(),
	)
	return b
}

// Run starts the Discord bot and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.refreshCacheLoop(ctx)

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
}

// refreshCacheLoop periodically rebuilds the catalog mirror so resolver
// staleness stays bounded by the configured interval.
func (b *Bot) refreshCacheLoop(ctx context.Context) {
	interval := b.cfg.CacheRefreshInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.cache.Refresh(ctx, b.catalog); err != nil {
				log.Println("[WARN] Catalog cache refresh failed:", err)
			}
		}
	}
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Println("[WARN] Error retrieving bot user:", err)
		return
	}

	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.ID, g.Name)
			if err := s.GuildLeave(g.ID); err != nil {
				log.Printf("[ERR] Failed to leave guild %s: %v", g.ID, err)
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
			}
		} else {
			log.Println("[INFO] Registering slash commands skipped")
		}
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", botInfo.Username)
}

// onGuildCreate is called when the bot joins a guild
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)

	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.Guild.ID, g.Guild.Name)
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Printf("[ERR] Failed to leave guild %s: %v", g.Guild.ID, err)
		}
		return
	}

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

// onMessageCreate runs every message through the prefix-command runner.
// Non-matching chat must stay silent: failures here are logged only and
// never produce a reply.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx := &core.MessageContext{
		Session: s,
		Event:   m,
		Catalog: b.catalog,
		Cache:   b.cache,
		Config:  b.cfg,
	}
	if err := b.prefix.Run(ctx); err != nil {
		log.Println("[ERR] Failed to send prefix command reply:", err)
	}
}

// onInteractionCreate dispatches slash commands through the registry
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := core.GetCommand(cmdName)
	if !ok {
		log.Printf("[WARN] Unknown command: %s\n", cmdName)
		return
	}

	ctx := &core.SlashInteractionContext{
		Session: s,
		Event:   i,
		Catalog: b.catalog,
		Cache:   b.cache,
		Config:  b.cfg,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running slash command:", err)
		_ = core.RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
	}
}

// registerCommands registers slash commands, skipping unchanged ones via the
// on-disk hash cache.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	existing, _ := b.dg.ApplicationCommands(appID, guildID)
	localHashes := loadGuildCommandHashes(guildID)

	var wanted []*discordgo.ApplicationCommand
	wantedHashes := make(map[string]string)
	for _, cmd := range core.AllCommands() {
		if def := normalizeDefinition(cmd); def != nil {
			wanted = append(wanted, def)
			wantedHashes[def.Name] = hashCommand(def)
		}
	}

	// Delete obsolete
	for _, old := range existing {
		if _, ok := wantedHashes[old.Name]; !ok {
			log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
			if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
			}
			delete(localHashes, old.Name)
		}
	}

	// Create or update changed commands
	var changed []*discordgo.ApplicationCommand
	for _, cmd := range wanted {
		if localHashes[cmd.Name] != wantedHashes[cmd.Name] {
			changed = append(changed, cmd)
		}
	}

	if len(changed) > 0 {
		log.Printf("[INFO] [%s] %d commands changed — updating with rate limit...", guildID, len(changed))
		b.registerCommandsWithRateLimit(guildID, changed)
		for _, c := range changed {
			localHashes[c.Name] = wantedHashes[c.Name]
		}
	}

	saveGuildCommandHashes(guildID, localHashes)
	return nil
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

// normalizeDefinition normalizes a command definition
func normalizeDefinition(cmd core.Command) *discordgo.ApplicationCommand {
	slash, ok := cmd.(core.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	if cmd.RequireAdmin() && def.DefaultMemberPermissions == nil {
		perms := int64(discordgo.PermissionAdministrator)
		def.DefaultMemberPermissions = &perms
	}
	return def
}

// registerCommandsWithRateLimit registers commands paced under the Discord
// rate limit.
func (b *Bot) registerCommandsWithRateLimit(guildID string, cmds []*discordgo.ApplicationCommand) {
	limiter := rate.NewLimiter(rate.Every(time.Second/40), 1)

	for _, cmd := range cmds {
		if err := limiter.Wait(context.Background()); err != nil {
			return
		}
		if _, err := b.dg.ApplicationCommandCreate(b.dg.State.User.ID, guildID, cmd); err != nil {
			log.Printf("[ERR] Can't create command %s: %v", cmd.Name, err)
		} else {
			log.Printf("[DONE] Command created: %s", cmd.Name)
		}
	}
}
