package discord

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Registered slash-command definitions are fingerprinted per guild on disk so
// restarts only re-register commands whose definition changed.

func guildCachePath(guildID string) string {
	return filepath.Join("data", "commands", guildID+".json")
}

func loadGuildCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)
	raw, err := os.ReadFile(guildCachePath(guildID))
	if err == nil {
		_ = json.Unmarshal(raw, &hashes)
	}
	return hashes
}

func saveGuildCommandHashes(guildID string, hashes map[string]string) {
	path := guildCachePath(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("[WARN] Failed to create command cache dir: %v", err)
		return
	}
	raw, _ := json.MarshalIndent(hashes, "", "  ")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		log.Printf("[WARN] Failed to save command cache for guild %s: %v", guildID, err)
	}
}
