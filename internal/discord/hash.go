package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// commandFingerprint is the definition subset that matters for registration.
// Runtime fields (ids, application id, version) are left out so the hash is
// stable across sessions.
type commandFingerprint struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Type        int                 `json:"type"`
	Options     []optionFingerprint `json:"options,omitempty"`
}

type optionFingerprint struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Type        int                 `json:"type"`
	Required    bool                `json:"required"`
	Choices     []choiceFingerprint `json:"choices,omitempty"`
	Options     []optionFingerprint `json:"options,omitempty"`
}

type choiceFingerprint struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// hashCommand returns a deterministic hash of a command definition so
// registration can skip commands that did not change.
func hashCommand(cmd *discordgo.ApplicationCommand) string {
	fp := commandFingerprint{
		Name:        cmd.Name,
		Description: cmd.Description,
		Type:        int(cmd.Type),
		Options:     fingerprintOptions(cmd.Options),
	}
	data, _ := json.Marshal(fp)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func fingerprintOptions(opts []*discordgo.ApplicationCommandOption) []optionFingerprint {
	if len(opts) == 0 {
		return nil
	}
	out := make([]optionFingerprint, len(opts))
	for i, o := range opts {
		fp := optionFingerprint{
			Name:        o.Name,
			Description: o.Description,
			Type:        int(o.Type),
			Required:    o.Required,
			Options:     fingerprintOptions(o.Options),
		}
		for _, c := range o.Choices {
			fp.Choices = append(fp.Choices, choiceFingerprint{Name: c.Name, Value: c.Value})
		}
		out[i] = fp
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
