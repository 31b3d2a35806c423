// Package catalog holds the durable prefix-command catalog: commands with
// versioned content variants, versions, categories and role permissions.
package catalog

// GenericVersionID is the synthetic version used when a message carries no
// recognized version token.
const GenericVersionID = "GENERIC"

type Command struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Aliases            []string            `json:"aliases,omitempty"`
	Contents           []ContentVariant    `json:"contents,omitempty"`
	IsEmbed            bool                `json:"isEmbed"`
	EmbedColor         int                 `json:"embedColor,omitempty"`
	ChannelPermissions []ChannelPermission `json:"channelPermissions,omitempty"`
	RolePermissions    []RolePermission    `json:"rolePermissions,omitempty"`
}

// ContentFor returns the content variant authored for the given version.
func (c Command) ContentFor(versionID string) (ContentVariant, bool) {
	for _, content := range c.Contents {
		if content.VersionID == versionID {
			return content, true
		}
	}
	return ContentVariant{}, false
}

// PermissionFor returns the role permission for the given role, if any.
func (c Command) PermissionFor(roleID string) (RolePermission, bool) {
	for _, perm := range c.RolePermissions {
		if perm.RoleID == roleID {
			return perm, true
		}
	}
	return RolePermission{}, false
}

type ContentVariant struct {
	VersionID string `json:"versionId"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	Image     string `json:"image,omitempty"`
}

type Version struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// GenericVersion returns the always-enabled fallback version.
func GenericVersion() Version {
	return Version{ID: GenericVersionID, Name: GenericVersionID, Enabled: true}
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

type RolePermission struct {
	ID        string `json:"id"`
	CommandID string `json:"commandId"`
	RoleID    string `json:"roleId"`
	Type      string `json:"type"`
}

type ChannelPermission struct {
	ID        string `json:"id"`
	CommandID string `json:"commandId"`
	ChannelID string `json:"channelId"`
	Type      string `json:"type"`
}
