package core

// registry indexes commands by name and by every alias.
var registry = map[string]Command{}

// RegisterCommand makes cmd resolvable by its name and each of its aliases.
// Later registrations with the same name overwrite earlier ones.
func RegisterCommand(cmd Command) {
	registry[cmd.Name()] = cmd
	for _, alias := range cmd.Aliases() {
		registry[alias] = cmd
	}
}

// GetCommand looks up a command by name or alias.
func GetCommand(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

// AllCommands returns each registered command exactly once, with alias
// entries folded into their command.
func AllCommands() []Command {
	seen := make(map[string]struct{}, len(registry))
	cmds := make([]Command, 0, len(registry))
	for _, cmd := range registry {
		if _, dup := seen[cmd.Name()]; dup {
			continue
		}
		seen[cmd.Name()] = struct{}{}
		cmds = append(cmds, cmd)
	}
	return cmds
}
