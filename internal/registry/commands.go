package registry

// defaultCommands is the devlog shell command set, in help order
var defaultCommands = []Command{
	{
		Name:    "help",
		Aliases: []string{"h", "?"},
		Help:    "Show available commands\n\nUsage: help [command]",
	},
	{
		Name:    "add",
		Aliases: []string{"a"},
		Hints:   []string{"--recursive", "-r", "--pattern", "-p"},
		Help:    "Add log files or directories to the index\n\nUsage: add <path> [--recursive] [--pattern GLOB]",
	},
	{
		Name:    "remove",
		Aliases: []string{"rm", "del"},
		Hints:   []string{"--confirm", "-y"},
		Help:    "Remove an indexed file by its number\n\nUsage: remove <n> [--confirm]",
	},
	{
		Name:    "list",
		Aliases: []string{"ls"},
		Hints:   []string{"--sort", "-s", "--detailed", "-d"},
		Help:    "List indexed log files\n\nUsage: list [--sort size|name] [--detailed]",
	},
	{
		Name:    "analyze",
		Aliases: []string{"run"},
		Hints:   []string{"--file", "-f", "--limit", "-l", "--no-plugins"},
		Help:    "Analyze indexed files and keep the results\n\nUsage: analyze [--file N] [--limit N] [--no-plugins]",
	},
	{
		Name:    "predict",
		Aliases: []string{"pred"},
		Hints:   []string{"--conf", "-c", "--detailed", "-d"},
		Help:    "Classify the events of a single log file\n\nUsage: predict <path> [--conf MIN]",
	},
	{
		Name:    "filter",
		Aliases: []string{"where"},
		Hints:   []string{"--event", "--conf", "-c", "--limit", "-l"},
		Help:    "Filter the last results by status or event type\n\nUsage: filter [success|warning|failed] [--event TYPE] [--conf MIN]",
	},
	{
		Name:    "find",
		Aliases: []string{"search"},
		Hints:   []string{"--field", "-f", "--limit", "-l"},
		Help:    "Search the last results for a text fragment\n\nUsage: find <text> [--field NAME]",
	},
	{
		Name:    "stats",
		Aliases: []string{"st"},
		Hints:   []string{"--detailed", "-d"},
		Help:    "Summarize the last results\n\nUsage: stats [--detailed]",
	},
	{
		Name:  "load",
		Hints: []string{"--file", "-f"},
		Help:  "Load result records from a JSON or YAML file\n\nUsage: load <path>",
	},
	{
		Name:    "config",
		Aliases: []string{"cfg"},
		Hints:   []string{"--show", "--set"},
		Help:    "Show or change shell settings\n\nUsage: config --show | config --set key=value",
	},
	{
		Name:    "cls",
		Aliases: []string{"clear"},
		Help:    "Clear the screen",
	},
	{
		Name:    "exit",
		Aliases: []string{"quit", "q"},
		Help:    "Leave the shell",
	},
}

// Default returns a registry holding the devlog shell commands
func Default() *Registry {
	r, err := New(defaultCommands...)
	if err != nil {
		// The default table is static; a failure here is a programming error
		panic(err)
	}
	return r
}
