// Package target classifies bundler platform identifiers into the execution
// environment a template is compiled for.
package target

// Environment is the runtime a compiled template will execute in.
type Environment int

const (
	// Browser is the default environment for any unrecognised target.
	Browser Environment = iota

	// Server covers node-like runtimes and embedding shells.
	Server
)

// String returns the environment name.
func (e Environment) String() string {
	if e == Server {
		return "server"
	}
	return "browser"
}

// Classify maps a raw bundler target onto an Environment.
// An empty target (no target configured) is treated as Browser.
func Classify(raw string) Environment {
	switch raw {
	case "server", "node", "async-node", "atom", "electron", "electron-main":
		return Server
	default:
		return Browser
	}
}
