package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
)

// CLI holds every setting. Flags override values from the YAML config file.
type CLI struct {
	Config      string `help:"YAML config file (flags take precedence)." type:"path" placeholder:"FILE"`
	Debug       bool   `help:"Draw the physics overlay and hot-reload prefab specs from disk."`
	Demo        bool   `help:"Drive the player from a script instead of the keyboard."`
	Script      string `help:"Demo script under prefabs/scripts." default:"demo.tengo"`
	Level       string `help:"Campus map in levels/." default:"campus.json"`
	Bindings    string `help:"Bindings spec in prefabs/." default:"bindings.yaml"`
	LogLevel    string `help:"Log level." default:"info" enum:"debug,info,warn,error"`
	BaseMonitor bool   `help:"Use the base monitor instead of the primary one." short:"m"`
}

func (c CLI) options() Options {
	return Options{
		Debug:    c.Debug,
		Demo:     c.Demo,
		Script:   c.Script,
		Level:    c.Level,
		Bindings: c.Bindings,
	}
}

// configCandidates lists YAML config files in load order: the user's
// --config, then ./campus.yaml, then the per-user config dir.
func configCandidates(userPath string) []string {
	var paths []string
	if userPath != "" {
		paths = append(paths, userPath)
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, "campus.yaml"), filepath.Join(wd, "campus.yml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "campus", "config.yaml"))
	}
	return paths
}

// findUserConfig pre-scans args for --config so the file can be handed to
// kong before parsing.
func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("CAMPUS_CONFIG")
}

func newParser(cli *CLI, configPaths ...string) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("campus"),
		kong.Description("Top-down campus walker."),
		kong.UsageOnError(),
		kong.Configuration(kongyaml.Loader, configPaths...),
	)
}
