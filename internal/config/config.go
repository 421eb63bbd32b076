package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// AgentConfig holds configuration for the external resolution agent.
type AgentConfig struct {
	Command        string   `toml:"command" json:"command"`                 // executable name, default "claude"
	Args           []string `toml:"args" json:"args"`                       // default arguments, default enables unattended runs
	TimeoutMinutes int      `toml:"timeout_minutes" json:"timeout_minutes"` // hard per-invocation bound, default 5
}

// Timeout returns the agent invocation timeout as a duration.
func (a AgentConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMinutes) * time.Minute
}

// UIConfig holds theme-related configuration.
type UIConfig struct {
	Theme string `toml:"theme" json:"theme"` // theme name: default, dracula, nord, gruvbox, catppuccin, none
	Mode  string `toml:"mode" json:"mode"`   // "auto", "light", or "dark"
}

// PreserveConfig controls copying git-ignored files (env files, local
// overrides) from the primary checkout into newly started worktrees.
type PreserveConfig struct {
	Patterns []string `toml:"patterns" json:"patterns"` // basename globs of ignored files to copy
	Exclude  []string `toml:"exclude" json:"exclude"`   // path segments that exempt a file from copying
}

// HooksConfig holds shell commands run after lifecycle events. Commands
// run with the feature worktree as working directory; failures are
// reported as warnings, never as errors.
type HooksConfig struct {
	PostStart []string `toml:"post_start" json:"post_start"` // after a feature worktree is created
	PostSync  []string `toml:"post_sync" json:"post_sync"`   // after a successful sync
}

// Config holds the bough configuration.
type Config struct {
	Root       string         `toml:"root" json:"root"`               // base directory holding feature worktrees (required)
	Repo       string         `toml:"repo" json:"repo"`               // primary repository checkout, defaults to <root>/repo
	BaseBranch string         `toml:"base_branch" json:"base_branch"` // upstream branch features sync against, default "main"
	Remote     string         `toml:"remote" json:"remote"`           // remote the base branch is fetched from, default "origin"
	Agent      AgentConfig    `toml:"agent" json:"agent"`
	UI         UIConfig       `toml:"ui" json:"ui"`
	Preserve   PreserveConfig `toml:"preserve" json:"preserve"`
	Hooks      HooksConfig    `toml:"hooks" json:"hooks"`
}

// Error describes an invalid or incomplete configuration.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// DefaultAgentCommand is the external agent invoked for conflict resolution.
const DefaultAgentCommand = "claude"

// DefaultAgentArg allows the agent to edit files without interactive
// permission prompts, which unattended conflict resolution requires.
const DefaultAgentArg = "--dangerously-skip-permissions"

// Default returns the default configuration. Root is empty and must be
// provided via the config file or BOUGH_ROOT before worktree operations run.
func Default() Config {
	return Config{
		BaseBranch: "main",
		Remote:     "origin",
		Agent: AgentConfig{
			Command:        DefaultAgentCommand,
			Args:           []string{DefaultAgentArg},
			TimeoutMinutes: 5,
		},
		Preserve: PreserveConfig{
			Patterns: []string{".env", ".env.*"},
			Exclude:  []string{"node_modules"},
		},
	}
}

// RepoPath returns the primary repository checkout directory.
// Falls back to <root>/repo when repo is not configured.
func (c *Config) RepoPath() string {
	if c.Repo != "" {
		return c.Repo
	}
	return filepath.Join(c.Root, "repo")
}

// BaseRef returns the remote-tracking ref of the base branch, e.g. "origin/main".
func (c *Config) BaseRef() string {
	return c.Remote + "/" + c.BaseBranch
}

// Validate checks that the configuration is complete enough for worktree
// operations. Returns a *Error describing the first problem found.
func (c *Config) Validate() error {
	if c.Root == "" {
		return &Error{Msg: "bough root directory is not configured: set root in " + PathHint() + " or BOUGH_ROOT"}
	}
	if !filepath.IsAbs(c.Root) {
		return &Error{Msg: fmt.Sprintf("root must be an absolute path, got %q", c.Root)}
	}
	if c.Agent.Command == "" {
		return &Error{Msg: "agent.command must not be empty"}
	}
	if c.Agent.TimeoutMinutes <= 0 {
		return &Error{Msg: fmt.Sprintf("agent.timeout_minutes must be positive, got %d", c.Agent.TimeoutMinutes)}
	}
	return nil
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns an error for relative paths (like "." or "..").
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return &Error{Msg: fmt.Sprintf("%s must be absolute or start with ~, got: %q", fieldName, path)}
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bough", "config.toml"), nil
}

// PathHint returns the config file location for error messages.
func PathHint() string {
	path, err := configPath()
	if err != nil {
		return "~/.config/bough/config.toml"
	}
	return path
}

// Load reads config from ~/.config/bough/config.toml, then applies BOUGH_*
// environment overrides. Returns Default() if the file doesn't exist (no
// error). Returns an error only if the file exists but is invalid.
// Call [Config.Validate] before worktree operations; Load itself does not
// require root to be set so commands like "config init" still work.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return applyEnv(Default()), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(Default()), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg = applyEnv(cfg)

	for _, field := range []struct{ value, name string }{
		{cfg.Root, "root"},
		{cfg.Repo, "repo"},
	} {
		if err := ValidatePath(field.value, field.name); err != nil {
			return Default(), err
		}
	}

	// Expand ~ (the shell doesn't expand inside config files)
	if cfg.Root, err = expandPath(cfg.Root); err != nil {
		return Default(), fmt.Errorf("expand root: %w", err)
	}
	if cfg.Repo, err = expandPath(cfg.Repo); err != nil {
		return Default(), fmt.Errorf("expand repo: %w", err)
	}

	if cfg.UI.Mode != "" && cfg.UI.Mode != "auto" && cfg.UI.Mode != "light" && cfg.UI.Mode != "dark" {
		return Default(), &Error{Msg: fmt.Sprintf("invalid ui.mode %q: must be \"auto\", \"light\", or \"dark\"", cfg.UI.Mode)}
	}

	// Use defaults for values the file explicitly blanked
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = "main"
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Agent.Command == "" {
		cfg.Agent.Command = DefaultAgentCommand
	}
	if cfg.Agent.TimeoutMinutes == 0 {
		cfg.Agent.TimeoutMinutes = 5
	}

	return cfg, nil
}

// applyEnv overlays BOUGH_* environment variables onto cfg.
// Environment values win over file values.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("BOUGH_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("BOUGH_REPO"); v != "" {
		cfg.Repo = v
	}
	if v := os.Getenv("BOUGH_BASE_BRANCH"); v != "" {
		cfg.BaseBranch = v
	}
	if v := os.Getenv("BOUGH_REMOTE"); v != "" {
		cfg.Remote = v
	}
	if v := os.Getenv("BOUGH_AGENT_COMMAND"); v != "" {
		cfg.Agent.Command = v
	}
	if v := os.Getenv("BOUGH_AGENT_ARGS"); v != "" {
		cfg.Agent.Args = strings.Fields(v)
	}
	if v := os.Getenv("BOUGH_AGENT_TIMEOUT_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Agent.TimeoutMinutes = n
		}
	}
	return cfg
}

const defaultConfig = `# bough configuration

# Base directory holding feature worktrees (required)
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# Each feature gets a worktree at <root>/<feature-name>
root = "~/bough"

# Optional: path to the primary repository checkout
# Defaults to <root>/repo when not set
# repo = "~/Code/my-project"

# Upstream branch that feature branches are synced against
# base_branch = "main"

# Remote the base branch is fetched from
# remote = "origin"

# External agent used for automatic conflict resolution
# The agent is invoked with the conflict context on stdin and the feature
# worktree as its working directory. Override to integrate a different CLI.
#
# [agent]
# command = "claude"
# args = ["--dangerously-skip-permissions"]
# timeout_minutes = 5

# Terminal colors for status and doctor output
#
# [ui]
# theme = "default"   # default, dracula, nord, gruvbox, catppuccin, none
# mode = "auto"       # auto, light, dark

# Git-ignored files copied from the primary checkout into new worktrees
# Patterns match file basenames; exclude lists path segments to skip.
#
# [preserve]
# patterns = [".env", ".env.*"]
# exclude = ["node_modules"]

# Commands run after lifecycle events, with the worktree as working
# directory. Placeholders: {worktree}, {repo}, {branch}, {feature}, {base}.
# Failures are warnings, they never fail the command that triggered them.
#
# [hooks]
# post_start = ["direnv allow ."]
# post_sync = ["make deps"]
`

// DefaultTOML returns the commented default config file content.
func DefaultTOML() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/bough/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path + " (use --force to overwrite)")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
