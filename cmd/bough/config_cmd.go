package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage bough configuration.

Config file: ~/.config/bough/config.toml
Environment overrides: BOUGH_ROOT, BOUGH_REPO, BOUGH_BASE_BRANCH,
BOUGH_REMOTE, BOUGH_AGENT_COMMAND, BOUGH_AGENT_ARGS,
BOUGH_AGENT_TIMEOUT_MINUTES`,
		Example: `  bough config init   # Create default config file
  bough config show   # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create a commented default config file at ~/.config/bough/config.toml.

Edit at least the root setting afterwards; everything else has working
defaults.`,
		Example: `  bough config init       # Create config file
  bough config init -f    # Overwrite existing config
  bough config init -s    # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if stdout {
				out.Print(config.DefaultTOML())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration after file and environment
overrides are applied.`,
		Example: `  bough config show
  bough config show --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			return runConfigShow(cfg, out, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runConfigShow(cfg *config.Config, out *output.Printer, jsonOutput bool) error {
	if jsonOutput {
		return out.JSON(cfg)
	}

	out.Printf("Config file: %s\n", config.PathHint())
	out.Println()

	root := cfg.Root
	if root == "" {
		root = "(not set)"
	}
	repoNote := ""
	if cfg.Repo == "" {
		repoNote = " (default)"
	}

	out.Printf("root:        %s\n", root)
	out.Printf("repo:        %s%s\n", cfg.RepoPath(), repoNote)
	out.Printf("base_branch: %s\n", cfg.BaseBranch)
	out.Printf("remote:      %s\n", cfg.Remote)
	out.Printf("agent:       %s (timeout %s)\n",
		strings.TrimSpace(cfg.Agent.Command+" "+strings.Join(cfg.Agent.Args, " ")), cfg.Agent.Timeout())
	if cfg.UI.Theme != "" || cfg.UI.Mode != "" {
		out.Printf("ui:          theme %s, mode %s\n", orDefault(cfg.UI.Theme, "default"), orDefault(cfg.UI.Mode, "auto"))
	}
	if len(cfg.Preserve.Patterns) > 0 {
		out.Printf("preserve:    %s\n", strings.Join(cfg.Preserve.Patterns, ", "))
	}
	if n := len(cfg.Hooks.PostStart) + len(cfg.Hooks.PostSync); n > 0 {
		out.Printf("hooks:       %d post_start, %d post_sync\n", len(cfg.Hooks.PostStart), len(cfg.Hooks.PostSync))
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
