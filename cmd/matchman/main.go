package main

import (
	"fmt"
	"os"

	"matchman/internal/catalog"
	"matchman/internal/config"
	"matchman/internal/gui"
	"matchman/internal/log"
	"matchman/internal/session"
	"matchman/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile  string
	matchDir string
	debug    bool
	cfg      *config.Config
)

// Entry point for the application
func main() {
	rootCmd := &cobra.Command{
		Use:     "matchman",
		Short:   "Manage espanso text-expansion matches",
		Long:    `Matchman browses, filters, creates, edits and deletes the trigger/replacement matches stored in your espanso match files.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				fmt.Printf("Warning: %v. Using default settings.\n", err)
				cfg = config.New()
			}
			if matchDir != "" {
				cfg.Matches.Dir = matchDir
			}
			if debug {
				cfg.Debug = true
			}
			log.SetDebug(cfg.Debug)
		},
		// Running without a subcommand opens the GUI, like the original
		// desktop app.
		Run: func(cmd *cobra.Command, args []string) {
			runGUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/matchman/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&matchDir, "match-dir", "", "match directory (default is the espanso match folder)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(filesCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newController() *session.Controller {
	return session.New(catalog.New(cfg.MatchDir(), cfg.Matches.Patterns))
}

// runGUI launches the GUI
func runGUI() {
	guiApp := gui.NewApp(cfg, newController())
	guiApp.Run()
}

// guiCmd creates the GUI command for the CLI
func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical match editor",
		Run: func(cmd *cobra.Command, args []string) {
			runGUI()
		},
	}
}

// tuiCmd represents the terminal browser command
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse matches in the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			m := tui.New(newController())
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				fmt.Printf("Error running TUI: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

// filesCmd lists the match files in the configuration directory
func filesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the match files in the configuration directory",
		Run: func(cmd *cobra.Command, args []string) {
			names := catalog.New(cfg.MatchDir(), cfg.Matches.Patterns).List()
			if len(names) == 0 {
				fmt.Printf("No match files in %s\n", cfg.MatchDir())
				return
			}
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}
}

// listCmd prints the matches of one file (or of the first file)
func listCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "Print the matches of a match file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := newController()
			if len(args) > 0 {
				if err := ctrl.SelectFile(args[0]); err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
			}
			if ctrl.Selected() == "" {
				fmt.Printf("No match files in %s\n", cfg.MatchDir())
				return nil
			}
			ctrl.SetFilter(filter)

			entries := ctrl.FilteredMatches()
			fmt.Printf("%s: %s\n", ctrl.Selected(), ctrl.StatusLine())
			for _, e := range entries {
				fmt.Printf("  %-20s %s\n", e.Trigger, e.Replace)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show matches containing this text")

	return cmd
}
