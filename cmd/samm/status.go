package main

import (
	"fmt"

	"samm/internal/core"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the current game's mod setup",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent installs and updates",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyLimit int
	historyPrune int
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	historyCmd.Flags().IntVar(&historyPrune, "prune", 0, "delete all but the newest N entries")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		profile, _ := s.svc.ActiveProfile()

		cmd.Printf("%s at %s\n", game.Name, game.Directory)
		cmd.Printf("Profile: %s\n", profile)

		loader := "not installed"
		if game.Loader.Installed {
			loader = "installed"
			if v := core.ReadVersionStamp(game.Loader.VersionPath); v != "" {
				loader = fmt.Sprintf("installed (%s)", shortHash(v))
			}
		}
		cmd.Printf("Loader:  %s\n", loader)
		if ev, err := s.svc.DB().LatestInstall(game.ID.String(), game.Loader.Name); err == nil && ev != nil {
			cmd.Printf("         last %s %s on %s\n", ev.Source, ev.Kind, ev.RecordedAt.Local().Format("2006-01-02 15:04"))
		}
		cmd.Printf("Linking: %s\n", s.svc.Installer().LinkMethod())

		for _, dep := range game.Dependencies {
			state := "missing"
			if core.DependencyInstalled(dep) {
				state = "installed"
			}
			cmd.Printf("%-8s %s\n", dep.Name+":", state)
		}

		if len(game.Dependencies) > 0 {
			d3d := s.svc.Installer().D3D8to9Status(game)
			cmd.Printf("D3D8to9: %v\n", d3d.Enabled)
		}
		return nil
	})
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		gameID := game.ID.String()

		if historyPrune > 0 {
			n, err := s.svc.DB().PruneInstalls(gameID, historyPrune)
			if err != nil {
				return fmt.Errorf("pruning history: %w", err)
			}
			cmd.Printf("Removed %d entries\n", n)
		}

		events, err := s.svc.DB().ListInstalls(gameID, historyLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(events) == 0 {
			cmd.Println("No installs recorded")
			return nil
		}
		for _, ev := range events {
			cmd.Printf("%s  %-14s %-10s %-8s %s\n",
				ev.RecordedAt.Local().Format("2006-01-02 15:04"),
				ev.Component, ev.Kind, ev.Source, shortHash(ev.Version))
		}
		return nil
	})
}
