package main

import (
	"samm/internal/core"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Manage the loader's native dependencies",
}

var depsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install missing dependencies",
	Long: `Download every dependency that is not installed yet. A dependency that
cannot be downloaded is installed from the copy bundled with samm.`,
	Args: cobra.NoArgs,
	RunE: runDepsInstall,
}

var depsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dependencies and whether they are installed",
	Args:  cobra.NoArgs,
	RunE:  runDepsList,
}

func init() {
	depsCmd.AddCommand(depsInstallCmd)
	depsCmd.AddCommand(depsListCmd)
	rootCmd.AddCommand(depsCmd)
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		s.svc.Installer().InstallMissingDependencies(cmd.Context(), game)
		return nil
	})
}

func runDepsList(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		if len(game.Dependencies) == 0 {
			cmd.Printf("%s has no dependencies\n", game.Name)
			return nil
		}
		for _, dep := range game.Dependencies {
			state := "missing"
			if core.DependencyInstalled(dep) {
				state = "installed"
			}
			cmd.Printf("%-8s %-9s %s\n", dep.Name, state, dep.Path)
		}
		return nil
	})
}
