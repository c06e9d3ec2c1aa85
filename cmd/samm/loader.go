package main

import (
	"github.com/spf13/cobra"
)

var loaderCmd = &cobra.Command{
	Use:   "loader",
	Short: "Install and update the mod loader",
}

var loaderInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the mod loader into the game's mods directory",
	Long: `Download the mod loader and extract it into the mods directory.

When the download fails, the copy bundled with samm is installed instead
unless --force is given. The code and patch lists are refreshed afterwards.`,
	Args: cobra.NoArgs,
	RunE: runLoaderInstall,
}

var loaderUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the mod loader and its hook library",
	Long: `Download the latest mod loader and copy its library over the game's
data library. The backup of the original data library must exist, which
means the loader has been installed into the game before.`,
	Args: cobra.NoArgs,
	RunE: runLoaderUpdate,
}

var loaderCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a newer mod loader is available",
	Args:  cobra.NoArgs,
	RunE:  runLoaderCheck,
}

var loaderForce bool

func init() {
	loaderInstallCmd.Flags().BoolVarP(&loaderForce, "force", "f", false, "never fall back to the bundled loader")

	loaderCmd.AddCommand(loaderInstallCmd)
	loaderCmd.AddCommand(loaderUpdateCmd)
	loaderCmd.AddCommand(loaderCheckCmd)
	rootCmd.AddCommand(loaderCmd)
}

func runLoaderInstall(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		s.svc.Installer().InstallLoader(cmd.Context(), game, loaderForce)
		return nil
	})
}

func runLoaderUpdate(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		return boolResult(s.svc.Installer().UpdateLoader(cmd.Context(), game), "loader update")
	})
}

func runLoaderCheck(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		available, local, remote := s.svc.Installer().CheckLoaderUpdate(cmd.Context(), game)

		switch {
		case remote == "":
			cmd.Println("Could not reach the loader repository")
		case local == "":
			cmd.Printf("Installed version unknown; latest is %s\n", shortHash(remote))
		case available:
			cmd.Printf("Update available: %s -> %s\n", shortHash(local), shortHash(remote))
			cmd.Println("Run 'samm loader update' to install it")
		default:
			cmd.Printf("Mod loader is up to date (%s)\n", shortHash(local))
		}
		return nil
	})
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
