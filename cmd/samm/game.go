package main

import (
	"fmt"
	"sort"

	"samm/internal/core"
	"samm/internal/domain"
	"samm/internal/storage/config"

	"github.com/spf13/cobra"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Game management commands",
	Long:  `Commands for pointing samm at a game installation.`,
}

var gameSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Detect the game installed at a directory and make it current",
	Long: `Detect which game is installed at path and remember it.

When the directory holds the storefront release, samm explains how to
convert it and offers to download the converter.

Example:
  samm game set ~/.steam/steam/steamapps/common/"Sonic Adventure DX"`,
	Args: cobra.ExactArgs(1),
	RunE: runGameSet,
}

var gameShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current game",
	Args:  cobra.NoArgs,
	RunE:  runGameShow,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported games and where they were found",
	Args:  cobra.NoArgs,
	RunE:  runGameList,
}

var gameForgetCmd = &cobra.Command{
	Use:   "forget <game>",
	Short: "Forget a remembered installation (sadx or sa2)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGameForget,
}

var gameSetNoConverter bool

func init() {
	gameSetCmd.Flags().BoolVar(&gameSetNoConverter, "no-converter", false, "do not offer the converter for the storefront release")

	gameCmd.AddCommand(gameSetCmd)
	gameCmd.AddCommand(gameShowCmd)
	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameForgetCmd)
	rootCmd.AddCommand(gameCmd)
}

func runGameSet(cmd *cobra.Command, args []string) error {
	path, err := config.ParseGameDir(args[0])
	if err != nil {
		return err
	}

	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	id, err := s.svc.SetGamePath(cmd.Context(), path, core.ResolveOptions{
		OfferModInstaller: !gameSetNoConverter,
	})
	if err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	if id == domain.GameNone {
		return fmt.Errorf("%w: no supported game found at %s", domain.ErrGameNotFound, path)
	}

	game, _ := s.svc.CurrentGame()
	cmd.Printf("%s set to %s\n", game.Name, game.Directory)
	if !game.Loader.Installed {
		cmd.Println("The mod loader is not installed yet; run 'samm loader install'")
	}
	return nil
}

func runGameShow(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		profile, _ := s.svc.ActiveProfile()

		cmd.Printf("Game:      %s (%s)\n", game.Name, game.ID)
		cmd.Printf("Directory: %s\n", game.Directory)
		cmd.Printf("Mods:      %s\n", game.ModDirectory())
		cmd.Printf("Profiles:  %s\n", game.ProfilesDir)
		cmd.Printf("Profile:   %s\n", profile)
		return nil
	})
}

func runGameList(cmd *cobra.Command, args []string) error {
	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	remembered := s.svc.RememberedGames()
	current := s.svc.Session().CurrentID()

	all := s.svc.Session().Registry().All()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for _, g := range all {
		marker := " "
		if g.ID == current {
			marker = "*"
		}
		path := remembered[g.ID]
		if path == "" {
			path = "(not set)"
		}
		cmd.Printf("%s %-5s %-20s %s\n", marker, g.Abbreviation, g.Name, path)
	}
	return nil
}

func runGameForget(cmd *cobra.Command, args []string) error {
	id := domain.ParseGameID(args[0])
	if id == domain.GameNone {
		return fmt.Errorf("%w: %s", domain.ErrGameNotFound, args[0])
	}

	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	if err := s.svc.ForgetGame(id); err != nil {
		return err
	}
	cmd.Printf("Forgot %s\n", id)
	return nil
}
