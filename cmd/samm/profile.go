package main

import (
	"fmt"
	"os"

	"samm/internal/domain"
	"samm/internal/settings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile management commands",
	Long: `Profiles hold the loader settings for a game. Loading a profile migrates
it to the current format; saving it also regenerates the game's config.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles for the current game",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a profile as it loads after migration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileShow,
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileUse,
}

var profileApplyCmd = &cobra.Command{
	Use:   "apply [name]",
	Short: "Save a profile and write the game's config from it",
	Long: `Load a profile, migrating it when needed, save it back and regenerate
the game's config file. Without a name the active profile is applied. A
profile that does not exist yet is created from the defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileApply,
}

var profileConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the old loader settings into the default profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileConvert,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileApplyCmd)
	profileCmd.AddCommand(profileConvertCmd)
	rootCmd.AddCommand(profileCmd)
}

// profileName returns the named profile, or the active one
func profileName(s *session, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return s.svc.ActiveProfile()
}

// openProfile loads a profile through the store. A profile without a game
// path is bound to the current game directory.
func openProfile(s *session, args []string) (*settings.Store, *settings.GameSettings, string, error) {
	name, err := profileName(s, args)
	if err != nil {
		return nil, nil, "", err
	}
	store, game, err := s.svc.SettingsStore()
	if err != nil {
		return nil, nil, "", err
	}
	path := game.ProfilePath(name)
	gs := store.Load(path)
	if gs.GamePath == "" {
		gs.GamePath = game.Directory
	}
	return store, gs, path, nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		store, game, err := s.svc.SettingsStore()
		if err != nil {
			return err
		}
		names, err := store.ListProfiles()
		if err != nil {
			return err
		}
		active, _ := s.svc.ActiveProfile()

		if len(names) == 0 {
			cmd.Printf("No profiles for %s in %s\n", game.Name, game.ProfilesDir)
			return nil
		}
		for _, name := range names {
			marker := " "
			if name == active {
				marker = "*"
			}
			cmd.Printf("%s %s\n", marker, name)
		}
		return nil
	})
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		_, gs, _, err := openProfile(s, args)
		if err != nil {
			return err
		}
		data, err := settings.Encode(gs)
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	})
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		if _, err := os.Stat(game.ProfilePath(args[0])); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, args[0])
		}
		if err := s.svc.SetActiveProfile(args[0]); err != nil {
			return err
		}
		cmd.Printf("Active profile: %s\n", args[0])
		return nil
	})
}

func runProfileApply(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		store, gs, path, err := openProfile(s, args)
		if err != nil {
			return err
		}
		if err := store.Save(gs, path); err != nil {
			return err
		}
		cmd.Printf("Applied %s\n", path)
		return nil
	})
}

func runProfileConvert(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		store, game, err := s.svc.SettingsStore()
		if err != nil {
			return err
		}
		converted, err := store.ConvertLegacyProfile()
		if err != nil {
			return err
		}
		if !converted {
			cmd.Println("Nothing to convert: no old loader settings, or the default profile already exists")
			return nil
		}
		cmd.Printf("Converted %s into %s\n", game.LoaderIniPath(), game.ProfilePath(game.DefaultProfile))
		return nil
	})
}
