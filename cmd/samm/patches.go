package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"samm/internal/domain"
	"samm/internal/settings"

	"github.com/spf13/cobra"
)

var patchesCmd = &cobra.Command{
	Use:   "patches",
	Short: "Toggle the loader's built-in patches in a profile",
}

var patchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patches and whether the active profile enables them",
	Args:  cobra.NoArgs,
	RunE:  runPatchesList,
}

var patchesSetCmd = &cobra.Command{
	Use:   "set <patch>=<on|off>...",
	Short: "Enable or disable patches",
	Long: `Enable or disable patches in the active profile (or --profile).

Example:
  samm patches set FOVFix=off "Light Fix=on"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPatchesSet,
}

var patchesEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Choose patches interactively",
	Args:  cobra.NoArgs,
	RunE:  runPatchesEdit,
}

var patchesProfile string

func init() {
	patchesCmd.PersistentFlags().StringVarP(&patchesProfile, "profile", "p", "", "profile to change (default: active profile)")

	patchesCmd.AddCommand(patchesListCmd)
	patchesCmd.AddCommand(patchesSetCmd)
	patchesCmd.AddCommand(patchesEditCmd)
	rootCmd.AddCommand(patchesCmd)
}

// patchStates describes every patch of the profile. The downloaded patch
// list supplies descriptions; without it the built-in names are used.
func patchStates(game *domain.Game, gs *settings.GameSettings) []settings.PatchState {
	if list, err := settings.LoadPatchList(filepath.Join(game.ModDirectory(), "Patches.json")); err == nil {
		return list.States(&gs.Patches)
	}
	var states []settings.PatchState
	for _, id := range settings.AllPatches() {
		states = append(states, settings.PatchState{
			Entry:   settings.PatchEntry{Name: id.String()},
			ID:      id,
			Known:   true,
			Enabled: gs.Patches.Get(id),
		})
	}
	return states
}

// parseToggles reads name=on|off arguments
func parseToggles(args []string) (map[string]bool, error) {
	toggles := make(map[string]bool, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid toggle %q: expected <patch>=<on|off>", arg)
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "on", "true", "1", "yes":
			toggles[name] = true
		case "off", "false", "0", "no":
			toggles[name] = false
		default:
			return nil, fmt.Errorf("invalid value %q for %s: expected on or off", value, name)
		}
	}
	return toggles, nil
}

func runPatchesList(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		_, gs, _, err := openProfile(s, []string{patchesProfile})
		if err != nil {
			return err
		}
		for _, st := range patchStates(game, gs) {
			mark := "[ ]"
			switch {
			case !st.Known:
				mark = "[?]"
			case st.Enabled:
				mark = "[x]"
			}
			cmd.Printf("%s %s\n", mark, st.Entry.Name)
			if st.Entry.Description != "" {
				cmd.Printf("    %s\n", st.Entry.Description)
			}
		}
		return nil
	})
}

func runPatchesSet(cmd *cobra.Command, args []string) error {
	toggles, err := parseToggles(args)
	if err != nil {
		return err
	}
	return withGame(cmd, func(s *session) error {
		store, gs, path, err := openProfile(s, []string{patchesProfile})
		if err != nil {
			return err
		}
		if err := settings.ApplyStates(&gs.Patches, toggles); err != nil {
			return err
		}
		if err := store.Save(gs, path); err != nil {
			return err
		}
		cmd.Printf("Updated %d patch(es) in %s\n", len(toggles), filepath.Base(path))
		return nil
	})
}

func runPatchesEdit(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		store, gs, path, err := openProfile(s, []string{patchesProfile})
		if err != nil {
			return err
		}
		toggles, err := s.reporter.EditPatches(patchStates(game, gs))
		if err != nil {
			return err
		}
		if toggles == nil {
			return ErrCancelled
		}
		if err := settings.ApplyStates(&gs.Patches, toggles); err != nil {
			return err
		}
		return store.Save(gs, path)
	})
}
