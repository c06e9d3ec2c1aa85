package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [codes|patches|deps]...",
	Short: "Refresh the code list, patch list and dependencies",
	Long: `Download the latest code list, patch list and native dependencies.

With no arguments everything is refreshed. Name one or more parts to
refresh only those.

Examples:
  samm update
  samm update codes patches`,
	ValidArgs: []string{"codes", "patches", "deps"},
	Args:      cobra.OnlyValidArgs,
	RunE:      runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	parts := args
	if len(parts) == 0 {
		parts = []string{"codes", "patches", "deps"}
	}

	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		inst := s.svc.Installer()
		ctx := cmd.Context()

		var failed []string
		for _, part := range parts {
			var ok bool
			switch part {
			case "codes":
				ok = inst.UpdateCodeList(ctx, game)
			case "patches":
				ok = inst.UpdatePatchList(ctx, game)
			case "deps":
				ok = inst.UpdateDependencies(ctx, game)
			}
			if !ok {
				failed = append(failed, part)
			}
		}

		if len(failed) > 0 {
			return fmt.Errorf("update failed for: %v", failed)
		}
		return nil
	})
}
