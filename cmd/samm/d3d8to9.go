package main

import (
	"github.com/spf13/cobra"
)

var d3d8to9Cmd = &cobra.Command{
	Use:   "d3d8to9",
	Short: "Manage the Direct3D 8 to 9 shim in the game directory",
	Long: `The shim is installed as the D3D8M dependency. Enabling it places d3d8.dll
in the game directory so the game renders through Direct3D 9.`,
}

var d3d8to9EnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Place the shim in the game directory",
	Args:  cobra.NoArgs,
	RunE:  runD3D8to9Enable,
}

var d3d8to9DisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the shim from the game directory",
	Args:  cobra.NoArgs,
	RunE:  runD3D8to9Disable,
}

var d3d8to9StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the shim is enabled",
	Args:  cobra.NoArgs,
	RunE:  runD3D8to9Status,
}

func init() {
	d3d8to9Cmd.AddCommand(d3d8to9EnableCmd)
	d3d8to9Cmd.AddCommand(d3d8to9DisableCmd)
	d3d8to9Cmd.AddCommand(d3d8to9StatusCmd)
	rootCmd.AddCommand(d3d8to9Cmd)
}

func runD3D8to9Enable(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		if err := s.svc.Installer().EnableD3D8to9(game); err != nil {
			return err
		}
		cmd.Println("Direct3D 8 to 9 enabled")
		return nil
	})
}

func runD3D8to9Disable(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		if err := s.svc.Installer().DisableD3D8to9(game); err != nil {
			return err
		}
		cmd.Println("Direct3D 8 to 9 disabled")
		return nil
	})
}

func runD3D8to9Status(cmd *cobra.Command, args []string) error {
	return withGame(cmd, func(s *session) error {
		game, _ := s.svc.CurrentGame()
		st := s.svc.Installer().D3D8to9Status(game)
		switch {
		case !st.Available:
			cmd.Println("Not installed; run 'samm deps install'")
		case st.Outdated:
			cmd.Println("Enabled, but older than the installed shim; run 'samm d3d8to9 enable' to replace it")
		case st.Enabled:
			cmd.Println("Enabled")
		default:
			cmd.Println("Disabled")
		}
		return nil
	})
}
