package main

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"
	"time"

	"samm/internal/core"
	"samm/internal/domain"
	"samm/internal/github"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub token used for loader version checks",
	Long: `Without a token samm asks GitHub's public REST API for the loader's
latest commit, which is rate limited. With a token the GraphQL API is used.

SAMM_GITHUB_TOKEN or GITHUB_TOKEN take precedence over a stored token.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store a GitHub token",
	Long: `Store a GitHub personal access token. The token only needs read access
to public repositories. Without an argument the token is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the GitHub token comes from",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func readToken(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	cmd.Print("GitHub token: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	token, err := readToken(cmd, args)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	sadx, err := s.svc.Session().Registry().Get(domain.GameSADX)
	if err != nil {
		return err
	}

	cmd.Print("Validating... ")
	client := github.NewGraphQLClient(&http.Client{Timeout: 30 * time.Second}, token)
	if _, err := client.LatestCommit(cmd.Context(), sadx.Loader.RepoOwner, sadx.Loader.RepoName); err != nil {
		cmd.Println("failed")
		return fmt.Errorf("invalid token: %w", err)
	}
	cmd.Println("done")

	if err := s.svc.SaveGitHubToken(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	cmd.Println("GitHub token saved")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	if err := s.svc.DeleteGitHubToken(); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	cmd.Println("Removed the stored GitHub token")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	if gitHubToken() != "" {
		cmd.Println("Using the token from the environment")
		return nil
	}

	s, err := initService(cmd)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer s.Close()

	tok, err := s.svc.DB().GetToken(core.GitHubTokenHost)
	if err != nil {
		return err
	}
	if tok == nil {
		cmd.Println("No token; using the public REST API")
		return nil
	}
	cmd.Printf("Stored token, saved %s\n", tok.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}
