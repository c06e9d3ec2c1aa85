package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"samm/internal/domain"
	"samm/internal/games"
	"samm/internal/github"
	"samm/internal/linker"
	"samm/internal/settings"
	"samm/internal/storage/config"
	"samm/internal/storage/db"

	"github.com/rs/zerolog"
)

// GitHubTokenHost is the key the GitHub token is stored under
const GitHubTokenHost = "github"

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir   string // config.yaml, games.yaml, profiles, version stamps
	DataDir     string // History database and default external libraries
	Reporter    Reporter
	Logger      zerolog.Logger
	HTTPClient  *http.Client // Nil for a default client with a timeout
	GitHubToken string       // Overrides the stored token when set
}

// Service wires configuration, storage and the installer together for one
// process
type Service struct {
	config    *config.Config
	gamesFile *config.GamesFile
	db        *db.DB
	registry  *games.Registry
	session   *games.Session
	installer *Installer
	resolver  *Resolver
	reporter  Reporter
	log       zerolog.Logger

	configDir string
	dataDir   string
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig) (*Service, error) {
	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	gamesFile, err := config.LoadGames(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.New(filepath.Join(cfg.DataDir, "samm.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}

	dirs := config.Dirs{Config: cfg.ConfigDir, Data: cfg.DataDir}
	payloads := games.ChainSource{games.Embedded()}
	if appConfig.PayloadDir != "" {
		payloads = append(payloads, games.DirSource{Dir: appConfig.PayloadDir})
	}
	registry := games.NewRegistry(games.Paths{
		ConfigRoot:    cfg.ConfigDir,
		ExtLibsRoot:   dirs.ExtLibsDir(appConfig),
		PayloadSource: payloads,
	}, appConfig.URLOverrides())

	s := &Service{
		config:    appConfig,
		gamesFile: gamesFile,
		db:        database,
		registry:  registry,
		session:   games.NewSession(registry),
		reporter:  reporter,
		log:       cfg.Logger,
		configDir: cfg.ConfigDir,
		dataDir:   cfg.DataDir,
	}

	commits := github.NewCommitSource(httpClient, s.gitHubToken(cfg.GitHubToken))
	s.installer = NewInstaller(NewDownloader(httpClient), NewExtractor(), commits, reporter,
		WithLinker(linker.New(appConfig.LinkMethod)),
		WithHistory(database),
		WithLogger(cfg.Logger),
	)
	s.resolver = NewResolver(s.session, s.installer, reporter, cfg.ConfigDir, cfg.Logger)

	s.restoreCurrentGame()
	return s, nil
}

func (s *Service) gitHubToken(override string) string {
	if override != "" {
		return override
	}
	tok, err := s.db.GetToken(GitHubTokenHost)
	if err != nil || tok == nil {
		return ""
	}
	return tok.Token
}

// restoreCurrentGame selects the game remembered in games.yaml when its
// directory still exists
func (s *Service) restoreCurrentGame() {
	id := s.gamesFile.CurrentID()
	if id == domain.GameNone {
		return
	}
	path := s.gamesFile.Path(id)
	if !dirExists(path) {
		s.log.Warn().Str("game", id.String()).Str("path", path).Msg("remembered game directory is gone")
		return
	}
	if _, err := s.session.Select(id, path); err != nil {
		s.log.Warn().Err(err).Msg("restoring current game")
	}
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Config returns the application config
func (s *Service) Config() *config.Config {
	return s.config
}

// SaveConfig writes the application config
func (s *Service) SaveConfig() error {
	return s.config.Save(s.configDir)
}

// ConfigDir returns the configuration directory
func (s *Service) ConfigDir() string {
	return s.configDir
}

// DB returns the database
func (s *Service) DB() *db.DB {
	return s.db
}

// Installer returns the installer
func (s *Service) Installer() *Installer {
	return s.installer
}

// Session returns the game session
func (s *Service) Session() *games.Session {
	return s.session
}

// CurrentGame returns the selected game
func (s *Service) CurrentGame() (*domain.Game, error) {
	g := s.session.Current()
	if g == nil {
		return nil, fmt.Errorf("%w: no game selected; run 'samm game set <path>' first", domain.ErrGameNotFound)
	}
	return g, nil
}

// SetGamePath detects the game installed at path. A detected game becomes
// current and is remembered for later runs.
func (s *Service) SetGamePath(ctx context.Context, path string, opts ResolveOptions) (domain.GameID, error) {
	id := s.resolver.ResolveGameFromPath(ctx, path, opts)
	if id == domain.GameNone {
		return id, nil
	}
	s.gamesFile.Remember(id, path)
	if err := s.gamesFile.Save(s.configDir); err != nil {
		return id, err
	}
	return id, nil
}

// ForgetGame drops a remembered installation
func (s *Service) ForgetGame(id domain.GameID) error {
	if err := s.gamesFile.Forget(id); err != nil {
		return err
	}
	return s.gamesFile.Save(s.configDir)
}

// RememberedGames returns the remembered install directory of every game
func (s *Service) RememberedGames() map[domain.GameID]string {
	out := make(map[domain.GameID]string)
	for _, g := range s.registry.All() {
		if p := s.gamesFile.Path(g.ID); p != "" {
			out[g.ID] = p
		}
	}
	return out
}

// SettingsStore returns the profile store for the current game
func (s *Service) SettingsStore() (*settings.Store, *domain.Game, error) {
	game, err := s.CurrentGame()
	if err != nil {
		return nil, nil, err
	}
	return settings.NewStore(game, s.configDir, s.reporter, s.log), game, nil
}

// ActiveProfile returns the name of the current game's active profile
func (s *Service) ActiveProfile() (string, error) {
	game, err := s.CurrentGame()
	if err != nil {
		return "", err
	}
	return s.config.ActiveProfile(game.ID, game.DefaultProfile), nil
}

// SetActiveProfile selects the profile used by the current game
func (s *Service) SetActiveProfile(name string) error {
	game, err := s.CurrentGame()
	if err != nil {
		return err
	}
	s.config.SetActiveProfile(game.ID, name)
	return s.SaveConfig()
}

// SaveGitHubToken stores the token used for commit lookups
func (s *Service) SaveGitHubToken(token string) error {
	return s.db.SaveToken(GitHubTokenHost, token)
}

// DeleteGitHubToken removes the stored GitHub token
func (s *Service) DeleteGitHubToken() error {
	return s.db.DeleteToken(GitHubTokenHost)
}
