package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"samm/internal/domain"
	"samm/internal/games"
	"samm/internal/settings"

	"github.com/rs/zerolog"
)

// ResolveOptions controls the prompts shown while resolving a game directory
type ResolveOptions struct {
	SkipConfirm bool // Accept a detected game without asking
	// OfferModInstaller asks to fetch the converter when the storefront
	// release is found
	OfferModInstaller bool
}

// Resolver identifies the game installed in a directory and makes it the
// session's current game
type Resolver struct {
	session    *games.Session
	installer  *Installer
	reporter   Reporter
	configRoot string
	log        zerolog.Logger
}

// NewResolver creates a resolver. installer is only used for the storefront
// converter download and may be nil.
func NewResolver(session *games.Session, installer *Installer, reporter Reporter, configRoot string, log zerolog.Logger) *Resolver {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Resolver{
		session:    session,
		installer:  installer,
		reporter:   reporter,
		configRoot: configRoot,
		log:        log,
	}
}

// IsStorefrontLayout reports whether dir holds the storefront release of
// game, which ships a different executable and cannot load mods directly
func IsStorefrontLayout(game *domain.Game, dir string) bool {
	if game.StorefrontExe == "" {
		return false
	}
	return fileExists(filepath.Join(dir, game.StorefrontExe)) && !fileExists(filepath.Join(dir, game.Executable))
}

// ResolveGameFromPath returns the supported game installed at path, or
// GameNone. A storefront layout never resolves: the user is told how to
// convert it instead.
func (r *Resolver) ResolveGameFromPath(ctx context.Context, path string, opts ResolveOptions) domain.GameID {
	for _, game := range r.session.Registry().Supported() {
		log := r.log.With().Str("game", game.ID.String()).Str("path", path).Logger()

		if IsStorefrontLayout(&game, path) {
			log.Info().Msg("storefront release detected")
			r.storefrontFlow(ctx, &game, path, opts)
			return domain.GameNone
		}

		exe := filepath.Join(path, game.Executable)
		if !fileExists(exe) {
			continue
		}

		if !opts.SkipConfirm {
			msg := fmt.Sprintf("%s was found at %s. Use this installation?", game.Name, exe)
			if !r.reporter.Confirm("Game Detected", msg) {
				log.Info().Msg("detected game declined")
				return domain.GameNone
			}
		}

		current, err := r.session.Select(game.ID, path)
		if err != nil {
			log.Error().Err(err).Msg("selecting game")
			return domain.GameNone
		}

		if dirExists(filepath.Join(path, "mods")) {
			store := settings.NewStore(current, r.configRoot, r.reporter, r.log)
			if converted, err := store.ConvertLegacyProfile(); err != nil {
				log.Warn().Err(err).Msg("legacy profile conversion failed")
			} else if converted {
				log.Info().Msg("legacy profile converted")
			}
		}
		return game.ID
	}
	return domain.GameNone
}

func (r *Resolver) storefrontFlow(ctx context.Context, game *domain.Game, path string, opts ResolveOptions) {
	r.reporter.Notify(domain.LevelWarning, "Unsupported Release",
		fmt.Sprintf("The %s installation at %s is the storefront release. It has to be converted before mods can be installed.", game.Name, path))

	if !opts.OfferModInstaller || r.installer == nil {
		return
	}
	if !r.reporter.Confirm("Mod Installer", "Download the converter now?") {
		return
	}
	dir, err := r.installer.FetchModInstaller(ctx, path)
	if err != nil {
		r.reporter.Notify(domain.LevelError, "Mod Installer", err.Error())
		return
	}
	r.reporter.Notify(domain.LevelInfo, "Mod Installer",
		fmt.Sprintf("The converter was extracted to %s. Run sadx_setup.exe with the game's Wine prefix.", dir))
}

// FetchModInstaller downloads and extracts the converter for the storefront
// release into <dest>/.SATemp and returns that directory. Unlike every other
// operation its failure is returned to the caller.
func (i *Installer) FetchModInstaller(ctx context.Context, dest string) (string, error) {
	dir := filepath.Join(dest, ".SATemp")
	t := Transfer{
		URL:      i.modInstallerURL,
		Name:     "SADX Mod Installer (Steam to 2004)",
		FileName: domain.URLFileName(i.modInstallerURL),
		Dir:      dir,
		Mode:     domain.TransferDownload,
	}
	res, err := i.fetcher.Fetch(ctx, t, i.reporter.Progress)
	if err != nil {
		return "", fmt.Errorf("failed to download the mod installer: %w", err)
	}
	if err := i.extractAndRemove(res.Path, dir); err != nil {
		return "", fmt.Errorf("failed to extract the mod installer: %w", err)
	}
	return dir, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
