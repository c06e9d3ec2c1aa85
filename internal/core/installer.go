package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"samm/internal/domain"
	"samm/internal/games"
	"samm/internal/linker"
	"samm/internal/settings"

	"github.com/rs/zerolog"
)

// Installer brings a game's loader, dependencies, code list and patch list
// up to date. Every operation handles its own failures: callers get a bool
// or nothing, and the user gets a status line, a notification, or the
// offline payload.
type Installer struct {
	fetcher   Fetcher
	extractor ArchiveExtractor
	commits   CommitSource
	reporter  Reporter
	linker    linker.Linker
	history   History // Optional
	log       zerolog.Logger
	now       func() time.Time

	modInstallerURL string
}

// InstallerOption configures an Installer
type InstallerOption func(*Installer)

// WithLinker sets how libraries are placed into the game directory
func WithLinker(l linker.Linker) InstallerOption {
	return func(i *Installer) { i.linker = l }
}

// WithHistory records every install attempt
func WithHistory(h History) InstallerOption {
	return func(i *Installer) { i.history = h }
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) InstallerOption {
	return func(i *Installer) { i.log = log }
}

// WithModInstallerURL replaces the storefront converter's download location
func WithModInstallerURL(url string) InstallerOption {
	return func(i *Installer) { i.modInstallerURL = url }
}

// NewInstaller creates an installer. A nil reporter discards all output.
func NewInstaller(fetcher Fetcher, extractor ArchiveExtractor, commits CommitSource, reporter Reporter, opts ...InstallerOption) *Installer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	i := &Installer{
		fetcher:   fetcher,
		extractor: extractor,
		commits:   commits,
		reporter:  reporter,
		linker:    linker.NewCopy(),
		log:       zerolog.Nop(),
		now:       time.Now,

		modInstallerURL: games.ModInstallerURL,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// LinkMethod returns how files are placed into the game directory
func (i *Installer) LinkMethod() domain.LinkMethod {
	return i.linker.Method()
}

// InstallLoader installs the mod loader into the game's mod directory. When
// the download fails and force is off, the embedded payload is installed
// instead. Otherwise the latest commit hash is stamped, best effort. The code
// and patch lists are refreshed afterwards no matter what happened.
func (i *Installer) InstallLoader(ctx context.Context, game *domain.Game, force bool) {
	if game == nil {
		return
	}
	log := i.log.With().Str("game", game.ID.String()).Str("loader", game.Loader.Name).Logger()
	i.reporter.Status(msgInstallLoader)

	outcome := i.fetchLoader(ctx, game, domain.TransferInstall)
	log.Info().Stringer("outcome", outcome).Bool("force", force).Msg("loader download finished")

	if outcome.NeedsFallback() && !force {
		ok := i.installOffline(game.Loader.Name, game.Loader.Payload, game.ModDirectory(), game.Loader.Name+".dll")
		i.reporter.OfflineResult(game.Loader.Name, ok)
		i.record(game, game.Loader.Name, domain.ComponentLoader, offlineSource(ok), "")
		game.Loader.Installed = game.Loader.Installed || ok
	} else {
		hash := i.stampVersion(ctx, game)
		source := domain.SourceOnline
		if outcome.NeedsFallback() {
			source = domain.SourceFailed
		} else {
			game.Loader.Installed = true
		}
		i.record(game, game.Loader.Name, domain.ComponentLoader, source, hash)
	}

	i.UpdateCodeList(ctx, game)
	i.UpdatePatchList(ctx, game)
}

// UpdateLoader downloads the latest loader and copies its library over the
// game's data library. The copy only happens when the backup of the original
// data library exists; without it the update reports false.
func (i *Installer) UpdateLoader(ctx context.Context, game *domain.Game) bool {
	if game == nil || game.Directory == "" {
		return false
	}
	log := i.log.With().Str("game", game.ID.String()).Str("loader", game.Loader.Name).Logger()
	i.reporter.Status(msgUpdateLoader)

	if outcome := i.fetchLoader(ctx, game, domain.TransferUpdate); outcome != domain.OutcomeSucceeded {
		log.Warn().Stringer("outcome", outcome).Msg("loader update download failed")
		i.reporter.Status(msgFailedUpdateLoader)
		return false
	}

	origin := filepath.Join(game.Directory, game.Loader.DataDLLOriginPath)
	if _, err := os.Stat(origin); err != nil {
		log.Warn().Err(domain.ErrMarkerMissing).Str("marker", origin).Msg("not replacing data library")
		i.reporter.Status(msgFailedUpdateLoader)
		return false
	}

	src := filepath.Join(game.ModDirectory(), game.Loader.LoaderDLLName)
	dst := filepath.Join(game.Directory, game.Loader.DataDLLPath)
	if err := i.linker.Deploy(src, dst); err != nil {
		log.Error().Err(err).Msg("replacing data library")
		i.reporter.Status(msgFailedUpdateLoader)
		return false
	}

	hash := i.stampVersion(ctx, game)
	i.record(game, game.Loader.Name, domain.ComponentLoader, domain.SourceOnline, hash)
	i.reporter.Status(msgLoaderUpdated)
	return true
}

// CheckLoaderUpdate compares the stamped commit with the remote one. It
// reports no update when either side is unknown.
func (i *Installer) CheckLoaderUpdate(ctx context.Context, game *domain.Game) (available bool, local, remote string) {
	if game == nil || i.commits == nil {
		return false, "", ""
	}
	local = ReadVersionStamp(game.Loader.VersionPath)
	remote, err := i.commits.LatestCommit(ctx, game.Loader.RepoOwner, game.Loader.RepoName)
	if err != nil {
		i.log.Warn().Err(err).Str("repo", game.Loader.RepoOwner+"/"+game.Loader.RepoName).Msg("commit lookup failed")
		return false, local, ""
	}
	return local != "" && remote != "" && local != remote, local, remote
}

// UpdateCodeList downloads Codes.lst into the mod directory
func (i *Installer) UpdateCodeList(ctx context.Context, game *domain.Game) bool {
	if game == nil || game.CodeURL == "" || game.Directory == "" {
		return false
	}
	i.reporter.Status(msgUpdateCodes)

	t := Transfer{URL: game.CodeURL, Name: "Codes", FileName: "Codes.lst", Dir: game.ModDirectory(), Mode: domain.TransferUpdate}
	if _, err := i.fetcher.Fetch(ctx, t, i.reporter.Progress); err != nil {
		i.log.Warn().Err(err).Str("game", game.ID.String()).Msg("code list update failed")
		i.reporter.Status(msgFailedUpdateCodes)
		i.record(game, "Codes", domain.ComponentCodes, domain.SourceFailed, "")
		return false
	}

	i.record(game, "Codes", domain.ComponentCodes, domain.SourceOnline, "")
	i.reporter.Status(msgUpdatedCodes)
	return true
}

// UpdatePatchList downloads Patches.json into the mod directory. The new
// list only replaces the current one if it passes schema validation.
func (i *Installer) UpdatePatchList(ctx context.Context, game *domain.Game) bool {
	if game == nil || game.PatchURL == "" || game.Directory == "" {
		return false
	}
	i.reporter.Status(msgUpdatePatches)

	t := Transfer{URL: game.PatchURL, Name: "Patches", FileName: "Patches.json.new", Dir: game.ModDirectory(), Mode: domain.TransferUpdate}
	res, err := i.fetcher.Fetch(ctx, t, i.reporter.Progress)
	if err == nil {
		err = replaceValidatedPatchList(res.Path, filepath.Join(game.ModDirectory(), "Patches.json"))
	}
	if err != nil {
		i.log.Warn().Err(err).Str("game", game.ID.String()).Stringer("kind", domain.Classify(err)).Msg("patch list update failed")
		i.reporter.Status(msgFailedUpdatePatches)
		i.record(game, "Patches", domain.ComponentPatches, domain.SourceFailed, "")
		return false
	}

	i.record(game, "Patches", domain.ComponentPatches, domain.SourceOnline, "")
	i.reporter.Status(msgUpdatedPatches)
	return true
}

func replaceValidatedPatchList(downloaded, dest string) error {
	defer os.Remove(downloaded)
	data, err := os.ReadFile(downloaded)
	if err != nil {
		return fmt.Errorf("reading downloaded patch list: %w", err)
	}
	if err := settings.ValidatePatchList(data); err != nil {
		return err
	}
	if err := os.Rename(downloaded, dest); err != nil {
		return fmt.Errorf("replacing patch list: %w", err)
	}
	return nil
}

// fetchLoader downloads the loader archive into the mod directory, extracts
// it and deletes the archive
func (i *Installer) fetchLoader(ctx context.Context, game *domain.Game, mode domain.TransferMode) domain.Outcome {
	modDir := game.ModDirectory()
	if modDir == "" || game.Loader.URL == "" {
		return domain.OutcomeNetworkUnavailable
	}
	t := Transfer{
		URL:      game.Loader.URL,
		Name:     game.Loader.Name,
		FileName: domain.URLFileName(game.Loader.URL),
		Dir:      modDir,
		Mode:     mode,
	}
	res, err := i.fetcher.Fetch(ctx, t, i.reporter.Progress)
	if err != nil {
		i.log.Debug().Err(err).Str("url", t.URL).Msg("loader download")
		return domain.OutcomeFor(err)
	}
	return domain.OutcomeFor(i.extractAndRemove(res.Path, modDir))
}

// extractAndRemove unpacks an archive into dir and deletes it
func (i *Installer) extractAndRemove(archive, dir string) error {
	err := i.extractor.Extract(archive, dir)
	if rmErr := os.Remove(archive); rmErr != nil && !os.IsNotExist(rmErr) {
		i.log.Warn().Err(rmErr).Str("path", archive).Msg("removing downloaded archive")
	}
	if err != nil {
		i.log.Warn().Err(err).Str("path", archive).Msg("extraction failed")
	}
	return err
}

// stampVersion writes the remote commit hash to the version file. Failures
// are logged and otherwise ignored.
func (i *Installer) stampVersion(ctx context.Context, game *domain.Game) string {
	if i.commits == nil || game.Loader.VersionPath == "" {
		return ""
	}
	hash, err := i.commits.LatestCommit(ctx, game.Loader.RepoOwner, game.Loader.RepoName)
	if err != nil || hash == "" {
		i.log.Warn().Err(err).Msg("loader commit lookup failed, version not stamped")
		return ""
	}
	if err := os.MkdirAll(filepath.Dir(game.Loader.VersionPath), 0755); err != nil {
		i.log.Warn().Err(err).Msg("creating version stamp directory")
		return hash
	}
	if err := os.WriteFile(game.Loader.VersionPath, []byte(hash), 0644); err != nil {
		i.log.Warn().Err(err).Str("path", game.Loader.VersionPath).Msg("writing version stamp")
	}
	return hash
}

// ReadVersionStamp returns the commit hash recorded at path, or ""
func ReadVersionStamp(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (i *Installer) record(game *domain.Game, component string, kind domain.ComponentKind, source domain.InstallSource, version string) {
	if i.history == nil {
		return
	}
	ev := domain.InstallEvent{
		GameID:     game.ID.String(),
		Component:  component,
		Kind:       kind,
		Source:     source,
		Version:    version,
		RecordedAt: i.now(),
	}
	if err := i.history.RecordInstall(ev); err != nil {
		i.log.Warn().Err(err).Str("component", component).Msg("recording install history")
	}
}

func offlineSource(ok bool) domain.InstallSource {
	if ok {
		return domain.SourceOffline
	}
	return domain.SourceFailed
}
