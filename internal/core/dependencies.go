package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"samm/internal/domain"
)

// LibraryPath finds a dependency's library in its directory. Archives ship
// lowercase names (bass.dll), so the file name is matched without case.
func LibraryPath(dep domain.Dependency) (string, bool) {
	if dep.Path == "" {
		return "", false
	}
	entries, err := os.ReadDir(dep.Path)
	if err != nil {
		return "", false
	}
	want := filepath.Base(dep.LibraryFile())
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), want) {
			return filepath.Join(dep.Path, e.Name()), true
		}
	}
	return "", false
}

// DependencyInstalled reports whether a dependency's library is on disk
func DependencyInstalled(dep domain.Dependency) bool {
	_, ok := LibraryPath(dep)
	return ok
}

// UpdateDependencies refreshes every dependency in declaration order. The
// first failure stops the batch: later dependencies are not attempted. A
// game without dependencies reports false, since nothing was updated.
func (i *Installer) UpdateDependencies(ctx context.Context, game *domain.Game) bool {
	if game == nil {
		return false
	}
	i.reporter.Status(msgUpdateDependencies)

	success := false
	for _, dep := range game.Dependencies {
		mode := domain.TransferDownload
		if DependencyInstalled(dep) {
			mode = domain.TransferUpdate
		}

		if err := i.fetchDependency(ctx, dep, mode); err != nil {
			i.log.Warn().Err(err).Str("dependency", dep.Name).Stringer("mode", mode).Msg("dependency update failed")
			i.record(game, dep.Name, domain.ComponentDependency, domain.SourceFailed, "")
			i.reporter.Status(msgFailedUpdateDependencies)
			return false
		}
		i.record(game, dep.Name, domain.ComponentDependency, domain.SourceOnline, "")
		success = true
	}

	if success {
		i.reporter.Status(msgUpdatedDependencies)
	}
	return success
}

// InstallMissingDependencies installs every dependency whose library is
// absent. Any dependency the network cannot deliver is installed from its
// embedded payload instead.
func (i *Installer) InstallMissingDependencies(ctx context.Context, game *domain.Game) {
	if game == nil {
		return
	}
	for _, dep := range game.Dependencies {
		if DependencyInstalled(dep) {
			continue
		}
		i.reporter.Status(msgInstallDependencies)

		outcome := domain.OutcomeFor(i.fetchDependency(ctx, dep, domain.TransferDownload))
		if !outcome.NeedsFallback() {
			i.record(game, dep.Name, domain.ComponentDependency, domain.SourceOnline, "")
			continue
		}

		i.log.Info().Str("dependency", dep.Name).Stringer("outcome", outcome).Msg("falling back to offline payload")
		ok := i.installOffline(dep.Name, dep.Payload, dep.Path, dep.Name+".dll")
		i.reporter.OfflineResult(dep.Name, ok)
		i.record(game, dep.Name, domain.ComponentDependency, offlineSource(ok), "")
	}
}

// fetchDependency downloads one dependency into its path and unpacks it
func (i *Installer) fetchDependency(ctx context.Context, dep domain.Dependency, mode domain.TransferMode) error {
	if dep.Path == "" {
		return domain.ErrGameDirMissing
	}
	t := Transfer{
		URL:      dep.URL,
		Name:     dep.Name,
		FileName: dep.DownloadName(),
		Dir:      dep.Path,
		Mode:     mode,
	}
	res, err := i.fetcher.Fetch(ctx, t, i.reporter.Progress)
	if err != nil {
		return err
	}
	if dep.Format != domain.FormatArchive {
		return nil
	}
	return i.extractAndRemove(res.Path, filepath.Dir(res.Path))
}
