package core

import (
	"context"

	"samm/internal/domain"
)

// Reporter is how long-running operations talk to the user
type Reporter interface {
	domain.Notifier
	// Status replaces the one-line status text
	Status(msg string)
	// Confirm asks a yes/no question
	Confirm(title, message string) bool
	// Progress is called while a download is running
	Progress(p DownloadProgress)
	// OfflineResult reports whether an embedded payload was installed
	OfflineResult(component string, ok bool)
}

// CommitSource looks up the latest commit of a repository
type CommitSource interface {
	LatestCommit(ctx context.Context, owner, repo string) (string, error)
}

// History records install attempts
type History interface {
	RecordInstall(ev domain.InstallEvent) error
}

// NopReporter discards output and answers yes to every question
type NopReporter struct{}

func (NopReporter) Notify(domain.Level, string, string) {}
func (NopReporter) Status(string)                        {}
func (NopReporter) Confirm(string, string) bool          { return true }
func (NopReporter) Progress(DownloadProgress)            {}
func (NopReporter) OfflineResult(string, bool)           {}
