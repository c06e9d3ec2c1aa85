package domain

import "time"

// ComponentKind is the kind of component an install event refers to
type ComponentKind string

const (
	ComponentLoader     ComponentKind = "loader"
	ComponentDependency ComponentKind = "dependency"
	ComponentCodes      ComponentKind = "codes"
	ComponentPatches    ComponentKind = "patches"
)

// InstallSource records how a component reached the disk
type InstallSource string

const (
	SourceOnline  InstallSource = "online"
	SourceOffline InstallSource = "offline"
	SourceFailed  InstallSource = "failed"
)

// InstallEvent is a single install or update attempt
type InstallEvent struct {
	GameID     string
	Component  string
	Kind       ComponentKind
	Source     InstallSource
	Version    string // Commit hash when known
	RecordedAt time.Time
}
