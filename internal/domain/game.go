package domain

import (
	"path/filepath"
	"strings"
)

// LinkMethod determines how files are placed into the game directory
type LinkMethod int

const (
	LinkCopy     LinkMethod = iota // Default: copy (what the loader expects)
	LinkSymlink                    // Symlink (space efficient, breaks under some Wine prefixes)
	LinkHardlink                   // Hardlink (same filesystem only)
)

func (m LinkMethod) String() string {
	switch m {
	case LinkCopy:
		return "copy"
	case LinkSymlink:
		return "symlink"
	case LinkHardlink:
		return "hardlink"
	default:
		return "unknown"
	}
}

// ParseLinkMethod converts a string to LinkMethod
func ParseLinkMethod(s string) LinkMethod {
	switch s {
	case "symlink":
		return LinkSymlink
	case "hardlink":
		return LinkHardlink
	default:
		return LinkCopy
	}
}

// GameID identifies a supported game title
type GameID int

const (
	GameNone GameID = iota
	GameSADX
	GameSA2
)

func (id GameID) String() string {
	switch id {
	case GameSADX:
		return "sadx"
	case GameSA2:
		return "sa2"
	default:
		return "none"
	}
}

// ParseGameID converts a slug or abbreviation to a GameID
func ParseGameID(s string) GameID {
	switch strings.ToLower(s) {
	case "sadx":
		return GameSADX
	case "sa2":
		return GameSA2
	default:
		return GameNone
	}
}

// Format is the packaging of a dependency's remote file and embedded payload
type Format int

const (
	FormatDLL     Format = iota // Raw library, stored as <name>.dll
	FormatArchive               // Zip/7z archive extracted into the dependency path
)

func (f Format) String() string {
	if f == FormatArchive {
		return "archive"
	}
	return "dll"
}

// Dependency is a native library the loader needs
type Dependency struct {
	Name    string
	Payload []byte // Embedded offline fallback, may be empty
	Format  Format
	URL     string
	Path    string // <external-libs-root>/<Name>, assigned by the registry
}

// LibraryFile is the canonical path of the library that marks the dependency
// as installed. Archives may ship it with a different case.
func (d Dependency) LibraryFile() string {
	return filepath.Join(d.Path, d.Name+".dll")
}

// DownloadName is the file name a fetched copy is written to. Raw libraries
// are always stored under their canonical name so LibraryFile finds them.
func (d Dependency) DownloadName() string {
	if d.Format == FormatDLL {
		return d.Name + ".dll"
	}
	return URLFileName(d.URL)
}

// Loader describes the mod loader injected into the game
type Loader struct {
	Name              string
	Payload           []byte // Embedded offline fallback, may be empty
	URL               string
	RepoOwner         string
	RepoName          string
	VersionPath       string // Version stamp file holding the installed commit hash
	IniPath           string // Loader config, relative to the game directory
	DataDLLPath       string // Library replaced by the loader, relative to the game directory
	DataDLLOriginPath string // Backup of the original library, relative to the game directory
	LoaderDLLName     string // Loader library, relative to the mod directory
	Installed         bool
}

// Game describes a supported game title
type Game struct {
	ID             GameID
	Name           string
	Abbreviation   string
	Executables    []string
	Executable     string // Primary executable expected for launching
	StorefrontExe  string // Present without Executable on the incompatible Steam release
	Directory      string // Resolved install directory, empty until detection
	ProfilesDir    string
	ConfigFiles    []string // Runtime config files, relative to Directory
	CodeURL        string
	PatchURL       string
	DefaultProfile string
	Loader         Loader
	Dependencies   []Dependency
}

// ModDirectory is where the loader, codes and patches live
func (g *Game) ModDirectory() string {
	if g.Directory == "" {
		return ""
	}
	return filepath.Join(g.Directory, "mods")
}

// RuntimeConfigPath returns the primary runtime config file under dir
func (g *Game) RuntimeConfigPath(dir string) string {
	if len(g.ConfigFiles) == 0 || dir == "" {
		return ""
	}
	return filepath.Join(dir, g.ConfigFiles[0])
}

// LoaderIniPath returns the absolute loader config path
func (g *Game) LoaderIniPath() string {
	if g.Loader.IniPath == "" || g.Directory == "" {
		return ""
	}
	return filepath.Join(g.Directory, g.Loader.IniPath)
}

// ProfilePath returns the JSON path of a named profile
func (g *Game) ProfilePath(name string) string {
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		name += ".json"
	}
	return filepath.Join(g.ProfilesDir, name)
}

// URLFileName returns the last path element of a URL, without query string
func URLFileName(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
