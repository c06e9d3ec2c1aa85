package core_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"samm/internal/core"
	"samm/internal/domain"
	"samm/internal/games"

	"github.com/stretchr/testify/require"
)

const (
	testLoaderURL = "https://example.invalid/SADXModLoader.zip"
	testBassURL   = "https://example.invalid/bass24.zip"
	testSDL2URL   = "https://example.invalid/SDL2.zip"
	testD3D8MURL  = "https://example.invalid/d3d8.dll"
	testCodesURL  = "https://example.invalid/Codes.lst"
	testPatchURL  = "https://example.invalid/Patches.json"

	validPatchList = `{"Patches":[{"Name":"KillGBIX","Author":"PkR"}]}`
)

type fakeResponse struct {
	body []byte
	err  error
}

// fakeFetcher serves canned bodies by URL and records every request in order
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	requested []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{responses: make(map[string]fakeResponse)}
}

func (f *fakeFetcher) serve(url string, body []byte) {
	f.responses[url] = fakeResponse{body: body}
}

func (f *fakeFetcher) fail(url string) {
	f.responses[url] = fakeResponse{err: fmt.Errorf("%w: %s: connection refused", domain.ErrDownloadFailed, url)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, t core.Transfer, progressFn core.ProgressFunc) (*core.DownloadResult, error) {
	f.mu.Lock()
	f.requested = append(f.requested, t.URL)
	resp, ok := f.responses[t.URL]
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s: 404 Not Found", domain.ErrDownloadFailed, t.URL)
	}
	if resp.err != nil {
		return nil, resp.err
	}
	if err := os.MkdirAll(t.Dir, 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(t.Dest(), resp.body, 0644); err != nil {
		return nil, err
	}
	if progressFn != nil {
		size := int64(len(resp.body))
		progressFn(core.DownloadProgress{Name: t.Name, TotalBytes: size, Downloaded: size, Percentage: 100})
	}
	return &core.DownloadResult{Path: t.Dest(), Size: int64(len(resp.body))}, nil
}

func (f *fakeFetcher) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requested...)
}

type fakeCommits struct {
	hash string
	err  error
}

func (c fakeCommits) LatestCommit(ctx context.Context, owner, repo string) (string, error) {
	return c.hash, c.err
}

var errLookup = errors.New("rate limited")

type notification struct {
	level domain.Level
	title string
	msg   string
}

// recordingReporter captures everything shown to the user
type recordingReporter struct {
	answer        bool
	statuses      []string
	notifications []notification
	confirms      []string
	offline       map[string]bool
	progress      int
}

func newRecordingReporter(answer bool) *recordingReporter {
	return &recordingReporter{answer: answer, offline: make(map[string]bool)}
}

func (r *recordingReporter) Notify(level domain.Level, title, msg string) {
	r.notifications = append(r.notifications, notification{level, title, msg})
}
func (r *recordingReporter) Status(msg string) { r.statuses = append(r.statuses, msg) }
func (r *recordingReporter) Confirm(title, msg string) bool {
	r.confirms = append(r.confirms, title)
	return r.answer
}
func (r *recordingReporter) Progress(core.DownloadProgress)       { r.progress++ }
func (r *recordingReporter) OfflineResult(name string, ok bool) { r.offline[name] = ok }

type memoryHistory struct {
	events []domain.InstallEvent
}

func (h *memoryHistory) RecordInstall(ev domain.InstallEvent) error {
	h.events = append(h.events, ev)
	return nil
}

func (h *memoryHistory) find(component string) (domain.InstallEvent, bool) {
	for i := len(h.events) - 1; i >= 0; i-- {
		if h.events[i].Component == component {
			return h.events[i], true
		}
	}
	return domain.InstallEvent{}, false
}

type mapPayloads map[string][]byte

func (m mapPayloads) Payload(name string) []byte { return m[name] }

type fixture struct {
	root      string
	gameDir   string
	paths     games.Paths
	session   *games.Session
	game      *domain.Game
	fetcher   *fakeFetcher
	reporter  *recordingReporter
	history   *memoryHistory
	installer *core.Installer
}

// newFixture selects SADX installed under a temp dir, with every remote
// location pointed at the fake fetcher
func newFixture(t *testing.T, payloads mapPayloads) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root:     root,
		gameDir:  filepath.Join(root, "game"),
		fetcher:  newFakeFetcher(),
		reporter: newRecordingReporter(true),
		history:  &memoryHistory{},
	}
	require.NoError(t, os.MkdirAll(filepath.Join(f.gameDir, "mods"), 0755))

	f.paths = games.Paths{
		ConfigRoot:  filepath.Join(root, "config"),
		ExtLibsRoot: filepath.Join(root, "extlib"),
	}
	if payloads != nil {
		f.paths.PayloadSource = payloads
	}
	overrides := map[domain.GameID]games.URLOverrides{
		domain.GameSADX: {
			Loader: testLoaderURL,
			Codes:  testCodesURL,
			Patch:  testPatchURL,
			Deps:   map[string]string{"BASS": testBassURL, "SDL2": testSDL2URL, "D3D8M": testD3D8MURL},
		},
	}
	f.session = games.NewSession(games.NewRegistry(f.paths, overrides))

	game, err := f.session.Select(domain.GameSADX, f.gameDir)
	require.NoError(t, err)
	f.game = game

	f.installer = core.NewInstaller(f.fetcher, core.NewExtractor(), fakeCommits{hash: "abc123"}, f.reporter,
		core.WithHistory(f.history))
	return f
}

func (f *fixture) serveAll(t *testing.T) {
	t.Helper()
	f.fetcher.serve(testLoaderURL, zipBytes(t, map[string]string{"SADXModLoader.dll": "loader"}))
	f.fetcher.serve(testBassURL, zipBytes(t, map[string]string{"BASS.dll": "bass"}))
	f.fetcher.serve(testSDL2URL, zipBytes(t, map[string]string{"SDL2.dll": "sdl"}))
	f.fetcher.serve(testD3D8MURL, []byte("d3d8to9"))
	f.fetcher.serve(testCodesURL, []byte("Code \"Infinite Lives\""))
	f.fetcher.serve(testPatchURL, []byte(validPatchList))
}

func (f *fixture) modFile(name string) string {
	return filepath.Join(f.gameDir, "mods", name)
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
