package games

import (
	"path/filepath"

	"samm/internal/domain"
)

const (
	sadxLoaderURL = "https://github.com/X-Hax/sadx-mod-loader/releases/latest/download/SADXModLoader.7z"
	sadxCodeURL   = "https://raw.githubusercontent.com/X-Hax/sadx-mod-loader/master/data/Codes.lst"
	sadxPatchURL  = "https://raw.githubusercontent.com/X-Hax/sadx-mod-loader/master/data/Patches.json"
	bassURL       = "https://www.un4seen.com/files/bass24.zip"
	sdl2URL       = "https://github.com/libsdl-org/SDL/releases/download/release-2.30.9/SDL2-2.30.9-win32-x86.zip"
	d3d8mURL      = "https://github.com/crosire/d3d8to9/releases/latest/download/d3d8.dll"

	// ModInstallerURL is the converter that turns the Steam release into the 2004 layout
	ModInstallerURL = "https://dcmods.unreliable.network/owncloud/data/PiKeyAr/files/Setup/offline/sadx_setup_full.zip"
)

func builtinGames(configRoot string) []domain.Game {
	return []domain.Game{
		{
			ID:             domain.GameSADX,
			Name:           "Sonic Adventure DX",
			Abbreviation:   "SADX",
			Executables:    []string{"sonic.exe", "Sonic Adventure DX.exe"},
			Executable:     "sonic.exe",
			StorefrontExe:  "Sonic Adventure DX.exe",
			ProfilesDir:    filepath.Join(configRoot, "SADX"),
			ConfigFiles:    []string{"sonicDX.ini"},
			CodeURL:        sadxCodeURL,
			PatchURL:       sadxPatchURL,
			DefaultProfile: "Default",
			Loader: domain.Loader{
				Name:              "SADXModLoader",
				URL:               sadxLoaderURL,
				RepoOwner:         "X-Hax",
				RepoName:          "sadx-mod-loader",
				VersionPath:       filepath.Join(configRoot, "SADXLoaderVersion.ini"),
				IniPath:           "mods/SADXModLoader.ini",
				DataDLLPath:       "System/CHRMODELS.dll",
				DataDLLOriginPath: "System/CHRMODELS_orig.dll",
				LoaderDLLName:     "SADXModLoader.dll",
			},
			Dependencies: []domain.Dependency{
				{Name: "BASS", Format: domain.FormatArchive, URL: bassURL},
				{Name: "SDL2", Format: domain.FormatArchive, URL: sdl2URL},
				{Name: "D3D8M", Format: domain.FormatDLL, URL: d3d8mURL},
			},
		},
		{
			ID:             domain.GameSA2,
			Name:           "Sonic Adventure 2",
			Abbreviation:   "SA2",
			Executables:    []string{"sonic2app.exe"},
			Executable:     "sonic2app.exe",
			ProfilesDir:    filepath.Join(configRoot, "SA2"),
			ConfigFiles:    []string{"Config/UserConfig.cfg", "Config/Keyboard.cfg"},
			DefaultProfile: "Default",
			Loader: domain.Loader{
				Name:        "SA2ModLoader",
				RepoOwner:   "X-Hax",
				RepoName:    "sa2-mod-loader",
				VersionPath: filepath.Join(configRoot, "SA2LoaderVersion.ini"),
				IniPath:     "mods/SA2ModLoader.ini",
			},
		},
	}
}
