package settings

import (
	"fmt"
	"strings"
)

// PatchID names one of the loader's built-in patches
type PatchID int

const (
	PatchHRTFSound PatchID = iota
	PatchKeepCamSettings
	PatchFixVertexColorRendering
	PatchMaterialColorFix
	PatchNodeLimit
	PatchFOVFix
	PatchSkyChaseResolutionFix
	PatchChaos2CrashFix
	PatchChunkSpecularFix
	PatchE102NGonFix
	PatchChaoPanelFix
	PatchPixelOffSetFix
	PatchLightFix
	PatchKillGBIX
	PatchDisableCDCheck
	PatchExtendedSaveSupport
	PatchCrashGuard
	patchCount
)

var patchNames = [patchCount]string{
	PatchHRTFSound:               "HRTFSound",
	PatchKeepCamSettings:         "KeepCamSettings",
	PatchFixVertexColorRendering: "FixVertexColorRendering",
	PatchMaterialColorFix:        "MaterialColorFix",
	PatchNodeLimit:               "NodeLimit",
	PatchFOVFix:                  "FOVFix",
	PatchSkyChaseResolutionFix:   "SkyChaseResolutionFix",
	PatchChaos2CrashFix:          "Chaos2CrashFix",
	PatchChunkSpecularFix:        "ChunkSpecularFix",
	PatchE102NGonFix:             "E102NGonFix",
	PatchChaoPanelFix:            "ChaoPanelFix",
	PatchPixelOffSetFix:          "PixelOffSetFix",
	PatchLightFix:                "LightFix",
	PatchKillGBIX:                "KillGBIX",
	PatchDisableCDCheck:          "DisableCDCheck",
	PatchExtendedSaveSupport:     "ExtendedSaveSupport",
	PatchCrashGuard:              "CrashGuard",
}

func (id PatchID) String() string {
	if id < 0 || id >= patchCount {
		return "unknown"
	}
	return patchNames[id]
}

// AllPatches lists every patch in declaration order
func AllPatches() []PatchID {
	ids := make([]PatchID, patchCount)
	for i := range ids {
		ids[i] = PatchID(i)
	}
	return ids
}

// ParsePatchID maps a patch name as it appears in the patch list ("FOV Fix")
// or in a profile ("FOVFix") to its ID. Spaces and case are ignored.
func ParsePatchID(name string) (PatchID, bool) {
	key := strings.ReplaceAll(strings.TrimSpace(name), " ", "")
	for i, n := range patchNames {
		if strings.EqualFold(n, key) {
			return PatchID(i), true
		}
	}
	return 0, false
}

func (p *Patches) field(id PatchID) *bool {
	switch id {
	case PatchHRTFSound:
		return &p.HRTFSound
	case PatchKeepCamSettings:
		return &p.KeepCamSettings
	case PatchFixVertexColorRendering:
		return &p.FixVertexColorRendering
	case PatchMaterialColorFix:
		return &p.MaterialColorFix
	case PatchNodeLimit:
		return &p.NodeLimit
	case PatchFOVFix:
		return &p.FOVFix
	case PatchSkyChaseResolutionFix:
		return &p.SkyChaseResolutionFix
	case PatchChaos2CrashFix:
		return &p.Chaos2CrashFix
	case PatchChunkSpecularFix:
		return &p.ChunkSpecularFix
	case PatchE102NGonFix:
		return &p.E102NGonFix
	case PatchChaoPanelFix:
		return &p.ChaoPanelFix
	case PatchPixelOffSetFix:
		return &p.PixelOffSetFix
	case PatchLightFix:
		return &p.LightFix
	case PatchKillGBIX:
		return &p.KillGBIX
	case PatchDisableCDCheck:
		return &p.DisableCDCheck
	case PatchExtendedSaveSupport:
		return &p.ExtendedSaveSupport
	case PatchCrashGuard:
		return &p.CrashGuard
	default:
		return nil
	}
}

// Get reports whether a patch is enabled. Unknown IDs are never enabled.
func (p *Patches) Get(id PatchID) bool {
	if f := p.field(id); f != nil {
		return *f
	}
	return false
}

// Set toggles a patch
func (p *Patches) Set(id PatchID, enabled bool) error {
	f := p.field(id)
	if f == nil {
		return fmt.Errorf("unknown patch id %d", id)
	}
	*f = enabled
	return nil
}

// SetByName toggles a patch by its display or field name
func (p *Patches) SetByName(name string, enabled bool) error {
	id, ok := ParsePatchID(name)
	if !ok {
		return fmt.Errorf("unknown patch %q", name)
	}
	return p.Set(id, enabled)
}
