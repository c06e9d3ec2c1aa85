package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"samm/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

// patchListSchema describes the Patches.json published alongside the loader
const patchListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["Patches"],
  "properties": {
    "Patches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["Name"],
        "properties": {
          "Name": {"type": "string", "minLength": 1},
          "Author": {"type": "string"},
          "Category": {"type": "string"},
          "Description": {"type": "string"}
        }
      }
    }
  }
}`

// PatchEntry is one patch as the loader describes it
type PatchEntry struct {
	Name        string `json:"Name"`
	Author      string `json:"Author,omitempty"`
	Category    string `json:"Category,omitempty"`
	Description string `json:"Description,omitempty"`
}

// PatchList is the decoded Patches.json
type PatchList struct {
	Patches []PatchEntry `json:"Patches"`
}

// PatchState pairs a listed patch with its value in a profile
type PatchState struct {
	Entry   PatchEntry
	ID      PatchID
	Known   bool // False when the list names a patch this build has no field for
	Enabled bool
}

// ValidatePatchList checks data against the patch list schema
func ValidatePatchList(data []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(patchListSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPatchListInvalid, err)
	}
	if !res.Valid() {
		var msgs []string
		for i, e := range res.Errors() {
			if i >= 5 {
				break
			}
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", domain.ErrPatchListInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

// ParsePatchList validates and decodes a patch list
func ParsePatchList(data []byte) (*PatchList, error) {
	if err := ValidatePatchList(data); err != nil {
		return nil, err
	}
	var list PatchList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPatchListInvalid, err)
	}
	return &list, nil
}

// LoadPatchList reads and decodes the patch list at path
func LoadPatchList(path string) (*PatchList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading patch list: %w", err)
	}
	list, err := ParsePatchList(data)
	if err != nil {
		return nil, &domain.SerializationError{Path: path, Err: err}
	}
	return list, nil
}

// States resolves every listed patch against the profile's toggles
func (l *PatchList) States(p *Patches) []PatchState {
	states := make([]PatchState, 0, len(l.Patches))
	for _, entry := range l.Patches {
		id, ok := ParsePatchID(entry.Name)
		state := PatchState{Entry: entry, ID: id, Known: ok}
		if ok {
			state.Enabled = p.Get(id)
		}
		states = append(states, state)
	}
	return states
}

// ApplyStates writes toggles keyed by patch name back into the profile.
// Nothing is changed when a name is unknown.
func ApplyStates(p *Patches, toggles map[string]bool) error {
	ids := make(map[PatchID]bool, len(toggles))
	for name, enabled := range toggles {
		id, ok := ParsePatchID(name)
		if !ok {
			return fmt.Errorf("unknown patch %q", name)
		}
		ids[id] = enabled
	}
	for id, enabled := range ids {
		if err := p.Set(id, enabled); err != nil {
			return err
		}
	}
	return nil
}
