// package profile loads sandbox profiles: which native libraries an engine
// instance gets, its stack ceiling and the external types it declares.
// Profiles are JWCC (JSON with commas and comments) files.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/tailscale/hujson"

	"github.com/corposant/stevedore/engine"
	"github.com/corposant/stevedore/std"
	"github.com/corposant/stevedore/types"
)

// Libraries installable by a profile, by global name.
var libs = map[string]*types.Table{
	"text":   std.Libtext,
	"seq":    std.Libseq,
	"buffer": std.Libbuffer,
}

// LibNames returns the installable library names, sorted.
func LibNames() []string {
	names := make([]string, 0, len(libs))
	for n := range libs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// TypeDecl declares one external type the instance registers at apply time.
// Host code retrieves the tag by name afterwards to attach methods and store
// values.
type TypeDecl struct {
	Name string `json:"name"`
}

// Profile describes one engine instance configuration.
type Profile struct {
	Name      string     `json:"name"`
	MaxStack  int        `json:"maxStack,omitempty"` // 0 keeps the default ceiling
	Libraries []string   `json:"libraries"`
	Types     []TypeDecl `json:"types,omitempty"`
}

// Parse decodes a JWCC profile.
func Parse(b []byte) (*Profile, error) {
	plain, err := hujson.Standardize(b)
	if err != nil {
		return nil, fmt.Errorf("error standardising profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(plain, &p); err != nil {
		return nil, fmt.Errorf("error decoding profile: %w", err)
	}
	return &p, nil
}

// Load reads and decodes a JWCC profile file.
func Load(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profile: %w", err)
	}
	return Parse(b)
}

// Validate checks the profile for configuration errors: a negative stack
// ceiling, an unknown or repeated library, a repeated type declaration.
func (p *Profile) Validate() error {
	if p.MaxStack < 0 {
		return fmt.Errorf("negative stack ceiling %d", p.MaxStack)
	}

	seen := map[string]bool{}
	for _, l := range p.Libraries {
		if _, ok := libs[l]; !ok {
			return fmt.Errorf("unknown library '%s'", l)
		}
		if seen[l] {
			return fmt.Errorf("library '%s' listed twice", l)
		}
		seen[l] = true
	}

	decls := map[string]bool{}
	for _, d := range p.Types {
		if d.Name == "" {
			return fmt.Errorf("type declaration with no name")
		}
		if decls[d.Name] {
			return fmt.Errorf("type '%s' declared twice", d.Name)
		}
		decls[d.Name] = true
	}
	return nil
}

// Apply configures an engine instance from the profile: ceiling, library
// globals and declared type tags. The profile must validate first; applying
// an invalid profile panics on the same errors RegisterType does.
func (p *Profile) Apply(s *engine.State) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.MaxStack > 0 {
		s.SetCeiling(p.MaxStack)
	}
	for _, l := range p.Libraries {
		s.SetGlobal(l, libs[l])
	}
	for _, d := range p.Types {
		engine.RegisterType(s, d.Name)
	}
	return nil
}
