package profile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/extframework/extlaunch/internal/repository"
)

// Profile holds launch defaults.
type Profile struct {
	MainClass  string      `toml:"main_class"`
	Classpath  []string    `toml:"classpath"`
	Args       []string    `toml:"args"`
	Version    string      `toml:"version"`
	WorkingDir string      `toml:"working_dir"`
	Extensions []Extension `toml:"extensions"`
}

// Extension is a requested extension and the repository it comes from.
type Extension struct {
	Descriptor string `toml:"descriptor"`
	Repository string `toml:"repository"`
}

// Load decodes the profile at path. Unknown keys are an error.
func Load(path string) (*Profile, error) {
	var p Profile
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading profile %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	p.resolvePaths(filepath.Dir(path))
	for i, e := range p.Extensions {
		if strings.TrimSpace(e.Descriptor) == "" {
			return nil, fmt.Errorf("loading profile %s: extension %d has no descriptor", path, i)
		}
		if _, err := repository.Parse(e.Repository); err != nil {
			return nil, fmt.Errorf("loading profile %s: extension %s: %w", path, e.Descriptor, err)
		}
	}
	return &p, nil
}

func (p *Profile) resolvePaths(base string) {
	abs := func(s string) string {
		if s == "" || filepath.IsAbs(s) {
			return s
		}
		return filepath.Join(base, s)
	}

	for i, e := range p.Classpath {
		p.Classpath[i] = abs(e)
	}
	p.WorkingDir = abs(p.WorkingDir)
	for i, e := range p.Extensions {
		typ, loc, ok := strings.Cut(e.Repository, "@")
		if ok && repository.Type(strings.ToLower(typ)) == repository.Local {
			p.Extensions[i].Repository = typ + "@" + abs(loc)
		}
	}
}
