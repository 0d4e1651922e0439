package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinNames lists the bundled sample layouts in sorted order.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)

	return names
}

// Builtin parses a bundled sample layout by name.
func Builtin(name string) (*Layout, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: no builtin layout %q (have %s)",
			ErrInvalidLayout, name, strings.Join(BuiltinNames(), ", "))
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}

	return l, nil
}

// Resolve loads ref as a file path when it has a YAML extension, and as a
// builtin name otherwise.
func Resolve(ref string) (*Layout, error) {
	ext := strings.ToLower(path.Ext(ref))
	if ext == ".yaml" || ext == ".yml" {
		return Load(ref)
	}

	return Builtin(ref)
}
