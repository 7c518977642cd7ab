package preset

import (
	"embed"
	"io/fs"
)

// builtinPresets embeds the presets shipped with the binary. They are
// loaded alongside user presets so the picker always has entries, even
// on a fresh install.
//
//go:embed builtin/*.yaml
var builtinPresets embed.FS

// BuiltinFS returns the embedded filesystem holding the bundled
// presets.
func BuiltinFS() fs.FS {
	return builtinPresets
}
