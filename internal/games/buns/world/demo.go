package world

import (
	"embed"
	"io/fs"
)

// DemoDir is the directory of the demo world inside DemoFS.
const DemoDir = "demo"

//go:embed demo
var demoFS embed.FS

// DemoFS returns the file system holding the built-in demo world.
func DemoFS() fs.FS {
	return demoFS
}

// LoadDemo loads the built-in demo world.
func LoadDemo() (*World, error) {
	return LoadWorld(demoFS, DemoDir)
}
