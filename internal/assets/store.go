// Package assets locates and decodes textures and sounds. It has no GL or
// audio device dependencies; the game package uploads and plays what it
// returns.
package assets

import (
	"os"
	"path/filepath"

	"solarsystem/internal/solar"
)

// Asset kinds reported in *solar.AssetError.
const (
	KindTexture = "texture"
	KindSound   = "sound"
)

// Store resolves asset references relative to a root directory.
type Store struct {
	Root string
}

func (s Store) Path(ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(s.Root, filepath.FromSlash(ref))
}

// Check reports whether ref exists as a regular file.
func (s Store) Check(kind, ref string) error {
	p := s.Path(ref)
	fi, err := os.Stat(p)
	if err != nil {
		return &solar.AssetError{Kind: kind, Path: p, Err: err}
	}
	if fi.IsDir() {
		return &solar.AssetError{Kind: kind, Path: p, Err: errIsDir}
	}
	return nil
}

func (s Store) Open(kind, ref string) (*os.File, error) {
	p := s.Path(ref)
	f, err := os.Open(p)
	if err != nil {
		return nil, &solar.AssetError{Kind: kind, Path: p, Err: err}
	}
	return f, nil
}
