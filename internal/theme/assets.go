package theme

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"

	hqerrors "github.com/kostyay/basementhq/internal/errors"
)

// AssetKind names an uploadable asset.
type AssetKind string

const (
	AssetLogo       AssetKind = "logo"
	AssetBackground AssetKind = "background"
	AssetFont       AssetKind = "font"
)

// Fixed file names inside the asset directory.
const (
	logoFile       = "logo.png"
	backgroundFile = "background.png"
	fontBase       = "custom_font"
)

// fontFormats maps accepted font extensions to their CSS format tag.
var fontFormats = map[string]string{
	".ttf": "truetype",
	".otf": "opentype",
}

// ParseAssetKind validates an asset kind name.
func ParseAssetKind(s string) (AssetKind, error) {
	switch k := AssetKind(strings.ToLower(s)); k {
	case AssetLogo, AssetBackground, AssetFont:
		return k, nil
	}
	return "", hqerrors.New(hqerrors.ErrAsset,
		fmt.Sprintf("Unknown asset kind %q", s),
		"Use one of: logo, background, font")
}

// Assets stores uploaded files at well-known paths under one directory.
type Assets struct {
	dir string
}

// NewAssets returns an asset store rooted at dir.
func NewAssets(dir string) *Assets {
	return &Assets{dir: dir}
}

// Dir returns the asset directory.
func (a *Assets) Dir() string {
	return a.dir
}

// LogoPath returns the uploaded logo path, or "" if none exists.
func (a *Assets) LogoPath() string {
	return existing(filepath.Join(a.dir, logoFile))
}

// BackgroundPath returns the uploaded background path, or "" if none exists.
func (a *Assets) BackgroundPath() string {
	return existing(filepath.Join(a.dir, backgroundFile))
}

// FontPath returns the uploaded font path, or "" if none exists. If both
// extensions are somehow present the most recently modified wins.
func (a *Assets) FontPath() string {
	var best string
	var bestMod int64
	for ext := range fontFormats {
		p := filepath.Join(a.dir, fontBase+ext)
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best, bestMod = p, mod
		}
	}
	return best
}

// Save stores an upload of the given kind. filename is only used for its
// extension, which must be .png for images and .ttf/.otf for fonts.
// Saving a font removes the previously stored font of the other extension.
// It returns the path written.
func (a *Assets) Save(kind AssetKind, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var target string
	switch kind {
	case AssetLogo, AssetBackground:
		if ext != ".png" {
			return "", hqerrors.New(hqerrors.ErrAsset,
				fmt.Sprintf("Unsupported %s file %q", kind, filename),
				"Upload a .png image")
		}
		target = logoFile
		if kind == AssetBackground {
			target = backgroundFile
		}
	case AssetFont:
		if _, ok := fontFormats[ext]; !ok {
			return "", hqerrors.New(hqerrors.ErrAsset,
				fmt.Sprintf("Unsupported font file %q", filename),
				"Upload a .ttf or .otf font")
		}
		target = fontBase + ext
	default:
		return "", hqerrors.New(hqerrors.ErrAsset,
			fmt.Sprintf("Unknown asset kind %q", kind),
			"Use one of: logo, background, font")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := os.MkdirAll(a.dir, 0750); err != nil {
		return "", hqerrors.WrapWithCode(err, hqerrors.ErrAsset,
			"Cannot create asset directory "+a.dir,
			"Check that the data directory is writable")
	}
	path := filepath.Join(a.dir, target)
	if err := atomicwriter.WriteFile(path, data, 0644); err != nil {
		return "", hqerrors.WrapWithCode(err, hqerrors.ErrAsset,
			"Cannot write asset "+path,
			"Check that the data directory is writable")
	}

	if kind == AssetFont {
		for other := range fontFormats {
			if other == ext {
				continue
			}
			stale := filepath.Join(a.dir, fontBase+other)
			if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
				return path, fmt.Errorf("remove previous font: %w", err)
			}
		}
	}
	return path, nil
}

// Remove deletes the stored asset of the given kind, if any.
func (a *Assets) Remove(kind AssetKind) error {
	var paths []string
	switch kind {
	case AssetLogo:
		paths = []string{filepath.Join(a.dir, logoFile)}
	case AssetBackground:
		paths = []string{filepath.Join(a.dir, backgroundFile)}
	case AssetFont:
		for ext := range fontFormats {
			paths = append(paths, filepath.Join(a.dir, fontBase+ext))
		}
	default:
		return fmt.Errorf("unknown asset kind %q", kind)
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func existing(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
