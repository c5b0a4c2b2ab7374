// Package theme turns stored theme settings and uploaded assets into the
// parameters a renderer needs: colors, font stack and inline asset blocks.
package theme

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/config"
)

// Values is the read side of the config store.
type Values interface {
	Value(key string) string
}

// RenderParameters is everything the presentation layer needs to style
// the board. The blocks are complete CSS rules or empty.
type RenderParameters struct {
	ThemeName       string `json:"theme"`
	Title           string `json:"title"`
	PrimaryColor    Color  `json:"primary_color"`
	BackgroundColor Color  `json:"background_color"`
	CardColor       Color  `json:"card_color"`
	FontFamily      string `json:"font_family"`
	FontFamilyStack string `json:"font_family_stack"`
	FontFaceBlock   string `json:"font_face_block,omitempty"`
	BackgroundBlock string `json:"background_block,omitempty"`
	LogoPath        string `json:"logo_path,omitempty"`
}

// Resolver builds RenderParameters from the store and the asset directory.
type Resolver struct {
	table  *Table
	assets *Assets
	log    *zap.Logger
}

// NewResolver returns a resolver using the built-in palettes.
func NewResolver(assets *Assets, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{table: Builtin(), assets: assets, log: log}
}

// Resolve reads the theme keys and assets. It never fails: an unknown
// theme gets the default palette and an unreadable asset is left out.
func (r *Resolver) Resolve(values Values) RenderParameters {
	name := values.Value(config.KeyTheme)
	pal := r.table.Lookup(name)

	params := RenderParameters{
		ThemeName:       pal.Name,
		Title:           values.Value(config.KeyAppTitle),
		PrimaryColor:    pal.Primary,
		BackgroundColor: pal.Background,
		CardColor:       pal.Card,
		FontFamily:      values.Value(config.KeyFont),
	}

	if fontPath := r.assets.FontPath(); fontPath != "" {
		block, err := fontFaceBlock(fontPath)
		if err != nil {
			r.log.Warn("custom font not embedded", zap.String("path", fontPath), zap.Error(err))
		} else {
			params.FontFaceBlock = block
		}
	}
	params.FontFamilyStack = FontStack(params.FontFamily, params.FontFaceBlock != "")

	if bgPath := r.assets.BackgroundPath(); bgPath != "" {
		block, err := backgroundBlock(bgPath)
		if err != nil {
			r.log.Warn("background not embedded", zap.String("path", bgPath), zap.Error(err))
		} else {
			params.BackgroundBlock = block
		}
	}

	params.LogoPath = values.Value(config.KeyLogoPath)
	if params.LogoPath == "" {
		params.LogoPath = r.assets.LogoPath()
	}
	return params
}

// Stylesheet concatenates the parameters into one stylesheet.
func (p RenderParameters) Stylesheet() string {
	var b strings.Builder
	fmt.Fprintf(&b, ":root {\n  --hq-primary: %s;\n  --hq-background: %s;\n  --hq-card: %s;\n  --hq-font: %s;\n}\n",
		p.PrimaryColor, p.BackgroundColor, p.CardColor, p.FontFamilyStack)
	if p.FontFaceBlock != "" {
		b.WriteString(p.FontFaceBlock)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "body {\n  background-color: %s;\n  color: %s;\n  font-family: %s;\n}\n",
		p.BackgroundColor, p.PrimaryColor, p.FontFamilyStack)
	fmt.Fprintf(&b, ".card {\n  background-color: %s;\n  border: 1px solid %s;\n}\n", p.CardColor, p.PrimaryColor)
	if p.BackgroundBlock != "" {
		b.WriteString(p.BackgroundBlock)
		b.WriteString("\n")
	}
	return b.String()
}

func fontFaceBlock(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := fontFormats[ext]
	if !ok {
		return "", fmt.Errorf("unsupported font extension %q", ext)
	}
	uri, err := dataURI(path, "font/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("@font-face {\n  font-family: %q;\n  src: url(%s) format(%q);\n}", CustomFontFamily, uri, format), nil
}

func backgroundBlock(path string) (string, error) {
	uri, err := dataURI(path, "image/png")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("body {\n  background-image: url(%s);\n  background-size: cover;\n  background-attachment: fixed;\n}", uri), nil
}

func dataURI(path, mime string) (string, error) {
	// #nosec G304 - path is one of the fixed asset locations
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
