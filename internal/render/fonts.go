package render

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// fontSet is the three faces the renderer draws with.
type fontSet struct {
	large  font.Face
	medium font.Face
	small  font.Face
}

var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:/Windows/Fonts/arial.ttf",
}

// loadFonts builds the font set for a scale factor. It prefers the bundled
// Inter family, then OS font candidates, then the built-in bitmap font. It
// never fails; the image is best-effort presentation.
func loadFonts(fontsDir string, scale float64, logger zerolog.Logger) fontSet {
	sizeLarge := float64(baseFontLarge) * scale
	sizeMedium := float64(baseFontMedium) * scale
	sizeSmall := float64(baseFontSmall) * scale

	bundled := map[string]string{
		"large":  filepath.Join(fontsDir, "Inter-Bold.ttf"),
		"medium": filepath.Join(fontsDir, "Inter-Medium.ttf"),
		"small":  filepath.Join(fontsDir, "Inter-Regular.ttf"),
	}
	if large, ok := loadFace(bundled["large"], sizeLarge); ok {
		medium, _ := loadFace(bundled["medium"], sizeMedium)
		small, _ := loadFace(bundled["small"], sizeSmall)
		if medium != nil && small != nil {
			return fontSet{large: large, medium: medium, small: small}
		}
	}

	for _, path := range systemFontPaths {
		large, ok := loadFace(path, sizeLarge)
		if !ok {
			continue
		}
		medium, _ := loadFace(path, sizeMedium)
		small, _ := loadFace(path, sizeSmall)
		if medium != nil && small != nil {
			logger.Debug().Str("font", path).Msg("using system font")
			return fontSet{large: large, medium: medium, small: small}
		}
	}

	logger.Warn().Msg("no TTF fonts found, using built-in bitmap font")
	return fontSet{
		large:  basicfont.Face7x13,
		medium: basicfont.Face7x13,
		small:  basicfont.Face7x13,
	}
}

func loadFace(path string, size float64) (font.Face, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, false
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, false
	}
	return face, true
}
