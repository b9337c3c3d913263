package render

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/png"

	"predecessor-tracker/internal/domain"

	xdraw "golang.org/x/image/draw"
)

// iconCache loads icons from the local filesystem keyed by the canonical
// slug. A missing or unreadable file resolves to nil; rows simply render
// without that icon.
type iconCache struct {
	heroesDir   string
	rolesDir    string
	itemsDir    string
	augmentsDir string
}

func newIconCache(iconsDir string) *iconCache {
	return &iconCache{
		heroesDir:   filepath.Join(iconsDir, "heroes"),
		rolesDir:    filepath.Join(iconsDir, "roles"),
		itemsDir:    filepath.Join(iconsDir, "items"),
		augmentsDir: filepath.Join(iconsDir, "augments"),
	}
}

func (c *iconCache) hero(heroName string, size int) image.Image {
	return loadIcon(filepath.Join(c.heroesDir, domain.NameToSlug(heroName)+".png"), size)
}

func (c *iconCache) role(role string, size int) image.Image {
	slug := strings.ToLower(role)
	if slug == "" || slug == "none" || slug == "fill" {
		return nil
	}
	return loadIcon(filepath.Join(c.rolesDir, slug+".png"), size)
}

func (c *iconCache) item(itemName string, size int) image.Image {
	return loadIcon(filepath.Join(c.itemsDir, domain.NameToSlug(itemName)+".png"), size)
}

func (c *iconCache) augment(augmentName string, size int) image.Image {
	return loadIcon(filepath.Join(c.augmentsDir, domain.NameToSlug(augmentName)+".png"), size)
}

func loadIcon(path string, size int) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return resize(img, size)
}

func resize(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == size && bounds.Dy() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
