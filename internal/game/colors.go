package game

import (
	"image/color"

	"chosenoffset.com/frontier/internal/world/biome"
	"chosenoffset.com/frontier/internal/world/resource"
)

var (
	colorBackground = color.RGBA{0x1a, 0x25, 0x2f, 0xff}
	colorBorder     = color.RGBA{0x2c, 0x3e, 0x50, 0xff}
	colorGrid       = color.RGBA{0xff, 0xff, 0xff, 0x0d}
	colorPlayer     = color.RGBA{0x32, 0xb8, 0xc6, 0xff}
	colorHighlight  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorProgress   = color.RGBA{0x32, 0xb8, 0xc6, 0xff}
	colorText       = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
	colorPanel      = color.RGBA{0x00, 0x00, 0x00, 0x80}
)

// BiomeColor returns the ground colour for a biome.
func BiomeColor(b biome.Biome) color.RGBA {
	switch b {
	case biome.Forest:
		return color.RGBA{0x35, 0x78, 0x56, 0xff}
	case biome.Plains:
		return color.RGBA{0xb5, 0xd5, 0x6e, 0xff}
	case biome.Desert:
		return color.RGBA{0xe0, 0xc5, 0x85, 0xff}
	case biome.Snow:
		return color.RGBA{0xea, 0xf7, 0xfa, 0xff}
	case biome.Swamp:
		return color.RGBA{0x48, 0x4f, 0x43, 0xff}
	default:
		return color.RGBA{0x32, 0xb8, 0xc6, 0xff}
	}
}

// ResourceColor returns the marker colour for a resource type.
func ResourceColor(t resource.Type) color.RGBA {
	switch t {
	case resource.Wood:
		return color.RGBA{0x8b, 0x5a, 0x2b, 0xff}
	case resource.Stone:
		return color.RGBA{0x80, 0x80, 0x80, 0xff}
	case resource.Food:
		return color.RGBA{0xd9, 0x3a, 0x3a, 0xff}
	case resource.Mineral:
		return color.RGBA{0x9b, 0x59, 0xb6, 0xff}
	default:
		return colorHighlight
	}
}
