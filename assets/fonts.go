// Package assets provides the fonts the HUD and menus draw with.
package assets

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontsOnce sync.Once
	regular   *text.GoTextFaceSource
	bold      *text.GoTextFaceSource
	fontsErr  error
)

func loadFonts() {
	regular, fontsErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if fontsErr != nil {
		fontsErr = fmt.Errorf("assets: load goregular: %w", fontsErr)
		return
	}
	bold, fontsErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if fontsErr != nil {
		fontsErr = fmt.Errorf("assets: load gobold: %w", fontsErr)
	}
}

// Face returns a Go font face at size pixels. If the embedded TTFs cannot be
// parsed it falls back to the fixed 7x13 bitmap font.
func Face(size float64, isBold bool) text.Face {
	fontsOnce.Do(loadFonts)
	if fontsErr != nil || size <= 0 {
		return Fixed()
	}
	src := regular
	if isBold {
		src = bold
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// Fixed returns the 7x13 bitmap face used for debug text.
func Fixed() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// FontsErr reports why Face fell back to the bitmap font, if it did.
func FontsErr() error {
	fontsOnce.Do(loadFonts)
	return fontsErr
}
