package ebitensource

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/campus/controls"
)

var (
	keyTablesOnce sync.Once
	codeByKey     map[ebiten.Key]controls.KeyCode
	keyByCode     map[controls.KeyCode]ebiten.Key
)

// ebiten names keys after DOM codes except letters, which drop the "Key" prefix.
func buildKeyTables() {
	codeByKey = make(map[ebiten.Key]controls.KeyCode, int(ebiten.KeyMax)+1)
	keyByCode = make(map[controls.KeyCode]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		if name == "" {
			continue
		}
		if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
			name = "Key" + name
		}
		code := controls.KeyCode(name)
		codeByKey[k] = code
		if _, dup := keyByCode[code]; !dup {
			keyByCode[code] = k
		}
	}
}

// CodeForKey returns the DOM-style code for an ebiten key.
func CodeForKey(k ebiten.Key) controls.KeyCode {
	keyTablesOnce.Do(buildKeyTables)
	if code, ok := codeByKey[k]; ok {
		return code
	}
	return controls.KeyCode(k.String())
}

// KeyForCode is the inverse of CodeForKey.
func KeyForCode(code controls.KeyCode) (ebiten.Key, bool) {
	keyTablesOnce.Do(buildKeyTables)
	k, ok := keyByCode[code]
	return k, ok
}

// ButtonForMouse maps an ebiten mouse button to the DOM button numbering.
func ButtonForMouse(b ebiten.MouseButton) controls.Button {
	switch b {
	case ebiten.MouseButtonLeft:
		return controls.ButtonPrimary
	case ebiten.MouseButtonMiddle:
		return controls.ButtonAuxiliary
	case ebiten.MouseButtonRight:
		return controls.ButtonSecondary
	default:
		return controls.Button(b)
	}
}
