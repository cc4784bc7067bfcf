package vm

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// spriteWidth is the pixel width of one sprite row byte.
const spriteWidth = 8

// Display is the monochrome pixel buffer, indexed as display[y][x].
type Display [DisplayHeight][DisplayWidth]bool

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside the display are reported as unlit.
func (d Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d[y][x]
}

func (d *Display) clear() {
	*d = Display{}
}

// drawSprite XORs the sprite rows onto the display with the top left corner
// at (x mod 64, y mod 32). Rows and columns past the display edge are clipped.
// It returns whether any lit pixel was cleared and whether any pixel toggled.
func (d *Display) drawSprite(x, y uint8, sprite []byte) (collision, toggled bool) {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight

	for row, data := range sprite {
		py := originY + row
		if py >= DisplayHeight {
			break
		}

		for bit := range spriteWidth {
			px := originX + bit
			if px >= DisplayWidth {
				break
			}
			if data&(0x80>>bit) == 0 {
				continue
			}

			if d[py][px] {
				collision = true
			}
			d[py][px] = !d[py][px]
			toggled = true
		}
	}
	return collision, toggled
}
