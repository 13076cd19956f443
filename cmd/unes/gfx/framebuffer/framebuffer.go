package framebuffer

/* The easy6502 display: a 32x32 grid of pixels mapped to memory at
 * $0200-$05FF, one byte per pixel, row major. Only the low 4 bits of
 * a byte select a color.
 */

import (
    "fmt"
)

const Width = 32
const Height = 32

const FrameAddress uint16 = 0x200
const FrameSize = Width * Height

/* reading $FE gives a random byte, $FF holds the ascii code of the last key pressed */
const RandomAddress uint16 = 0xfe
const KeyAddress uint16 = 0xff

type RGB struct {
    R, G, B byte
}

var Palette = [16]RGB{
    RGB{0x00, 0x00, 0x00}, /* black */
    RGB{0xff, 0xff, 0xff}, /* white */
    RGB{0x88, 0x00, 0x00}, /* red */
    RGB{0xaa, 0xff, 0xee}, /* cyan */
    RGB{0xcc, 0x44, 0xcc}, /* purple */
    RGB{0x00, 0xcc, 0x55}, /* green */
    RGB{0x00, 0x00, 0xaa}, /* blue */
    RGB{0xee, 0xee, 0x77}, /* yellow */
    RGB{0xdd, 0x88, 0x55}, /* orange */
    RGB{0x66, 0x44, 0x00}, /* brown */
    RGB{0xff, 0x77, 0x77}, /* light red */
    RGB{0x33, 0x33, 0x33}, /* dark grey */
    RGB{0x77, 0x77, 0x77}, /* grey */
    RGB{0xaa, 0xff, 0x66}, /* light green */
    RGB{0x00, 0x88, 0xff}, /* light blue */
    RGB{0xbb, 0xbb, 0xbb}, /* light grey */
}

func PixelColor(value byte) RGB {
    return Palette[value & 0xf]
}

/* convert a frame, as read from $0200, into RGBA bytes. pixels must hold
 * 4 bytes for every byte in frame
 */
func Render(frame []byte, pixels []byte) error {
    if len(frame) != FrameSize {
        return fmt.Errorf("frame has %v bytes, expected %v", len(frame), FrameSize)
    }

    if len(pixels) < len(frame) * 4 {
        return fmt.Errorf("pixel buffer has %v bytes, need %v", len(pixels), len(frame) * 4)
    }

    for i, value := range frame {
        color := PixelColor(value)
        /* red */
        pixels[i*4+0] = color.R
        /* green */
        pixels[i*4+1] = color.G
        /* blue */
        pixels[i*4+2] = color.B
        /* alpha */
        pixels[i*4+3] = 0xff
    }

    return nil
}

func MakePixels() []byte {
    return make([]byte, Width * Height * 4)
}
