package gfx

import (
    "context"
    "log"
    "sync"

    "github.com/kazzmir/unes/cmd/unes/gfx/framebuffer"

    "github.com/hajimehoshi/ebiten/v2"
    "github.com/hajimehoshi/ebiten/v2/inpututil"
)

/* window showing the easy6502 framebuffer. the emulator publishes copies of
 * $0200-$05FF and reads back the last key typed
 */
type Screen struct {
    quit context.Context
    scale int

    lock sync.Mutex
    frame []byte
    dirty bool
    lastKey byte

    pixels []byte
    image *ebiten.Image
}

func MakeScreen(quit context.Context, scale int) *Screen {
    if scale < 1 {
        scale = 1
    }

    return &Screen{
        quit: quit,
        scale: scale,
        frame: make([]byte, framebuffer.FrameSize),
        pixels: framebuffer.MakePixels(),
    }
}

func (screen *Screen) Publish(frame []byte){
    screen.lock.Lock()
    defer screen.lock.Unlock()
    copy(screen.frame, frame)
    screen.dirty = true
}

func (screen *Screen) LastKey() byte {
    screen.lock.Lock()
    defer screen.lock.Unlock()
    return screen.lastKey
}

func (screen *Screen) Update() error {
    select {
        case <-screen.quit.Done():
            return ebiten.Termination
        default:
    }

    keys := inpututil.AppendJustPressedKeys(nil)
    for _, key := range keys {
        switch key {
            case ebiten.KeyEscape:
                return ebiten.Termination
        }
    }

    typed := ebiten.AppendInputChars(nil)
    if len(typed) > 0 {
        last := typed[len(typed)-1]
        if last < 0x80 {
            screen.lock.Lock()
            screen.lastKey = byte(last)
            screen.lock.Unlock()
        }
    }

    return nil
}

func (screen *Screen) Draw(out *ebiten.Image){
    if screen.image == nil {
        screen.image = ebiten.NewImage(framebuffer.Width, framebuffer.Height)
        screen.dirty = true
    }

    screen.lock.Lock()
    if screen.dirty {
        err := framebuffer.Render(screen.frame, screen.pixels)
        if err != nil {
            log.Printf("Unable to render frame: %v", err)
        }
        screen.dirty = false
    }
    screen.lock.Unlock()

    screen.image.WritePixels(screen.pixels)

    var options ebiten.DrawImageOptions
    options.GeoM.Scale(float64(screen.scale), float64(screen.scale))
    out.DrawImage(screen.image, &options)
}

func (screen *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
    return framebuffer.Width * screen.scale, framebuffer.Height * screen.scale
}

/* must be called from the main goroutine, returns when the window closes */
func (screen *Screen) Run(title string) error {
    ebiten.SetWindowTitle(title)
    ebiten.SetWindowSize(framebuffer.Width * screen.scale, framebuffer.Height * screen.scale)

    err := ebiten.RunGame(screen)
    if err == ebiten.Termination {
        return nil
    }
    return err
}
