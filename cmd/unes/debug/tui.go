package debug

import (
    "context"
    "fmt"
    "strings"
    "sync"

    nes "github.com/kazzmir/unes/lib"

    "github.com/jroimartin/gocui"
)

const maxLogLines = 200

/* terminal front end for the debugger. keys are turned into debug commands
 * and every snapshot the debugger publishes is drawn
 */
type TUI struct {
    debugger *DefaultDebugger
    lock sync.Mutex
    snapshot Snapshot
    haveSnapshot bool
    logLines []string
    gui *gocui.Gui
}

func MakeTUI(debugger *DefaultDebugger) *TUI {
    return &TUI{
        debugger: debugger,
    }
}

/* log output sink, so log.Printf does not scribble over the terminal */
func (tui *TUI) Write(data []byte) (int, error) {
    tui.lock.Lock()
    for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
        tui.logLines = append(tui.logLines, line)
    }
    if len(tui.logLines) > maxLogLines {
        tui.logLines = tui.logLines[len(tui.logLines) - maxLogLines:]
    }
    tui.lock.Unlock()

    tui.update(tui.redraw)

    return len(data), nil
}

/* queue f on the gui. once Run has stopped the main loop this does nothing */
func (tui *TUI) update(f func(*gocui.Gui) error){
    tui.lock.Lock()
    defer tui.lock.Unlock()
    if tui.gui != nil {
        tui.gui.Update(f)
    }
}

func (tui *TUI) detach(){
    tui.lock.Lock()
    tui.gui = nil
    tui.lock.Unlock()
}

func FormatFlags(status byte) string {
    names := "NV-BDIZC"
    var out strings.Builder
    for i := 0; i < 8; i++ {
        bit := byte(1 << (7 - i))
        if status & bit == bit {
            out.WriteByte(names[i])
        } else {
            out.WriteByte(strings.ToLower(names[i:i+1])[0])
        }
    }
    return out.String()
}

func FormatRegisters(snapshot Snapshot) string {
    cpu := snapshot.CPU
    state := "running"
    if snapshot.Stopped {
        state = "stopped"
    }
    if !cpu.Running {
        state = "halted"
    }

    return fmt.Sprintf(" PC: %04X  SP: %02X  %v\n A: %02X  X: %02X  Y: %02X\n P: %02X  %v\n Cycles: %v\n",
                       cpu.PC, cpu.SP, state, cpu.A, cpu.X, cpu.Y, cpu.Status, FormatFlags(cpu.Status), cpu.Cycle)
}

func FormatListing(snapshot Snapshot) string {
    breakpoints := make(map[uint16]bool)
    for _, breakpoint := range snapshot.Breakpoints {
        breakpoints[breakpoint.PC] = true
    }

    var out strings.Builder
    for i, instruction := range snapshot.Listing {
        marker := " "
        if breakpoints[instruction.Address] {
            marker = "*"
        }
        cursor := " "
        if i == 0 {
            cursor = ">"
        }
        out.WriteString(fmt.Sprintf("%v%v %04X  %-8v  %v\n", marker, cursor, instruction.Address, instruction.Bytes(), instruction.String()))
    }
    return out.String()
}

/* 16 bytes per line with the address of the first one */
func FormatMemory(base uint16, data []byte) string {
    var out strings.Builder
    for line := 0; line < len(data); line += 16 {
        out.WriteString(fmt.Sprintf("%04X:", int(base) + line))
        for i := line; i < line + 16 && i < len(data); i++ {
            out.WriteString(fmt.Sprintf(" %02X", data[i]))
        }
        out.WriteByte('\n')
    }
    return out.String()
}

func (tui *TUI) redraw(gui *gocui.Gui) error {
    tui.lock.Lock()
    defer tui.lock.Unlock()

    if view, err := gui.View("registers"); err == nil && tui.haveSnapshot {
        view.Clear()
        fmt.Fprint(view, FormatRegisters(tui.snapshot))
    }

    if view, err := gui.View("code"); err == nil && tui.haveSnapshot {
        view.Clear()
        fmt.Fprint(view, FormatListing(tui.snapshot))
    }

    if view, err := gui.View("memory"); err == nil && tui.haveSnapshot {
        view.Clear()
        fmt.Fprint(view, FormatMemory(0, tui.snapshot.ZeroPage))
        fmt.Fprintln(view)
        fmt.Fprint(view, FormatMemory(nes.StackBase, tui.snapshot.Stack))
    }

    if view, err := gui.View("log"); err == nil {
        view.Clear()
        _, height := view.Size()
        lines := tui.logLines
        if height > 0 && len(lines) > height {
            lines = lines[len(lines) - height:]
        }
        fmt.Fprint(view, strings.Join(lines, "\n"))
    }

    return nil
}

func (tui *TUI) layout(gui *gocui.Gui) error {
    maxX, maxY := gui.Size()
    if maxX < 70 || maxY < 26 {
        view, err := gui.SetView("small", 0, 0, maxX - 1, maxY - 1)
        if err != nil && err != gocui.ErrUnknownView {
            return err
        }
        view.Clear()
        fmt.Fprintf(view, "terminal too small")
        return nil
    }
    gui.DeleteView("small")

    logTop := maxY - 8

    views := []struct{
        Name string
        Title string
        X0, Y0, X1, Y1 int
    }{
        {"registers", "registers", 0, 0, 40, 5},
        {"code", "code", 0, 6, 40, logTop - 1},
        {"memory", "zero page / stack", 41, 0, maxX - 1, logTop - 1},
        {"log", "log  s:step c:continue p:pause b:breakpoint q:quit", 0, logTop, maxX - 1, maxY - 1},
    }

    for _, info := range views {
        view, err := gui.SetView(info.Name, info.X0, info.Y0, info.X1, info.Y1)
        if err != nil {
            if err != gocui.ErrUnknownView {
                return err
            }
            view.Title = info.Title
        }
    }

    return tui.redraw(gui)
}

func (tui *TUI) send(command DebugCommand) func(*gocui.Gui, *gocui.View) error {
    return func(gui *gocui.Gui, view *gocui.View) error {
        select {
            case tui.debugger.Commands <- command:
            default:
        }
        return nil
    }
}

func (tui *TUI) toggleBreakpoint(gui *gocui.Gui, view *gocui.View) error {
    tui.lock.Lock()
    pc := tui.snapshot.CPU.PC
    have := tui.haveSnapshot
    tui.lock.Unlock()

    if have {
        return tui.send(&DebugCommandToggleBreakpoint{PC: pc})(gui, view)
    }
    return nil
}

func quitGui(gui *gocui.Gui, view *gocui.View) error {
    return gocui.ErrQuit
}

func (tui *TUI) keybindings(gui *gocui.Gui) error {
    bindings := []struct{
        Key interface{}
        Handler func(*gocui.Gui, *gocui.View) error
    }{
        {'s', tui.send(DebugCommandStep)},
        {gocui.KeySpace, tui.send(DebugCommandStep)},
        {'c', tui.send(DebugCommandContinue)},
        {'p', tui.send(DebugCommandPause)},
        {'b', tui.toggleBreakpoint},
        {'q', quitGui},
        {gocui.KeyCtrlC, quitGui},
    }

    for _, binding := range bindings {
        err := gui.SetKeybinding("", binding.Key, gocui.ModNone, binding.Handler)
        if err != nil {
            return err
        }
    }

    return nil
}

/* blocks until the user quits or quit is cancelled. cancel is called on the
 * way out so the emulator stops too
 */
func (tui *TUI) Run(quit context.Context, cancel context.CancelFunc) error {
    defer cancel()

    gui, err := gocui.NewGui(gocui.OutputNormal)
    if err != nil {
        return err
    }
    defer gui.Close()

    tui.lock.Lock()
    tui.gui = gui
    tui.lock.Unlock()

    defer tui.detach()

    gui.SetManagerFunc(tui.layout)

    err = tui.keybindings(gui)
    if err != nil {
        return err
    }

    done := make(chan struct{})
    defer close(done)

    go func(){
        for {
            select {
                case <-done:
                    return
                case <-quit.Done():
                    tui.update(func(*gocui.Gui) error {
                        return gocui.ErrQuit
                    })
                    return
                case snapshot := <-tui.debugger.Updates:
                    tui.lock.Lock()
                    tui.snapshot = snapshot
                    tui.haveSnapshot = true
                    tui.lock.Unlock()
                    tui.update(tui.redraw)
            }
        }
    }()

    err = gui.MainLoop()
    tui.detach()
    if err != nil && err != gocui.ErrQuit {
        return err
    }
    return nil
}

var _ Debugger = (*DefaultDebugger)(nil)
