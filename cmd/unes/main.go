package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "log"
    "os"
    "os/signal"
    "strings"

    nes "github.com/kazzmir/unes/lib"
    "github.com/kazzmir/unes/cmd/unes/common"
    "github.com/kazzmir/unes/cmd/unes/debug"
    "github.com/kazzmir/unes/cmd/unes/gfx"
    "github.com/kazzmir/unes/cmd/unes/thread"
    "github.com/kazzmir/unes/data"

    "github.com/fatih/color"
)

type addressList []string

func (list *addressList) String() string {
    return strings.Join(*list, ",")
}

func (list *addressList) Set(value string) error {
    *list = append(*list, value)
    return nil
}

type Options struct {
    Path string
    Example string
    Address uint16
    Trace bool
    Disassemble bool
    Debug bool
    Screen bool
    Realtime bool
    MaxCycles uint64
    Scale int
    Breakpoints []uint16
}

func listExamples(filter string){
    for _, name := range data.ListPrograms() {
        if strings.Contains(name, filter) {
            fmt.Println(name)
        }
    }
}

func loadProgram(options Options) ([]byte, error) {
    if options.Example != "" {
        return common.ReadExample(options.Example)
    }
    return common.ReadProgram(common.FindFile(options.Path))
}

func runDebugger(emulator *common.Emulator, breakpoints []uint16) error {
    debugger := debug.MakeDebugger()
    for _, breakpoint := range breakpoints {
        debugger.AddPCBreakpoint(breakpoint)
    }
    emulator.Debugger = debugger

    tui := debug.MakeTUI(debugger)
    log.SetOutput(tui)
    defer log.SetOutput(os.Stderr)

    group := thread.NewThreadGroup(context.Background())

    var runError error
    group.SpawnWithCancel(func(quit context.Context, cancel context.CancelFunc){
        runError = emulator.Run(quit)
        if runError != nil {
            log.Printf("Error: %v", runError)
        }
        /* leave the terminal up so the final state can be inspected */
    })

    err := tui.Run(group.Context(), group.Cancel)
    group.Wait()

    if err != nil {
        return err
    }
    return runError
}

func runScreen(emulator *common.Emulator, scale int) error {
    group := thread.NewThreadGroup(context.Background())

    screen := gfx.MakeScreen(group.Context(), scale)
    emulator.Screen = screen

    var runError error
    group.Spawn(func(){
        runError = emulator.Run(group.Context())
        if runError != nil {
            log.Printf("Error: %v", runError)
        }
    })

    /* ebiten has to own the main thread */
    err := screen.Run("unes")
    group.Cancel()
    group.Wait()

    if err != nil {
        return err
    }
    return runError
}

func Run(options Options) error {
    program, err := loadProgram(options)
    if err != nil {
        return err
    }

    if options.Disassemble {
        return printListing(os.Stdout, options.Address, program)
    }

    cpu := nes.StartupState()
    err = cpu.LoadExecutable(options.Address, program)
    if err != nil {
        return err
    }

    if options.Trace {
        cpu.Debug = 1
        log.Printf("Loaded %v bytes at 0x%04x sha256 %v", len(program), options.Address, common.GetSha256(program))
        nes.DumpInstructions(options.Address, program)
    }

    emulator := common.MakeEmulator(cpu)
    emulator.Realtime = options.Realtime
    emulator.MaxCycles = options.MaxCycles

    switch {
        case options.Debug:
            err = runDebugger(emulator, options.Breakpoints)
        case options.Screen:
            err = runScreen(emulator, options.Scale)
        default:
            quit, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
            err = emulator.Run(quit)
            cancel()
    }

    printState(os.Stdout, cpu)

    if errors.Is(err, common.MaxCyclesReached) {
        log.Printf("Stopped after %v cycles", cpu.Cycle)
        return nil
    }

    return err
}

func isFlagSet(name string) bool {
    found := false
    flag.Visit(func(set *flag.Flag){
        if set.Name == name {
            found = true
        }
    })
    return found
}

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    config, err := common.LoadConfigData()
    if err != nil && !errors.Is(err, os.ErrNotExist) {
        log.Printf("Could not load config: %v", err)
    }

    var breakpoints addressList
    breakpoints = append(breakpoints, config.Breakpoints...)

    address := flag.String("address", config.LoadAddress, "Load address of the program in hex")
    example := flag.String("example", "", "Run a built in example program instead of a file")
    list := flag.Bool("list", false, "List the built in example programs whose name contains the argument")
    trace := flag.Bool("trace", false, "Log every instruction")
    disassemble := flag.Bool("disassemble", false, "Print the program as assembly and exit")
    debugMode := flag.Bool("debug", false, "Run in the terminal debugger")
    screen := flag.Bool("screen", false, "Show the 32x32 display at $0200")
    realtime := flag.Bool("realtime", config.Realtime, "Run at the speed of an NTSC 6502")
    cycles := flag.Uint64("cycles", 0, "Stop after this many cycles")
    scale := flag.Int("scale", config.Scale, "Size of a screen pixel")
    noColor := flag.Bool("no-color", config.NoColor, "Do not color the output")
    saveConfig := flag.Bool("save-config", false, "Write the current options to the config file")
    flag.Var(&breakpoints, "break", "Debugger breakpoint in hex, can be given more than once")

    flag.Parse()

    color.NoColor = color.NoColor || *noColor

    if *list {
        listExamples(flag.Arg(0))
        return
    }

    options := Options{
        Example: *example,
        Trace: *trace,
        Disassemble: *disassemble,
        Debug: *debugMode,
        Screen: *screen,
        Realtime: *realtime,
        MaxCycles: *cycles,
        Scale: *scale,
        Path: flag.Arg(0),
    }

    options.Address, err = common.ParseAddress(*address)
    if err != nil {
        log.Fatalf("Error: %v", err)
    }

    /* built in programs are assembled for a fixed address */
    if options.Example != "" && !isFlagSet("address") {
        options.Address = data.ProgramAddress
    }

    for _, breakpoint := range breakpoints {
        pc, err := common.ParseAddress(breakpoint)
        if err != nil {
            log.Fatalf("Error: breakpoint: %v", err)
        }
        options.Breakpoints = append(options.Breakpoints, pc)
    }

    if *saveConfig {
        config.Version = common.CurrentVersion
        config.LoadAddress = *address
        config.Realtime = *realtime
        config.Scale = *scale
        config.NoColor = *noColor
        config.Breakpoints = breakpoints
        err := common.SaveConfigData(config)
        if err != nil {
            log.Printf("Could not save config: %v", err)
        }
    }

    if options.Path == "" && options.Example == "" {
        fmt.Printf("Give a program file or -example name. Examples: %v\n", strings.Join(data.ListPrograms(), ", "))
        os.Exit(1)
    }

    err = Run(options)
    if err != nil {
        log.Printf("Error: %v", err)
        os.Exit(1)
    }
}
