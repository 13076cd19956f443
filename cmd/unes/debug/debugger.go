package debug

import (
    "context"
    "log"
    nes "github.com/kazzmir/unes/lib"
)

type DebugCommand interface {
    Name() string
}

type DebugCommandSimple struct {
    name string
}

func (command *DebugCommandSimple) Name() string {
    return command.name
}

func makeCommand(name string) DebugCommand {
    return &DebugCommandSimple{name: name}
}

var DebugCommandStep DebugCommand = makeCommand("step")
var DebugCommandContinue DebugCommand = makeCommand("continue")
var DebugCommandPause DebugCommand = makeCommand("pause")

/* add a breakpoint at PC, or remove the one already there */
type DebugCommandToggleBreakpoint struct {
    PC uint16
}

func (command *DebugCommandToggleBreakpoint) Name() string {
    return "breakpoint"
}

// break when the cpu's PC is at a specific value
type Breakpoint struct {
    PC uint16
    Id uint64
}

func (breakpoint *Breakpoint) Hit(cpu *nes.CPUState) bool {
    return breakpoint.PC == cpu.PC
}

/* what the debugger shows while the cpu is stopped */
type Snapshot struct {
    CPU nes.CPUState
    /* instructions starting at the PC */
    Listing []nes.Instruction
    ZeroPage []byte
    Stack []byte
    Breakpoints []Breakpoint
    Stopped bool
}

const listingLength = 16

func MakeSnapshot(cpu *nes.CPUState, breakpoints []Breakpoint, stopped bool) Snapshot {
    registers := *cpu
    registers.Memory = nil

    /* the longest instruction is 3 bytes */
    instructions, _ := nes.Disassemble(cpu.PC, cpu.Memory.Range(cpu.PC, listingLength * 3))
    if len(instructions) > listingLength {
        instructions = instructions[:listingLength]
    }

    return Snapshot{
        CPU: registers,
        Listing: instructions,
        ZeroPage: cpu.Memory.Range(0, 0x100),
        Stack: cpu.Memory.Range(nes.StackBase, 0x100),
        Breakpoints: append([]Breakpoint(nil), breakpoints...),
        Stopped: stopped,
    }
}

/* called by the emulator before every instruction. returns when the
 * instruction may execute, or with an error if quit is cancelled while
 * the cpu is stopped
 */
type Debugger interface {
    Handle(quit context.Context, cpu *nes.CPUState) error
    /* the cpu halted or failed */
    Finish(cpu *nes.CPUState)
}

type DefaultDebugger struct {
    Commands chan DebugCommand
    /* receives a snapshot whenever the cpu stops, only the latest is kept */
    Updates chan Snapshot
    Stopped bool
    Breakpoints []Breakpoint
    BreakpointId uint64
}

func (debugger *DefaultDebugger) IsStopped() bool {
    return debugger.Stopped
}

func (debugger *DefaultDebugger) ContinueUntilBreak(){
    debugger.Stopped = false
}

func (debugger *DefaultDebugger) AddPCBreakpoint(pc uint16){
    debugger.Breakpoints = append(debugger.Breakpoints, Breakpoint{
        PC: pc,
        Id: debugger.BreakpointId,
    })
    debugger.BreakpointId += 1
}

func (debugger *DefaultDebugger) RemoveBreakpoint(id uint64){
    var out []Breakpoint
    for _, breakpoint := range debugger.Breakpoints {
        if breakpoint.Id != id {
            out = append(out, breakpoint)
        }
    }
    debugger.Breakpoints = out
}

func (debugger *DefaultDebugger) ToggleBreakpoint(pc uint16){
    for _, breakpoint := range debugger.Breakpoints {
        if breakpoint.PC == pc {
            debugger.RemoveBreakpoint(breakpoint.Id)
            return
        }
    }
    debugger.AddPCBreakpoint(pc)
}

func (debugger *DefaultDebugger) Stop(){
    debugger.Stopped = true
}

func (debugger *DefaultDebugger) Publish(cpu *nes.CPUState){
    if debugger.Updates == nil {
        return
    }

    snapshot := MakeSnapshot(cpu, debugger.Breakpoints, debugger.Stopped)
    /* drop a snapshot nobody has looked at yet */
    select {
        case <-debugger.Updates:
        default:
    }
    select {
        case debugger.Updates <- snapshot:
        default:
    }
}

func (debugger *DefaultDebugger) Finish(cpu *nes.CPUState){
    debugger.Stop()
    debugger.Publish(cpu)
}

/* returns true if the cpu should execute the next instruction */
func (debugger *DefaultDebugger) apply(command DebugCommand, cpu *nes.CPUState) bool {
    switch command {
        case DebugCommandStep:
            log.Printf("[debug] step")
            return true
        case DebugCommandContinue:
            log.Printf("[debug] continue")
            debugger.ContinueUntilBreak()
            return true
        case DebugCommandPause:
            log.Printf("[debug] pause")
            debugger.Stop()
            return false
    }

    if toggle, ok := command.(*DebugCommandToggleBreakpoint); ok {
        debugger.ToggleBreakpoint(toggle.PC)
        debugger.Publish(cpu)
    }

    return false
}

func (debugger *DefaultDebugger) Handle(quit context.Context, cpu *nes.CPUState) error {
    for {
        if debugger.IsStopped() {
            debugger.Publish(cpu)
            select {
                case <-quit.Done():
                    return quit.Err()
                case command := <-debugger.Commands:
                    if debugger.apply(command, cpu) {
                        return nil
                    }
            }
            continue
        }

        select {
            case command := <-debugger.Commands:
                if debugger.apply(command, cpu) {
                    return nil
                }
                continue
            default:
        }

        for _, breakpoint := range debugger.Breakpoints {
            if breakpoint.Hit(cpu) {
                log.Printf("[debug] breakpoint %v at 0x%04x", breakpoint.Id, breakpoint.PC)
                debugger.Stop()
            }
        }

        if !debugger.IsStopped() {
            return nil
        }
    }
}

/* starts stopped, waiting for a step or continue */
func MakeDebugger() *DefaultDebugger {
    return &DefaultDebugger{
        Commands: make(chan DebugCommand, 5),
        Updates: make(chan Snapshot, 1),
        Stopped: true,
        BreakpointId: 1,
    }
}
