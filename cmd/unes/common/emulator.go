package common

import (
    "context"
    "errors"
    "log"
    "math/rand/v2"
    "time"

    nes "github.com/kazzmir/unes/lib"
    "github.com/kazzmir/unes/cmd/unes/debug"
    "github.com/kazzmir/unes/cmd/unes/gfx/framebuffer"
)

var MaxCyclesReached error = errors.New("maximum cycles reached")

/* something that displays the framebuffer and supplies key presses */
type FrameSink interface {
    Publish(frame []byte)
    LastKey() byte
}

/* instructions executed between framebuffer updates */
const publishInterval = 256

type Emulator struct {
    CPU *nes.CPUState
    /* may be nil */
    Debugger debug.Debugger
    /* may be nil */
    Screen FrameSink
    /* throttle to the speed of an NTSC 6502 */
    Realtime bool
    /* stop after this many cycles, 0 means no limit */
    MaxCycles uint64
    Random *rand.Rand
}

func MakeEmulator(cpu *nes.CPUState) *Emulator {
    return &Emulator{
        CPU: cpu,
        Random: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6502)),
    }
}

func (emulator *Emulator) publish(){
    if emulator.Screen != nil {
        emulator.Screen.Publish(emulator.CPU.Memory.Range(framebuffer.FrameAddress, framebuffer.FrameSize))
    }
}

/* run until the cpu halts, an instruction fails, maxCycles is reached or quit is cancelled.
 * a cancelled quit is not an error
 */
func (emulator *Emulator) Run(quit context.Context) error {
    cpu := emulator.CPU

    if emulator.Debugger != nil {
        defer emulator.Debugger.Finish(cpu)
    }
    defer emulator.publish()

    var cycleCounter float64

    /* in ms */
    hostTickSpeed := 5
    cycleDiff := nes.CPUSpeed / (1000.0 / float64(hostTickSpeed))

    var cycleTimer *time.Ticker
    if emulator.Realtime {
        cycleTimer = time.NewTicker(time.Duration(hostTickSpeed) * time.Millisecond)
        defer cycleTimer.Stop()
    }

    steps := 0

    for cpu.Running {
        if quit.Err() != nil {
            return nil
        }

        if emulator.MaxCycles > 0 && cpu.Cycle >= emulator.MaxCycles {
            if cpu.Debug > 0 {
                log.Printf("Maximum cycles %v reached", emulator.MaxCycles)
            }
            return MaxCyclesReached
        }

        if emulator.Debugger != nil {
            err := emulator.Debugger.Handle(quit, cpu)
            if err != nil {
                if quit.Err() != nil {
                    return nil
                }
                return err
            }
        }

        if emulator.Realtime {
            for cycleCounter <= 0 {
                select {
                    case <-quit.Done():
                        return nil
                    case <-cycleTimer.C:
                        cycleCounter += cycleDiff
                }
            }
        }

        if emulator.Screen != nil {
            cpu.StoreMemory(framebuffer.RandomAddress, byte(emulator.Random.UintN(256)))
            cpu.StoreMemory(framebuffer.KeyAddress, emulator.Screen.LastKey())
        }

        cycles, err := cpu.Step()
        if err != nil {
            return err
        }

        cycleCounter -= float64(cycles)

        steps += 1
        if steps % publishInterval == 0 {
            emulator.publish()
        }
    }

    return nil
}
