package main

import (
    "fmt"
    "io"

    nes "github.com/kazzmir/unes/lib"
    "github.com/kazzmir/unes/cmd/unes/debug"

    "github.com/fatih/color"
)

/* set flags are green and upper case, clear flags are red and lower case */
func formatFlags(status byte) string {
    green := color.New(color.FgGreen).SprintFunc()
    red := color.New(color.FgRed).SprintFunc()

    names := debug.FormatFlags(status)
    out := ""
    for i := 0; i < 8; i++ {
        bit := byte(1 << (7 - i))
        if status & bit == bit {
            out += green(names[i:i+1])
        } else {
            out += red(names[i:i+1])
        }
    }
    return out
}

func printState(out io.Writer, cpu *nes.CPUState){
    bold := color.New(color.Bold).SprintFunc()

    state := color.New(color.FgYellow).Sprint("running")
    if !cpu.Running {
        state = color.New(color.FgCyan).Sprint("halted")
    }

    fmt.Fprintf(out, "%v %04X  %v %02X  %v %02X  %v %02X  %v %02X  %v %v  %v\n",
        bold("PC"), cpu.PC, bold("A"), cpu.A, bold("X"), cpu.X, bold("Y"), cpu.Y,
        bold("SP"), cpu.SP, bold("P"), formatFlags(cpu.Status), state)
    fmt.Fprintf(out, "%v %v\n", bold("Cycles"), cpu.Cycle)
}

func printListing(out io.Writer, address uint16, program []byte) error {
    instructions, err := nes.Disassemble(address, program)

    addressColor := color.New(color.FgCyan).SprintFunc()
    for _, instruction := range instructions {
        fmt.Fprintf(out, "%v  %-8v  %v\n", addressColor(fmt.Sprintf("%04X", instruction.Address)), instruction.Bytes(), instruction.String())
    }

    if err != nil {
        return fmt.Errorf("at instruction %v: %w", len(instructions) + 1, err)
    }
    return nil
}
