package easy6502

import (
    "context"
    "fmt"
    "log"

    nes "github.com/kazzmir/unes/lib"
    "github.com/kazzmir/unes/cmd/unes/common"
    "github.com/kazzmir/unes/data"
    test_utils "github.com/kazzmir/unes/test/all-test/utils"
)

/* Run every built in program to completion and compare the final state
 * against known values. Memory is given as address -> value.
 */

type Expected struct {
    A, X, Y, SP byte
    PC uint16
    Status byte
    Memory map[uint16]byte
}

var programs = []struct{
    Name string
    Expected Expected
}{
    {"first", Expected{A: 0x08, SP: 0xff, PC: 0x610, Status: 0x30,
        Memory: map[uint16]byte{0x200: 0x01, 0x201: 0x05, 0x202: 0x08}}},
    {"flags", Expected{A: 0x84, X: 0xc1, SP: 0xff, PC: 0x607, Status: 0xb1}},
    {"branching", Expected{X: 0x03, SP: 0xff, PC: 0x60e, Status: 0x33,
        Memory: map[uint16]byte{0x200: 0x03, 0x201: 0x03}}},
    {"stack", Expected{X: 0x10, Y: 0x20, SP: 0xff, PC: 0x619, Status: 0x33,
        Memory: map[uint16]byte{0x200: 0x00, 0x20f: 0x0f, 0x210: 0x0f, 0x21f: 0x00}}},
    {"subroutine", Expected{X: 0x04, Y: 0x10, SP: 0xff, PC: 0x60d, Status: 0x30,
        Memory: map[uint16]byte{0x1ff: 0x06, 0x1fe: 0x02}}},
    {"pixels", Expected{A: 0x06, SP: 0xff, PC: 0x619, Status: 0x33,
        Memory: map[uint16]byte{0x01: 0x06, 0x200: 0x00, 0x234: 0x34, 0x3ff: 0xff, 0x5ff: 0xff}}},
}

func check(cpu *nes.CPUState, expected Expected) error {
    if cpu.A != expected.A || cpu.X != expected.X || cpu.Y != expected.Y || cpu.SP != expected.SP ||
       cpu.PC != expected.PC || cpu.Status != expected.Status {
        return fmt.Errorf("expected A:%02X X:%02X Y:%02X SP:%02X PC:%04X P:%02X but have %v",
                          expected.A, expected.X, expected.Y, expected.SP, expected.PC, expected.Status, cpu.String())
    }

    for address, value := range expected.Memory {
        if cpu.LoadMemory(address) != value {
            return fmt.Errorf("memory at 0x%04x expected to be 0x%02x but was 0x%02x", address, value, cpu.LoadMemory(address))
        }
    }

    if cpu.Running {
        return fmt.Errorf("program did not halt")
    }

    return nil
}

func doTest(name string, expected Expected, debug bool) (bool, error) {
    program, err := common.ReadExample(name)
    if err != nil {
        return false, err
    }

    cpu := nes.StartupState()
    err = cpu.LoadExecutable(data.ProgramAddress, program)
    if err != nil {
        return false, err
    }

    if debug {
        cpu.Debug = 1
    }

    emulator := common.MakeEmulator(cpu)
    /* nothing here should run for long */
    emulator.MaxCycles = 1000000
    err = emulator.Run(context.Background())
    if err != nil {
        return false, err
    }

    err = check(cpu, expected)
    if err != nil {
        log.Printf("%v: %v", name, err)
        return false, nil
    }

    return true, nil
}

func Run(debug bool) (bool, error) {
    passed := 0
    for _, program := range programs {
        ok, err := doTest(program.Name, program.Expected, debug)
        if err != nil {
            return false, fmt.Errorf("%v: %w", program.Name, err)
        }

        log.Print(test_utils.Report(fmt.Sprintf("easy6502 %v", program.Name), ok))
        if ok {
            passed += 1
        }
    }

    log.Print(test_utils.Summary("easy6502", passed, len(programs)))

    return passed == len(programs), nil
}
