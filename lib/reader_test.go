package lib

import (
    "bytes"
    "errors"
    "io"
    "log"
    "os"
    "strings"
    "testing"
)

func readAllInstructions(reader *InstructionReader) ([]Instruction, error) {
    var out []Instruction

    for {
        instruction, err := reader.ReadInstruction()
        if err != nil {
            return out, err
        }

        out = append(out, instruction)
    }
}

func checkInstructions(test *testing.T, instructions []Instruction, kinds []InstructionType) {
    if len(kinds) != len(instructions) {
        test.Fatalf("unequal number of instructions %v vs expected %v", len(instructions), len(kinds))
    }

    for i := 0; i < len(instructions); i++ {
        if instructions[i].Kind != kinds[i] {
            test.Fatalf("invalid instruction %v: %v vs %v\n", i, instructions[i].String(), kinds[i])
        }
    }
}

func TestCPUDecode(test *testing.T){
    bytes := []byte{0xa9, 0x01, 0x8d, 0x00, 0x02, 0xa9, 0x05, 0x8d, 0x01, 0x02, 0xa9, 0x08, 0x8d, 0x02, 0x02}

    reader := NewInstructionReader(0x600, bytes)
    instructions, err := readAllInstructions(reader)

    if err != nil {
        if err != io.EOF {
            test.Fatalf("could not read instructions: %v", err)
        }
    }

    checkInstructions(test, instructions, []InstructionType{
        Instruction_LDA_immediate,
        Instruction_STA_absolute,
        Instruction_LDA_immediate,
        Instruction_STA_absolute,
        Instruction_LDA_immediate,
        Instruction_STA_absolute,
    })

    if instructions[3].Address != 0x607 {
        test.Fatalf("fourth instruction expected at 0x607 but was at 0x%x", instructions[3].Address)
    }
}

func TestDisassemble(test *testing.T){
    bytes := []byte{
        0xa2, 0x08, // ldx #$08
        0xca,       // dex
        0x8e, 0x00, 0x02, // stx $0200
        0xe0, 0x03, // cpx #$03
        0xd0, 0xf8, // bne
        0x91, 0x10, // sta ($10),y
        0x6c, 0x05, 0x10, // jmp ($1005)
        0x0a, // asl a
        0x00, // brk
    }

    instructions, err := Disassemble(0x600, bytes)
    if err != nil {
        test.Fatalf("could not disassemble: %v", err)
    }

    expected := []string{
        "LDX #$08",
        "DEX",
        "STX $0200",
        "CPX #$03",
        "BNE $0602",
        "STA ($10),Y",
        "JMP ($1005)",
        "ASL A",
        "BRK",
    }

    if len(instructions) != len(expected) {
        test.Fatalf("expected %v instructions but got %v", len(expected), len(instructions))
    }

    for i, instruction := range instructions {
        if instruction.String() != expected[i] {
            test.Fatalf("instruction %v expected to be '%v' but was '%v'", i, expected[i], instruction.String())
        }
    }

    if instructions[2].Bytes() != "8E 00 02" {
        test.Fatalf("unexpected bytes '%v'", instructions[2].Bytes())
    }
}

func TestDisassembleErrors(test *testing.T){
    _, err := Disassemble(0x600, []byte{0xa9, 0x01, 0x02})
    if !errors.Is(err, ErrUnsupportedOpcode) {
        test.Fatalf("expected an unsupported opcode but got %v", err)
    }

    instructions, err := Disassemble(0x600, []byte{0xa9, 0x01, 0x8d, 0x00})
    if !errors.Is(err, io.ErrUnexpectedEOF) {
        test.Fatalf("expected a truncated instruction but got %v", err)
    }
    if len(instructions) != 1 {
        test.Fatalf("expected the first instruction to decode")
    }
}

func TestFetch(test *testing.T){
    cpu := StartupState()
    err := cpu.LoadExecutable(0x8000, []byte{0xbd, 0xfe, 0x90})
    if err != nil {
        test.Fatalf("could not load: %v", err)
    }

    instruction, err := cpu.Fetch()
    if err != nil {
        test.Fatalf("could not fetch: %v", err)
    }

    word, err := instruction.OperandWord()
    if err != nil || word != 0x90fe {
        test.Fatalf("expected operand 0x90fe but got 0x%x: %v", word, err)
    }

    if instruction.String() != "LDA $90FE,X" {
        test.Fatalf("unexpected instruction '%v'", instruction.String())
    }

    if cpu.PC != 0x8000 {
        test.Fatalf("fetch should not move the PC")
    }

    other := Instruction{Name: "LDA", Kind: Instruction_LDA_absolute_x, Operands: []byte{0xfe, 0x90}}
    if !instruction.Equals(other) {
        test.Fatalf("instructions should be equal")
    }
}

func TestDumpInstructions(test *testing.T){
    var out bytes.Buffer
    log.SetOutput(&out)
    defer log.SetOutput(os.Stderr)

    DumpInstructions(0x600, []byte{0xa2, 0x08, 0xca, 0x02})

    lines := strings.Split(strings.TrimSpace(out.String()), "\n")
    if len(lines) != 3 {
        test.Fatalf("expected 2 instructions and an error but got %v", lines)
    }
    if !strings.Contains(lines[0], "0x0600") || !strings.Contains(lines[0], "LDX #$08") {
        test.Fatalf("unexpected first line '%v'", lines[0])
    }
    if !strings.Contains(lines[1], "0x0602") || !strings.Contains(lines[1], "DEX") {
        test.Fatalf("unexpected second line '%v'", lines[1])
    }
    if !strings.Contains(lines[2], "Error decoding instruction 3") {
        test.Fatalf("the bad opcode should be reported: '%v'", lines[2])
    }
}
