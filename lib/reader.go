package lib

import (
    "bytes"
    "errors"
    "fmt"
    "io"
    "log"
)

/* a decoded instruction and the address it was read from */
type Instruction struct {
    Name string
    Kind InstructionType
    Mode AddressMode
    Address uint16
    Operands []byte
}

func equalBytes(a []byte, b[]byte) bool {
    for i := 0; i < len(a); i++ {
        if a[i] != b[i] {
            return false
        }
    }

    return true
}

func (instruction *Instruction) Equals(other Instruction) bool {
    return instruction.Name == other.Name &&
           instruction.Kind == other.Kind &&
           len(instruction.Operands) == len(other.Operands) &&
           equalBytes(instruction.Operands, other.Operands)
}

func (instruction *Instruction) Length() uint16 {
    return 1 + uint16(len(instruction.Operands))
}

func (instruction *Instruction) OperandByte() (byte, error) {
    if len(instruction.Operands) != 1 {
        return 0, fmt.Errorf("dont have one operand for %v, only have %v", instruction.Name, len(instruction.Operands))
    }
    return instruction.Operands[0], nil
}

func (instruction *Instruction) OperandWord() (uint16, error) {
    if len(instruction.Operands) != 2 {
        return 0, fmt.Errorf("dont have two operands for %v, only have %v", instruction.Name, len(instruction.Operands))
    }
    high := instruction.Operands[1]
    low := instruction.Operands[0]
    return (uint16(high) << 8) | uint16(low), nil
}

/* the raw opcode and operand bytes, like "BD FE 90" */
func (instruction *Instruction) Bytes() string {
    var out bytes.Buffer
    out.WriteString(fmt.Sprintf("%02X", int(instruction.Kind)))
    for _, operand := range instruction.Operands {
        out.WriteString(fmt.Sprintf(" %02X", operand))
    }
    return out.String()
}

/* assembler syntax. branch targets are resolved against the instruction address */
func (instruction *Instruction) String() string {
    value, _ := instruction.OperandByte()
    word, _ := instruction.OperandWord()

    switch instruction.Mode {
        case AddressImplied: return instruction.Name
        case AddressAccumulator: return fmt.Sprintf("%v A", instruction.Name)
        case AddressImmediate: return fmt.Sprintf("%v #$%02X", instruction.Name, value)
        case AddressZeroPage: return fmt.Sprintf("%v $%02X", instruction.Name, value)
        case AddressZeroPageX: return fmt.Sprintf("%v $%02X,X", instruction.Name, value)
        case AddressZeroPageY: return fmt.Sprintf("%v $%02X,Y", instruction.Name, value)
        case AddressRelative:
            target := uint16(int(instruction.Address + instruction.Length()) + int(int8(value)))
            return fmt.Sprintf("%v $%04X", instruction.Name, target)
        case AddressAbsolute: return fmt.Sprintf("%v $%04X", instruction.Name, word)
        case AddressAbsoluteX: return fmt.Sprintf("%v $%04X,X", instruction.Name, word)
        case AddressAbsoluteY: return fmt.Sprintf("%v $%04X,Y", instruction.Name, word)
        case AddressIndirect: return fmt.Sprintf("%v ($%04X)", instruction.Name, word)
        case AddressIndirectX: return fmt.Sprintf("%v ($%02X,X)", instruction.Name, value)
        case AddressIndirectY: return fmt.Sprintf("%v ($%02X),Y", instruction.Name, value)
    }

    return instruction.Name
}

type InstructionReader struct {
    data io.Reader
    address uint16
}

/* decode a byte stream that would be loaded at address */
func NewInstructionReader(address uint16, data []byte) *InstructionReader {
    return &InstructionReader{
        data: bytes.NewReader(data),
        address: address,
    }
}

/* instructions can vary in their size. io.EOF means the stream ended
 * cleanly between instructions
 */
func (reader *InstructionReader) ReadInstruction() (Instruction, error) {
    first := make([]byte, 1)
    _, err := io.ReadFull(reader.data, first)
    if err != nil {
        return Instruction{}, err
    }

    entry, err := Decode(first[0])
    if err != nil {
        return Instruction{}, fmt.Errorf("%w at 0x%04x", err, reader.address)
    }

    operands := make([]byte, entry.Mode.Size())
    _, err = io.ReadFull(reader.data, operands)
    if err != nil {
        if errors.Is(err, io.EOF) {
            err = io.ErrUnexpectedEOF
        }
        return Instruction{}, fmt.Errorf("unable to read %v operands for instruction %v: %w", len(operands), entry.Name, err)
    }

    out := Instruction{
        Name: entry.Name,
        Kind: entry.Kind,
        Mode: entry.Mode,
        Address: reader.address,
        Operands: operands,
    }

    reader.address += out.Length()

    return out, nil
}

/* decode every instruction in data, stopping at the first error */
func Disassemble(address uint16, data []byte) ([]Instruction, error) {
    reader := NewInstructionReader(address, data)
    var out []Instruction
    for {
        instruction, err := reader.ReadInstruction()
        if err != nil {
            if err == io.EOF {
                return out, nil
            }
            return out, err
        }
        out = append(out, instruction)
    }
}

func DumpInstructions(address uint16, data []byte){
    instructions, err := Disassemble(address, data)
    for i, instruction := range instructions {
        log.Printf("Instruction %v at pc 0x%04x: %-8v %v\n", i + 1, instruction.Address, instruction.Bytes(), instruction.String())
    }
    if err != nil {
        log.Printf("Error decoding instruction %v: %v\n", len(instructions) + 1, err)
    }
}
