package lib

import (
    "fmt"
)

type InstructionType int

/* documented 6502 opcodes */
const (
    Instruction_BRK InstructionType = 0x00
    Instruction_ORA_indirect_x =      0x01
    Instruction_ORA_zero =            0x05
    Instruction_ASL_zero =            0x06
    Instruction_PHP =                 0x08
    Instruction_ORA_immediate =       0x09
    Instruction_ASL_accumulator =     0x0a
    Instruction_ORA_absolute =        0x0d
    Instruction_ASL_absolute =        0x0e
    Instruction_BPL =                 0x10
    Instruction_ORA_indirect_y =      0x11
    Instruction_ORA_zero_x =          0x15
    Instruction_ASL_zero_x =          0x16
    Instruction_CLC =                 0x18
    Instruction_ORA_absolute_y =      0x19
    Instruction_ORA_absolute_x =      0x1d
    Instruction_ASL_absolute_x =      0x1e
    Instruction_JSR =                 0x20
    Instruction_AND_indirect_x =      0x21
    Instruction_BIT_zero =            0x24
    Instruction_AND_zero =            0x25
    Instruction_ROL_zero =            0x26
    Instruction_PLP =                 0x28
    Instruction_AND_immediate =       0x29
    Instruction_ROL_accumulator =     0x2a
    Instruction_BIT_absolute =        0x2c
    Instruction_AND_absolute =        0x2d
    Instruction_ROL_absolute =        0x2e
    Instruction_BMI =                 0x30
    Instruction_AND_indirect_y =      0x31
    Instruction_AND_zero_x =          0x35
    Instruction_ROL_zero_x =          0x36
    Instruction_SEC =                 0x38
    Instruction_AND_absolute_y =      0x39
    Instruction_AND_absolute_x =      0x3d
    Instruction_ROL_absolute_x =      0x3e
    Instruction_EOR_indirect_x =      0x41
    Instruction_EOR_zero =            0x45
    Instruction_LSR_zero =            0x46
    Instruction_PHA =                 0x48
    Instruction_EOR_immediate =       0x49
    Instruction_LSR_accumulator =     0x4a
    Instruction_JMP_absolute =        0x4c
    Instruction_EOR_absolute =        0x4d
    Instruction_LSR_absolute =        0x4e
    Instruction_BVC =                 0x50
    Instruction_EOR_indirect_y =      0x51
    Instruction_EOR_zero_x =          0x55
    Instruction_LSR_zero_x =          0x56
    Instruction_CLI =                 0x58
    Instruction_EOR_absolute_y =      0x59
    Instruction_EOR_absolute_x =      0x5d
    Instruction_LSR_absolute_x =      0x5e
    Instruction_RTS =                 0x60
    Instruction_ADC_indirect_x =      0x61
    Instruction_ADC_zero =            0x65
    Instruction_ROR_zero =            0x66
    Instruction_PLA =                 0x68
    Instruction_ADC_immediate =       0x69
    Instruction_ROR_accumulator =     0x6a
    Instruction_JMP_indirect =        0x6c
    Instruction_ADC_absolute =        0x6d
    Instruction_ROR_absolute =        0x6e
    Instruction_BVS =                 0x70
    Instruction_ADC_indirect_y =      0x71
    Instruction_ADC_zero_x =          0x75
    Instruction_ROR_zero_x =          0x76
    Instruction_SEI =                 0x78
    Instruction_ADC_absolute_y =      0x79
    Instruction_ADC_absolute_x =      0x7d
    Instruction_ROR_absolute_x =      0x7e
    Instruction_STA_indirect_x =      0x81
    Instruction_STY_zero =            0x84
    Instruction_STA_zero =            0x85
    Instruction_STX_zero =            0x86
    Instruction_DEY =                 0x88
    Instruction_TXA =                 0x8a
    Instruction_STY_absolute =        0x8c
    Instruction_STA_absolute =        0x8d
    Instruction_STX_absolute =        0x8e
    Instruction_BCC =                 0x90
    Instruction_STA_indirect_y =      0x91
    Instruction_STY_zero_x =          0x94
    Instruction_STA_zero_x =          0x95
    Instruction_STX_zero_y =          0x96
    Instruction_TYA =                 0x98
    Instruction_STA_absolute_y =      0x99
    Instruction_TXS =                 0x9a
    Instruction_STA_absolute_x =      0x9d
    Instruction_LDY_immediate =       0xa0
    Instruction_LDA_indirect_x =      0xa1
    Instruction_LDX_immediate =       0xa2
    Instruction_LDY_zero =            0xa4
    Instruction_LDA_zero =            0xa5
    Instruction_LDX_zero =            0xa6
    Instruction_TAY =                 0xa8
    Instruction_LDA_immediate =       0xa9
    Instruction_TAX =                 0xaa
    Instruction_LDY_absolute =        0xac
    Instruction_LDA_absolute =        0xad
    Instruction_LDX_absolute =        0xae
    Instruction_BCS =                 0xb0
    Instruction_LDA_indirect_y =      0xb1
    Instruction_LDY_zero_x =          0xb4
    Instruction_LDA_zero_x =          0xb5
    Instruction_LDX_zero_y =          0xb6
    Instruction_CLV =                 0xb8
    Instruction_LDA_absolute_y =      0xb9
    Instruction_TSX =                 0xba
    Instruction_LDY_absolute_x =      0xbc
    Instruction_LDA_absolute_x =      0xbd
    Instruction_LDX_absolute_y =      0xbe
    Instruction_CPY_immediate =       0xc0
    Instruction_CMP_indirect_x =      0xc1
    Instruction_CPY_zero =            0xc4
    Instruction_CMP_zero =            0xc5
    Instruction_DEC_zero =            0xc6
    Instruction_INY =                 0xc8
    Instruction_CMP_immediate =       0xc9
    Instruction_DEX =                 0xca
    Instruction_CPY_absolute =        0xcc
    Instruction_CMP_absolute =        0xcd
    Instruction_DEC_absolute =        0xce
    Instruction_BNE =                 0xd0
    Instruction_CMP_indirect_y =      0xd1
    Instruction_CMP_zero_x =          0xd5
    Instruction_DEC_zero_x =          0xd6
    Instruction_CLD =                 0xd8
    Instruction_CMP_absolute_y =      0xd9
    Instruction_CMP_absolute_x =      0xdd
    Instruction_DEC_absolute_x =      0xde
    Instruction_CPX_immediate =       0xe0
    Instruction_SBC_indirect_x =      0xe1
    Instruction_CPX_zero =            0xe4
    Instruction_SBC_zero =            0xe5
    Instruction_INC_zero =            0xe6
    Instruction_INX =                 0xe8
    Instruction_SBC_immediate =       0xe9
    Instruction_NOP =                 0xea
    Instruction_CPX_absolute =        0xec
    Instruction_SBC_absolute =        0xed
    Instruction_INC_absolute =        0xee
    Instruction_BEQ =                 0xf0
    Instruction_SBC_indirect_y =      0xf1
    Instruction_SBC_zero_x =          0xf5
    Instruction_INC_zero_x =          0xf6
    Instruction_SED =                 0xf8
    Instruction_SBC_absolute_y =      0xf9
    Instruction_SBC_absolute_x =      0xfd
    Instruction_INC_absolute_x =      0xfe
)

/* returns the number of cycles beyond the base cost of the opcode. operand
 * is nil for implied and accumulator instructions
 */
type InstructionHandler func(cpu *CPUState, operand *Operand) (int, error)

type OpcodeEntry struct {
    Name string
    Kind InstructionType
    Mode AddressMode
    /* base cost before page cross and branch penalties */
    Cycles int
    Handler InstructionHandler
}

type OpcodeTable [256]*OpcodeEntry

var opcodeTable = MakeOpcodeTable()

/* the entry for an opcode byte, or ErrUnsupportedOpcode */
func Decode(code byte) (*OpcodeEntry, error) {
    entry := opcodeTable[code]
    if entry == nil {
        return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedOpcode, code)
    }
    return entry, nil
}

/* all the opcodes the table knows about, in opcode order */
func AllOpcodes() []*OpcodeEntry {
    var out []*OpcodeEntry
    for _, entry := range opcodeTable {
        if entry != nil {
            out = append(out, entry)
        }
    }
    return out
}

/* https://www.masswerk.at/6502/6502_instruction_set.html
 * A = accumulator
 * abs = absolute
 * # = immediate
 * impl = implied
 * ind = indirect
 * rel = relative
 * zpg = zeropage
 */
func MakeOpcodeTable() OpcodeTable {
    var table OpcodeTable

    add := func(kind InstructionType, name string, mode AddressMode, cycles int, handler InstructionHandler){
        table[kind] = &OpcodeEntry{
            Name: name,
            Kind: kind,
            Mode: mode,
            Cycles: cycles,
            Handler: handler,
        }
    }

    add(Instruction_LDA_immediate, "LDA", AddressImmediate, 2, handleLDA)
    add(Instruction_LDA_zero, "LDA", AddressZeroPage, 3, handleLDA)
    add(Instruction_LDA_zero_x, "LDA", AddressZeroPageX, 4, handleLDA)
    add(Instruction_LDA_absolute, "LDA", AddressAbsolute, 4, handleLDA)
    add(Instruction_LDA_absolute_x, "LDA", AddressAbsoluteX, 4, handleLDA)
    add(Instruction_LDA_absolute_y, "LDA", AddressAbsoluteY, 4, handleLDA)
    add(Instruction_LDA_indirect_x, "LDA", AddressIndirectX, 6, handleLDA)
    add(Instruction_LDA_indirect_y, "LDA", AddressIndirectY, 5, handleLDA)

    add(Instruction_LDX_immediate, "LDX", AddressImmediate, 2, handleLDX)
    add(Instruction_LDX_zero, "LDX", AddressZeroPage, 3, handleLDX)
    add(Instruction_LDX_zero_y, "LDX", AddressZeroPageY, 4, handleLDX)
    add(Instruction_LDX_absolute, "LDX", AddressAbsolute, 4, handleLDX)
    add(Instruction_LDX_absolute_y, "LDX", AddressAbsoluteY, 4, handleLDX)

    add(Instruction_LDY_immediate, "LDY", AddressImmediate, 2, handleLDY)
    add(Instruction_LDY_zero, "LDY", AddressZeroPage, 3, handleLDY)
    add(Instruction_LDY_zero_x, "LDY", AddressZeroPageX, 4, handleLDY)
    add(Instruction_LDY_absolute, "LDY", AddressAbsolute, 4, handleLDY)
    add(Instruction_LDY_absolute_x, "LDY", AddressAbsoluteX, 4, handleLDY)

    add(Instruction_STA_zero, "STA", AddressZeroPage, 3, handleSTA)
    add(Instruction_STA_zero_x, "STA", AddressZeroPageX, 4, handleSTA)
    add(Instruction_STA_absolute, "STA", AddressAbsolute, 4, handleSTA)
    add(Instruction_STA_absolute_x, "STA", AddressAbsoluteX, 5, handleSTA)
    add(Instruction_STA_absolute_y, "STA", AddressAbsoluteY, 5, handleSTA)
    add(Instruction_STA_indirect_x, "STA", AddressIndirectX, 6, handleSTA)
    add(Instruction_STA_indirect_y, "STA", AddressIndirectY, 6, handleSTA)

    add(Instruction_STX_zero, "STX", AddressZeroPage, 3, handleSTX)
    add(Instruction_STX_zero_y, "STX", AddressZeroPageY, 4, handleSTX)
    add(Instruction_STX_absolute, "STX", AddressAbsolute, 4, handleSTX)

    add(Instruction_STY_zero, "STY", AddressZeroPage, 3, handleSTY)
    add(Instruction_STY_zero_x, "STY", AddressZeroPageX, 4, handleSTY)
    add(Instruction_STY_absolute, "STY", AddressAbsolute, 4, handleSTY)

    add(Instruction_ADC_immediate, "ADC", AddressImmediate, 2, handleADC)
    add(Instruction_ADC_zero, "ADC", AddressZeroPage, 3, handleADC)
    add(Instruction_ADC_zero_x, "ADC", AddressZeroPageX, 4, handleADC)
    add(Instruction_ADC_absolute, "ADC", AddressAbsolute, 4, handleADC)
    add(Instruction_ADC_absolute_x, "ADC", AddressAbsoluteX, 4, handleADC)
    add(Instruction_ADC_absolute_y, "ADC", AddressAbsoluteY, 4, handleADC)
    add(Instruction_ADC_indirect_x, "ADC", AddressIndirectX, 6, handleADC)
    add(Instruction_ADC_indirect_y, "ADC", AddressIndirectY, 5, handleADC)

    add(Instruction_SBC_immediate, "SBC", AddressImmediate, 2, handleSBC)
    add(Instruction_SBC_zero, "SBC", AddressZeroPage, 3, handleSBC)
    add(Instruction_SBC_zero_x, "SBC", AddressZeroPageX, 4, handleSBC)
    add(Instruction_SBC_absolute, "SBC", AddressAbsolute, 4, handleSBC)
    add(Instruction_SBC_absolute_x, "SBC", AddressAbsoluteX, 4, handleSBC)
    add(Instruction_SBC_absolute_y, "SBC", AddressAbsoluteY, 4, handleSBC)
    add(Instruction_SBC_indirect_x, "SBC", AddressIndirectX, 6, handleSBC)
    add(Instruction_SBC_indirect_y, "SBC", AddressIndirectY, 5, handleSBC)

    add(Instruction_AND_immediate, "AND", AddressImmediate, 2, handleAND)
    add(Instruction_AND_zero, "AND", AddressZeroPage, 3, handleAND)
    add(Instruction_AND_zero_x, "AND", AddressZeroPageX, 4, handleAND)
    add(Instruction_AND_absolute, "AND", AddressAbsolute, 4, handleAND)
    add(Instruction_AND_absolute_x, "AND", AddressAbsoluteX, 4, handleAND)
    add(Instruction_AND_absolute_y, "AND", AddressAbsoluteY, 4, handleAND)
    add(Instruction_AND_indirect_x, "AND", AddressIndirectX, 6, handleAND)
    add(Instruction_AND_indirect_y, "AND", AddressIndirectY, 5, handleAND)

    add(Instruction_ORA_immediate, "ORA", AddressImmediate, 2, handleORA)
    add(Instruction_ORA_zero, "ORA", AddressZeroPage, 3, handleORA)
    add(Instruction_ORA_zero_x, "ORA", AddressZeroPageX, 4, handleORA)
    add(Instruction_ORA_absolute, "ORA", AddressAbsolute, 4, handleORA)
    add(Instruction_ORA_absolute_x, "ORA", AddressAbsoluteX, 4, handleORA)
    add(Instruction_ORA_absolute_y, "ORA", AddressAbsoluteY, 4, handleORA)
    add(Instruction_ORA_indirect_x, "ORA", AddressIndirectX, 6, handleORA)
    add(Instruction_ORA_indirect_y, "ORA", AddressIndirectY, 5, handleORA)

    add(Instruction_EOR_immediate, "EOR", AddressImmediate, 2, handleEOR)
    add(Instruction_EOR_zero, "EOR", AddressZeroPage, 3, handleEOR)
    add(Instruction_EOR_zero_x, "EOR", AddressZeroPageX, 4, handleEOR)
    add(Instruction_EOR_absolute, "EOR", AddressAbsolute, 4, handleEOR)
    add(Instruction_EOR_absolute_x, "EOR", AddressAbsoluteX, 4, handleEOR)
    add(Instruction_EOR_absolute_y, "EOR", AddressAbsoluteY, 4, handleEOR)
    add(Instruction_EOR_indirect_x, "EOR", AddressIndirectX, 6, handleEOR)
    add(Instruction_EOR_indirect_y, "EOR", AddressIndirectY, 5, handleEOR)

    add(Instruction_BIT_zero, "BIT", AddressZeroPage, 3, handleBIT)
    add(Instruction_BIT_absolute, "BIT", AddressAbsolute, 4, handleBIT)

    add(Instruction_CMP_immediate, "CMP", AddressImmediate, 2, handleCMP)
    add(Instruction_CMP_zero, "CMP", AddressZeroPage, 3, handleCMP)
    add(Instruction_CMP_zero_x, "CMP", AddressZeroPageX, 4, handleCMP)
    add(Instruction_CMP_absolute, "CMP", AddressAbsolute, 4, handleCMP)
    add(Instruction_CMP_absolute_x, "CMP", AddressAbsoluteX, 4, handleCMP)
    add(Instruction_CMP_absolute_y, "CMP", AddressAbsoluteY, 4, handleCMP)
    add(Instruction_CMP_indirect_x, "CMP", AddressIndirectX, 6, handleCMP)
    add(Instruction_CMP_indirect_y, "CMP", AddressIndirectY, 5, handleCMP)

    add(Instruction_CPX_immediate, "CPX", AddressImmediate, 2, handleCPX)
    add(Instruction_CPX_zero, "CPX", AddressZeroPage, 3, handleCPX)
    add(Instruction_CPX_absolute, "CPX", AddressAbsolute, 4, handleCPX)

    add(Instruction_CPY_immediate, "CPY", AddressImmediate, 2, handleCPY)
    add(Instruction_CPY_zero, "CPY", AddressZeroPage, 3, handleCPY)
    add(Instruction_CPY_absolute, "CPY", AddressAbsolute, 4, handleCPY)

    add(Instruction_ASL_accumulator, "ASL", AddressAccumulator, 2, handleASL)
    add(Instruction_ASL_zero, "ASL", AddressZeroPage, 5, handleASL)
    add(Instruction_ASL_zero_x, "ASL", AddressZeroPageX, 6, handleASL)
    add(Instruction_ASL_absolute, "ASL", AddressAbsolute, 6, handleASL)
    add(Instruction_ASL_absolute_x, "ASL", AddressAbsoluteX, 7, handleASL)

    add(Instruction_LSR_accumulator, "LSR", AddressAccumulator, 2, handleLSR)
    add(Instruction_LSR_zero, "LSR", AddressZeroPage, 5, handleLSR)
    add(Instruction_LSR_zero_x, "LSR", AddressZeroPageX, 6, handleLSR)
    add(Instruction_LSR_absolute, "LSR", AddressAbsolute, 6, handleLSR)
    add(Instruction_LSR_absolute_x, "LSR", AddressAbsoluteX, 7, handleLSR)

    add(Instruction_ROL_accumulator, "ROL", AddressAccumulator, 2, handleROL)
    add(Instruction_ROL_zero, "ROL", AddressZeroPage, 5, handleROL)
    add(Instruction_ROL_zero_x, "ROL", AddressZeroPageX, 6, handleROL)
    add(Instruction_ROL_absolute, "ROL", AddressAbsolute, 6, handleROL)
    add(Instruction_ROL_absolute_x, "ROL", AddressAbsoluteX, 7, handleROL)

    add(Instruction_ROR_accumulator, "ROR", AddressAccumulator, 2, handleROR)
    add(Instruction_ROR_zero, "ROR", AddressZeroPage, 5, handleROR)
    add(Instruction_ROR_zero_x, "ROR", AddressZeroPageX, 6, handleROR)
    add(Instruction_ROR_absolute, "ROR", AddressAbsolute, 6, handleROR)
    add(Instruction_ROR_absolute_x, "ROR", AddressAbsoluteX, 7, handleROR)

    add(Instruction_INC_zero, "INC", AddressZeroPage, 5, handleINC)
    add(Instruction_INC_zero_x, "INC", AddressZeroPageX, 6, handleINC)
    add(Instruction_INC_absolute, "INC", AddressAbsolute, 6, handleINC)
    add(Instruction_INC_absolute_x, "INC", AddressAbsoluteX, 7, handleINC)

    add(Instruction_DEC_zero, "DEC", AddressZeroPage, 5, handleDEC)
    add(Instruction_DEC_zero_x, "DEC", AddressZeroPageX, 6, handleDEC)
    add(Instruction_DEC_absolute, "DEC", AddressAbsolute, 6, handleDEC)
    add(Instruction_DEC_absolute_x, "DEC", AddressAbsoluteX, 7, handleDEC)

    add(Instruction_INX, "INX", AddressImplied, 2, handleINX)
    add(Instruction_INY, "INY", AddressImplied, 2, handleINY)
    add(Instruction_DEX, "DEX", AddressImplied, 2, handleDEX)
    add(Instruction_DEY, "DEY", AddressImplied, 2, handleDEY)

    add(Instruction_TAX, "TAX", AddressImplied, 2, handleTAX)
    add(Instruction_TAY, "TAY", AddressImplied, 2, handleTAY)
    add(Instruction_TXA, "TXA", AddressImplied, 2, handleTXA)
    add(Instruction_TYA, "TYA", AddressImplied, 2, handleTYA)
    add(Instruction_TSX, "TSX", AddressImplied, 2, handleTSX)
    add(Instruction_TXS, "TXS", AddressImplied, 2, handleTXS)

    add(Instruction_PHA, "PHA", AddressImplied, 3, handlePHA)
    add(Instruction_PHP, "PHP", AddressImplied, 3, handlePHP)
    add(Instruction_PLA, "PLA", AddressImplied, 4, handlePLA)
    add(Instruction_PLP, "PLP", AddressImplied, 4, handlePLP)

    add(Instruction_CLC, "CLC", AddressImplied, 2, handleCLC)
    add(Instruction_CLD, "CLD", AddressImplied, 2, handleCLD)
    add(Instruction_CLI, "CLI", AddressImplied, 2, handleCLI)
    add(Instruction_CLV, "CLV", AddressImplied, 2, handleCLV)
    add(Instruction_SEC, "SEC", AddressImplied, 2, handleSEC)
    add(Instruction_SED, "SED", AddressImplied, 2, handleSED)
    add(Instruction_SEI, "SEI", AddressImplied, 2, handleSEI)

    add(Instruction_BCC, "BCC", AddressRelative, 2, handleBCC)
    add(Instruction_BCS, "BCS", AddressRelative, 2, handleBCS)
    add(Instruction_BEQ, "BEQ", AddressRelative, 2, handleBEQ)
    add(Instruction_BMI, "BMI", AddressRelative, 2, handleBMI)
    add(Instruction_BNE, "BNE", AddressRelative, 2, handleBNE)
    add(Instruction_BPL, "BPL", AddressRelative, 2, handleBPL)
    add(Instruction_BVC, "BVC", AddressRelative, 2, handleBVC)
    add(Instruction_BVS, "BVS", AddressRelative, 2, handleBVS)

    add(Instruction_JMP_absolute, "JMP", AddressAbsolute, 3, handleJMP)
    add(Instruction_JMP_indirect, "JMP", AddressIndirect, 5, handleJMPIndirect)
    add(Instruction_JSR, "JSR", AddressAbsolute, 6, handleJSR)
    add(Instruction_RTS, "RTS", AddressImplied, 6, handleRTS)

    add(Instruction_NOP, "NOP", AddressImplied, 2, handleNOP)
    add(Instruction_BRK, "BRK", AddressImplied, 7, handleBRK)

    /* make sure I don't do something dumb */
    for code, entry := range table {
        if entry == nil {
            continue
        }

        if int(entry.Kind) != code {
            panic(fmt.Sprintf("internal error: opcode 0x%02x registered as 0x%02x for %v", code, int(entry.Kind), entry.Name))
        }

        if entry.Handler == nil {
            panic(fmt.Sprintf("internal error: no handler for opcode 0x%02x %v", code, entry.Name))
        }

        if entry.Cycles < 2 || entry.Cycles > 7 {
            panic(fmt.Sprintf("internal error: base cycles %v out of range for opcode 0x%02x %v", entry.Cycles, code, entry.Name))
        }
    }

    return table
}
