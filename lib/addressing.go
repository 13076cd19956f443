package lib

import (
    "fmt"
)

type AddressMode int

const (
    AddressImplied AddressMode = iota
    AddressAccumulator
    AddressImmediate
    AddressZeroPage
    AddressZeroPageX
    AddressZeroPageY
    AddressRelative
    AddressAbsolute
    AddressAbsoluteX
    AddressAbsoluteY
    AddressIndirect
    AddressIndirectX
    AddressIndirectY
)

/* number of operand bytes that follow the opcode */
func (mode AddressMode) Size() uint16 {
    switch mode {
        case AddressImplied, AddressAccumulator: return 0
        case AddressAbsolute, AddressAbsoluteX, AddressAbsoluteY, AddressIndirect: return 2
        default: return 1
    }
}

/* implied and accumulator instructions have no effective address */
func (mode AddressMode) HasAddress() bool {
    return mode != AddressImplied && mode != AddressAccumulator
}

func (mode AddressMode) String() string {
    switch mode {
        case AddressImplied: return "implied"
        case AddressAccumulator: return "accumulator"
        case AddressImmediate: return "immediate"
        case AddressZeroPage: return "zero page"
        case AddressZeroPageX: return "zero page,x"
        case AddressZeroPageY: return "zero page,y"
        case AddressRelative: return "relative"
        case AddressAbsolute: return "absolute"
        case AddressAbsoluteX: return "absolute,x"
        case AddressAbsoluteY: return "absolute,y"
        case AddressIndirect: return "indirect"
        case AddressIndirectX: return "(indirect,x)"
        case AddressIndirectY: return "(indirect),y"
    }

    return fmt.Sprintf("mode(%d)", int(mode))
}

/* the effective address computed for an instruction, and whether computing
 * it crossed a 256-byte page
 */
type Operand struct {
    Address uint16
    PageCross bool
}

/* add an index to a base address, noting whether the high byte changed */
func offsetAddress(base uint16, index byte) (uint16, bool) {
    out := base + uint16(index)
    return out, (out >> 8) != (base >> 8)
}

/* zero page indexing never leaves page 0 */
func offsetZeroPage(base byte, index byte) uint16 {
    return uint16(base + index)
}

/* returns a new address and whether a page boundary was crossed */
func (cpu *CPUState) ComputeIndirectY(relative byte) (uint16, bool) {
    /* Load two values from the zero page at (relative, relative+1)
     * Then construct a new address where low=(relative) and high=(relative+1)
     * Then add cpu.Y to the new address
     */
    low := uint16(cpu.LoadMemory(uint16(relative)))
    /* keeping 'relative' as a byte ensures wrap around works correctly */
    high := uint16(cpu.LoadMemory(uint16(relative + 1)))
    address := (high<<8) | low

    /* Given: address = 0x10f0, Y=0x20, then out=0x1110
     * and 0x11 != 0x10
     */
    return offsetAddress(address, cpu.Y)
}

func (cpu *CPUState) ComputeIndirectX(relative byte) uint16 {
    zero_address := relative + cpu.X
    /* Load the two bytes at address $(relative+X) to
     * construct a 16-bit address
     */
    low := cpu.LoadMemory(uint16(zero_address))
    high := cpu.LoadMemory(uint16(zero_address+1))

    return (uint16(high) << 8) | uint16(low)
}

/* compute the effective address for the instruction whose operand bytes start
 * at the current PC. The PC is not modified.
 */
func (cpu *CPUState) ComputeAddress(mode AddressMode) (Operand, error) {
    switch mode {
        case AddressImmediate, AddressRelative:
            /* the operand byte itself. branches read their displacement from here */
            return Operand{Address: cpu.PC}, nil
        case AddressZeroPage:
            return Operand{Address: uint16(cpu.LoadMemory(cpu.PC))}, nil
        case AddressZeroPageX:
            return Operand{Address: offsetZeroPage(cpu.LoadMemory(cpu.PC), cpu.X)}, nil
        case AddressZeroPageY:
            return Operand{Address: offsetZeroPage(cpu.LoadMemory(cpu.PC), cpu.Y)}, nil
        case AddressAbsolute:
            return Operand{Address: cpu.LoadWord(cpu.PC)}, nil
        case AddressAbsoluteX:
            address, page_cross := offsetAddress(cpu.LoadWord(cpu.PC), cpu.X)
            return Operand{Address: address, PageCross: page_cross}, nil
        case AddressAbsoluteY:
            address, page_cross := offsetAddress(cpu.LoadWord(cpu.PC), cpu.Y)
            return Operand{Address: address, PageCross: page_cross}, nil
        case AddressIndirect:
            /* the location of the pointer. jmp does the second read */
            return Operand{Address: cpu.LoadWord(cpu.PC)}, nil
        case AddressIndirectX:
            return Operand{Address: cpu.ComputeIndirectX(cpu.LoadMemory(cpu.PC))}, nil
        case AddressIndirectY:
            address, page_cross := cpu.ComputeIndirectY(cpu.LoadMemory(cpu.PC))
            return Operand{Address: address, PageCross: page_cross}, nil
    }

    return Operand{}, fmt.Errorf("%w: no address for %v mode", ErrInvalidAddressing, mode)
}
