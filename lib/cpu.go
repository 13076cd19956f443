package lib

import (
    "fmt"
    "log"
)

/* opcode references
 * https://www.masswerk.at/6502/6502_instruction_set.html
 * http://www.6502.org/tutorials/6502opcodes.html
 * http://www.obelisk.me.uk/6502/reference.html
 */

/* http://wiki.nesdev.com/w/index.php/Cycle_reference_chart#Clock_rates
 * NTSC 2c0c clock speed is 21.47~ MHz ÷ 12 = 1.789773 MHz
 * Every second we should run this many cycles
 */
const CPUSpeed float64 = 1.789773e6

const StackBase uint16 = 0x100

type Flag byte

/* NV-BDIZC */
const (
    FlagCarry Flag = 1 << 0
    FlagZero Flag = 1 << 1
    FlagInterruptDisable Flag = 1 << 2
    FlagDecimal Flag = 1 << 3
    FlagBreak Flag = 1 << 4
    FlagUnused Flag = 1 << 5
    FlagOverflow Flag = 1 << 6
    FlagNegative Flag = 1 << 7
)

type CPUState struct {
    A byte
    X byte
    Y byte
    SP byte
    PC uint16
    Status byte

    /* cleared by BRK */
    Running bool

    Cycle uint64

    Memory *Memory

    /* print each instruction as it executes when > 0 */
    Debug uint
}

/* the usual power-on convention: stack pointer at the top of the stack page
 * and the break and unused bits set
 */
func StartupState() *CPUState {
    cpu := ZeroState()
    cpu.SP = 0xff
    cpu.Status = byte(FlagBreak | FlagUnused)
    return cpu
}

/* every register and flag is 0 */
func ZeroState() *CPUState {
    return &CPUState{
        Memory: NewMemory(),
    }
}

func (cpu *CPUState) Copy() CPUState {
    var memory *Memory
    if cpu.Memory != nil {
        copied := *cpu.Memory
        memory = &copied
    }

    return CPUState{
        A: cpu.A,
        X: cpu.X,
        Y: cpu.Y,
        SP: cpu.SP,
        PC: cpu.PC,
        Status: cpu.Status,
        Running: cpu.Running,
        Cycle: cpu.Cycle,
        Memory: memory,
        Debug: cpu.Debug,
    }
}

/* registers only, memory is not compared */
func (cpu *CPUState) Equals(other CPUState) bool {
    return cpu.A == other.A &&
           cpu.X == other.X &&
           cpu.Y == other.Y &&
           cpu.SP == other.SP &&
           cpu.PC == other.PC &&
           cpu.Cycle == other.Cycle &&
           cpu.Status == other.Status;
}

func (cpu *CPUState) String() string {
    return fmt.Sprintf("A:0x%X X:0x%X Y:0x%X SP:0x%X P:0x%X PC:0x%X Cycle:%v", cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.Status, cpu.PC, cpu.Cycle)
}

func (cpu *CPUState) LoadMemory(address uint16) byte {
    return cpu.Memory.Load(address)
}

func (cpu *CPUState) StoreMemory(address uint16, value byte) {
    cpu.Memory.Store(address, value)
}

func (cpu *CPUState) LoadWord(address uint16) uint16 {
    return cpu.Memory.LoadWord(address)
}

func (cpu *CPUState) StoreWord(address uint16, value uint16) {
    cpu.Memory.StoreWord(address, value)
}

/* copy data into memory at address */
func (cpu *CPUState) Load(address uint16, data []byte) error {
    return cpu.Memory.Copy(address, data)
}

/* load a program and point the PC at its first byte, ready to run */
func (cpu *CPUState) LoadExecutable(address uint16, data []byte) error {
    err := cpu.Load(address, data)
    if err != nil {
        return err
    }

    cpu.PC = address
    cpu.Running = true
    return nil
}

func (cpu *CPUState) LoadStack(where byte) byte {
    return cpu.LoadMemory(StackBase + uint16(where))
}

func (cpu *CPUState) StoreStack(where byte, value byte) {
    cpu.StoreMemory(StackBase + uint16(where), value)
}

/* the stack grows down and wraps within page 1 */
func (cpu *CPUState) PushStack(value byte) {
    cpu.StoreStack(cpu.SP, value)
    cpu.SP -= 1
}

func (cpu *CPUState) PopStack() byte {
    cpu.SP += 1
    return cpu.LoadStack(cpu.SP)
}

/* high byte first so the word reads back little endian */
func (cpu *CPUState) PushWord(value uint16) {
    cpu.PushStack(byte(value >> 8))
    cpu.PushStack(byte(value & 0xff))
}

func (cpu *CPUState) PopWord() uint16 {
    low := uint16(cpu.PopStack())
    high := uint16(cpu.PopStack())
    return (high << 8) | low
}

/* decode the instruction at the PC without executing it */
func (cpu *CPUState) Fetch() (Instruction, error) {
    code := cpu.LoadMemory(cpu.PC)
    entry, err := Decode(code)
    if err != nil {
        return Instruction{}, fmt.Errorf("%w at PC 0x%04x", err, cpu.PC)
    }

    operands := make([]byte, entry.Mode.Size())
    for i := 0; i < len(operands); i++ {
        operands[i] = cpu.LoadMemory(cpu.PC + uint16(i + 1))
    }

    return Instruction{
        Name: entry.Name,
        Kind: entry.Kind,
        Mode: entry.Mode,
        Address: cpu.PC,
        Operands: operands,
    }, nil
}

/* execute one instruction and return the number of cycles it took.
 * On error the PC is left at the opcode that failed.
 */
func (cpu *CPUState) Step() (int, error) {
    start := cpu.PC

    entry, err := Decode(cpu.LoadMemory(start))
    if err != nil {
        return 0, fmt.Errorf("%w at PC 0x%04x", err, start)
    }

    if cpu.Debug > 0 {
        instruction, err := cpu.Fetch()
        if err == nil {
            log.Printf("PC: 0x%x Execute instruction %v A:%X X:%X Y:%X P:%X SP:%X CYC:%v\n", cpu.PC, instruction.String(), cpu.A, cpu.X, cpu.Y, cpu.Status, cpu.SP, cpu.Cycle)
        }
    }

    cpu.PC += 1

    var operand *Operand
    if entry.Mode.HasAddress() {
        computed, err := cpu.ComputeAddress(entry.Mode)
        if err != nil {
            cpu.PC = start
            return 0, err
        }
        operand = &computed
    }

    cpu.PC += entry.Mode.Size()

    extra, err := entry.Handler(cpu, operand)
    if err != nil {
        cpu.PC = start
        return 0, fmt.Errorf("%v at PC 0x%04x: %w", entry.Name, start, err)
    }

    cycles := entry.Cycles + extra
    cpu.Cycle += uint64(cycles)
    return cycles, nil
}

/* step until a BRK clears the running state or an instruction fails */
func (cpu *CPUState) Run() error {
    for cpu.Running {
        _, err := cpu.Step()
        if err != nil {
            return err
        }
    }

    return nil
}

func (cpu *CPUState) CheckFlag(flag Flag) bool {
    return cpu.getBit(byte(flag))
}

func (cpu *CPUState) SetFlag(flag Flag) {
    cpu.setBit(byte(flag), true)
}

func (cpu *CPUState) ClearFlag(flag Flag) {
    cpu.setBit(byte(flag), false)
}

func (cpu *CPUState) setBit(bit byte, set bool){
    if set {
        cpu.Status = cpu.Status | bit
    } else {
        cpu.Status = cpu.Status & (^bit)
    }
}

func (cpu *CPUState) getBit(bit byte) bool {
    return (cpu.Status & bit) == bit
}

func (cpu *CPUState) GetInterruptDisableFlag() bool {
    return cpu.getBit(byte(FlagInterruptDisable))
}

func (cpu *CPUState) SetInterruptDisableFlag(set bool){
    cpu.setBit(byte(FlagInterruptDisable), set)
}

func (cpu *CPUState) GetZeroFlag() bool {
    return cpu.getBit(byte(FlagZero))
}

func (cpu *CPUState) SetZeroFlag(zero bool){
    cpu.setBit(byte(FlagZero), zero)
}

func (cpu *CPUState) SetCarryFlag(set bool){
    cpu.setBit(byte(FlagCarry), set)
}

func (cpu *CPUState) GetCarryFlag() bool {
    return cpu.getBit(byte(FlagCarry))
}

func (cpu *CPUState) GetNegativeFlag() bool {
    return cpu.getBit(byte(FlagNegative))
}

func (cpu *CPUState) SetNegativeFlag(set bool) {
    cpu.setBit(byte(FlagNegative), set)
}

func (cpu *CPUState) GetOverflowFlag() bool {
    return cpu.getBit(byte(FlagOverflow))
}

func (cpu *CPUState) SetOverflowFlag(set bool) {
    cpu.setBit(byte(FlagOverflow), set)
}

func (cpu *CPUState) SetDecimalFlag(set bool) {
    cpu.setBit(byte(FlagDecimal), set)
}

func (cpu *CPUState) GetDecimalFlag() bool {
    return cpu.getBit(byte(FlagDecimal))
}

/* set the negative and zero flags from a result */
func (cpu *CPUState) updateZeroNegative(value byte){
    cpu.SetNegativeFlag(int8(value) < 0)
    cpu.SetZeroFlag(value == 0)
}
