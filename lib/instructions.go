package lib

import (
    "fmt"
)

func missingOperand(name string) error {
    return fmt.Errorf("%w: %v needs an operand address", ErrInvalidAddressing, name)
}

/* reads from an indexed address cost one more cycle when the index carried
 * into the high byte
 */
func pageCost(operand *Operand) int {
    if operand.PageCross {
        return 1
    }
    return 0
}

func (cpu *CPUState) loadA(value byte){
    cpu.A = value
    cpu.updateZeroNegative(value)
}

func (cpu *CPUState) loadX(value byte){
    cpu.X = value
    cpu.updateZeroNegative(value)
}

func (cpu *CPUState) loadY(value byte){
    cpu.Y = value
    cpu.updateZeroNegative(value)
}

func (cpu *CPUState) doAnd(value byte){
    cpu.loadA(cpu.A & value)
}

func (cpu *CPUState) doOrA(value byte){
    cpu.loadA(cpu.A | value)
}

func (cpu *CPUState) doEorA(value byte){
    cpu.loadA(cpu.A ^ value)
}

func (cpu *CPUState) doBit(value byte){
    cpu.SetZeroFlag((cpu.A & value) == 0)
    cpu.SetNegativeFlag((value & (1<<7)) == (1<<7))
    cpu.SetOverflowFlag((value & (1<<6)) == (1<<6))
}

/* binary add with carry. the decimal flag is not consulted */
func (cpu *CPUState) doAdc(value byte){
    var carryBit uint16 = 0
    if cpu.GetCarryFlag() {
        carryBit = 1
    }

    full := uint16(cpu.A) + uint16(value) + carryBit
    result := byte(full)

    /* overflow when both inputs have the same sign and the result has the other one
     * http://www.6502.org/tutorials/vflag.html
     */
    cpu.SetOverflowFlag(((value ^ result) & (cpu.A ^ result) & 0x80) != 0)
    cpu.SetCarryFlag(full > 0xff)
    cpu.loadA(result)
}

/* A - M - (1 - C) is the same as A + ~M + C */
func (cpu *CPUState) doSbc(value byte){
    cpu.doAdc(^value)
}

func (cpu *CPUState) doCompare(register byte, value byte){
    cpu.SetCarryFlag(register >= value)
    cpu.updateZeroNegative(register - value)
}

func (cpu *CPUState) doInc(value byte) byte {
    value = value + 1
    cpu.updateZeroNegative(value)
    return value
}

func (cpu *CPUState) doDec(value byte) byte {
    value = value - 1
    cpu.updateZeroNegative(value)
    return value
}

func (cpu *CPUState) doLsr(value byte) byte {
    out := value >> 1
    cpu.SetCarryFlag(value & 1 == 1)
    cpu.updateZeroNegative(out)
    return out
}

func (cpu *CPUState) doAsl(value byte) byte {
    out := value << 1
    cpu.SetCarryFlag((value & (1<<7)) == (1<<7))
    cpu.updateZeroNegative(out)
    return out
}

func (cpu *CPUState) doRol(value byte) byte {
    var carryBit byte
    if cpu.GetCarryFlag() {
        carryBit = 1
    }

    out := (value << 1) | carryBit
    cpu.SetCarryFlag((value & (1<<7)) == (1<<7))
    cpu.updateZeroNegative(out)
    return out
}

func (cpu *CPUState) doRor(value byte) byte {
    var carryBit byte
    if cpu.GetCarryFlag() {
        carryBit = 1
    }

    out := (value >> 1) | (carryBit << 7)
    cpu.SetCarryFlag((value & 1) == 1)
    cpu.updateZeroNegative(out)
    return out
}

/* taken branches cost 1 extra cycle, and 1 more if the target is on a
 * different page than the instruction following the branch
 */
func (cpu *CPUState) branch(name string, operand *Operand, condition bool) (int, error) {
    if operand == nil {
        return 0, missingOperand(name)
    }

    if !condition {
        return 0, nil
    }

    value := cpu.LoadMemory(operand.Address)
    newPC := uint16(int(cpu.PC) + int(int8(value)))
    page_crossing := (newPC >> 8) != (cpu.PC >> 8)
    cpu.PC = newPC

    if page_crossing {
        return 2, nil
    }
    return 1, nil
}

/* shifts and rotates work on A when there is no operand address */
func (cpu *CPUState) modify(operand *Operand, do func(byte) byte){
    if operand == nil {
        cpu.A = do(cpu.A)
        return
    }

    cpu.StoreMemory(operand.Address, do(cpu.LoadMemory(operand.Address)))
}

func handleLDA(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("LDA")
    }
    cpu.loadA(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleLDX(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("LDX")
    }
    cpu.loadX(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleLDY(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("LDY")
    }
    cpu.loadY(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

/* stores always pay for the page cross in their base cost */
func handleSTA(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("STA")
    }
    cpu.StoreMemory(operand.Address, cpu.A)
    return 0, nil
}

func handleSTX(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("STX")
    }
    cpu.StoreMemory(operand.Address, cpu.X)
    return 0, nil
}

func handleSTY(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("STY")
    }
    cpu.StoreMemory(operand.Address, cpu.Y)
    return 0, nil
}

func handleADC(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("ADC")
    }
    cpu.doAdc(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleSBC(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("SBC")
    }
    cpu.doSbc(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleAND(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("AND")
    }
    cpu.doAnd(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleORA(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("ORA")
    }
    cpu.doOrA(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleEOR(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("EOR")
    }
    cpu.doEorA(cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleBIT(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("BIT")
    }
    cpu.doBit(cpu.LoadMemory(operand.Address))
    return 0, nil
}

func handleCMP(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("CMP")
    }
    cpu.doCompare(cpu.A, cpu.LoadMemory(operand.Address))
    return pageCost(operand), nil
}

func handleCPX(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("CPX")
    }
    cpu.doCompare(cpu.X, cpu.LoadMemory(operand.Address))
    return 0, nil
}

func handleCPY(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("CPY")
    }
    cpu.doCompare(cpu.Y, cpu.LoadMemory(operand.Address))
    return 0, nil
}

func handleASL(cpu *CPUState, operand *Operand) (int, error) {
    cpu.modify(operand, cpu.doAsl)
    return 0, nil
}

func handleLSR(cpu *CPUState, operand *Operand) (int, error) {
    cpu.modify(operand, cpu.doLsr)
    return 0, nil
}

func handleROL(cpu *CPUState, operand *Operand) (int, error) {
    cpu.modify(operand, cpu.doRol)
    return 0, nil
}

func handleROR(cpu *CPUState, operand *Operand) (int, error) {
    cpu.modify(operand, cpu.doRor)
    return 0, nil
}

func handleINC(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("INC")
    }
    cpu.modify(operand, cpu.doInc)
    return 0, nil
}

func handleDEC(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("DEC")
    }
    cpu.modify(operand, cpu.doDec)
    return 0, nil
}

func handleINX(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadX(cpu.X + 1)
    return 0, nil
}

func handleINY(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadY(cpu.Y + 1)
    return 0, nil
}

func handleDEX(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadX(cpu.X - 1)
    return 0, nil
}

func handleDEY(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadY(cpu.Y - 1)
    return 0, nil
}

func handleTAX(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadX(cpu.A)
    return 0, nil
}

func handleTAY(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadY(cpu.A)
    return 0, nil
}

func handleTXA(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadA(cpu.X)
    return 0, nil
}

func handleTYA(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadA(cpu.Y)
    return 0, nil
}

func handleTSX(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadX(cpu.SP)
    return 0, nil
}

/* the only transfer that leaves the flags alone */
func handleTXS(cpu *CPUState, operand *Operand) (int, error) {
    cpu.SP = cpu.X
    return 0, nil
}

func handlePHA(cpu *CPUState, operand *Operand) (int, error) {
    cpu.PushStack(cpu.A)
    return 0, nil
}

/* the pushed copy always has the break and unused bits set */
func handlePHP(cpu *CPUState, operand *Operand) (int, error) {
    cpu.PushStack(cpu.Status | byte(FlagBreak | FlagUnused))
    return 0, nil
}

func handlePLA(cpu *CPUState, operand *Operand) (int, error) {
    cpu.loadA(cpu.PopStack())
    return 0, nil
}

/* break and unused are not real flip-flops, they keep whatever they were */
func handlePLP(cpu *CPUState, operand *Operand) (int, error) {
    const keep = byte(FlagBreak | FlagUnused)
    value := cpu.PopStack()
    cpu.Status = (value & ^keep) | (cpu.Status & keep)
    return 0, nil
}

func handleCLC(cpu *CPUState, operand *Operand) (int, error) {
    cpu.ClearFlag(FlagCarry)
    return 0, nil
}

func handleCLD(cpu *CPUState, operand *Operand) (int, error) {
    cpu.SetDecimalFlag(false)
    return 0, nil
}

func handleCLI(cpu *CPUState, operand *Operand) (int, error) {
    cpu.SetInterruptDisableFlag(false)
    return 0, nil
}

func handleCLV(cpu *CPUState, operand *Operand) (int, error) {
    cpu.ClearFlag(FlagOverflow)
    return 0, nil
}

func handleSEC(cpu *CPUState, operand *Operand) (int, error) {
    cpu.SetFlag(FlagCarry)
    return 0, nil
}

func handleSED(cpu *CPUState, operand *Operand) (int, error) {
    cpu.SetDecimalFlag(true)
    return 0, nil
}

func handleSEI(cpu *CPUState, operand *Operand) (int, error) {
    cpu.SetInterruptDisableFlag(true)
    return 0, nil
}

func handleBCC(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BCC", operand, !cpu.GetCarryFlag())
}

func handleBCS(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BCS", operand, cpu.GetCarryFlag())
}

func handleBEQ(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BEQ", operand, cpu.GetZeroFlag())
}

func handleBMI(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BMI", operand, cpu.GetNegativeFlag())
}

/* branch on zero flag clear */
func handleBNE(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BNE", operand, !cpu.GetZeroFlag())
}

func handleBPL(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BPL", operand, !cpu.GetNegativeFlag())
}

func handleBVC(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BVC", operand, !cpu.GetOverflowFlag())
}

func handleBVS(cpu *CPUState, operand *Operand) (int, error) {
    return cpu.branch("BVS", operand, cpu.GetOverflowFlag())
}

func handleJMP(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("JMP")
    }
    cpu.PC = operand.Address
    return 0, nil
}

/* the pointer's high byte is read without carrying into the page, so
 * JMP ($10FF) takes its high byte from $1000
 */
func handleJMPIndirect(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("JMP")
    }

    pointer := operand.Address
    low := uint16(cpu.LoadMemory(pointer))
    high := uint16(cpu.LoadMemory((pointer & 0xff00) | uint16(byte(pointer) + 1)))
    cpu.PC = (high << 8) | low
    return 0, nil
}

/* pushes the address of the last byte of the JSR */
func handleJSR(cpu *CPUState, operand *Operand) (int, error) {
    if operand == nil {
        return 0, missingOperand("JSR")
    }
    cpu.PushWord(cpu.PC - 1)
    cpu.PC = operand.Address
    return 0, nil
}

func handleRTS(cpu *CPUState, operand *Operand) (int, error) {
    cpu.PC = cpu.PopWord() + 1
    return 0, nil
}

func handleNOP(cpu *CPUState, operand *Operand) (int, error) {
    return 0, nil
}

/* halt. there is no interrupt vector to jump through */
func handleBRK(cpu *CPUState, operand *Operand) (int, error) {
    cpu.Running = false
    return 0, nil
}
