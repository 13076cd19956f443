package lib

import (
    "errors"
    "testing"
)

func runProgram(test *testing.T, cpu *CPUState, address uint16, bytes []byte) {
    err := cpu.LoadExecutable(address, bytes)
    if err != nil {
        test.Fatalf("could not load program: %v", err)
    }

    err = cpu.Run()
    if err != nil {
        test.Fatalf("could not run cpu: %v\n", err)
    }
}

func stepProgram(test *testing.T, cpu *CPUState, address uint16, bytes []byte) int {
    err := cpu.LoadExecutable(address, bytes)
    if err != nil {
        test.Fatalf("could not load program: %v", err)
    }

    cycles, err := cpu.Step()
    if err != nil {
        test.Fatalf("could not step cpu: %v\n", err)
    }

    return cycles
}

func checkRegisters(test *testing.T, cpu *CPUState, a byte, x byte, y byte, pc uint16, status byte) {
    if cpu.A != a {
        test.Fatalf("A register expected to be 0x%x but was 0x%x\n", a, cpu.A)
    }

    if cpu.X != x {
        test.Fatalf("X register expected to be 0x%x but was 0x%x\n", x, cpu.X)
    }

    if cpu.Y != y {
        test.Fatalf("Y register expected to be 0x%x but was 0x%x\n", y, cpu.Y)
    }

    if cpu.PC != pc {
        test.Fatalf("PC register expected to be 0x%x but was 0x%x\n", pc, cpu.PC)
    }

    if cpu.Status != status {
        test.Fatalf("status register expected to be 0x%x but was 0x%x\n", status, cpu.Status)
    }
}

func TestStartupState(test *testing.T){
    cpu := StartupState()
    if cpu.SP != 0xff {
        test.Fatalf("SP expected to be 0xff but was 0x%x\n", cpu.SP)
    }
    checkRegisters(test, cpu, 0, 0, 0, 0, 0x30)
    if cpu.Running {
        test.Fatalf("a new cpu should not be running")
    }
    if cpu.Cycle != 0 {
        test.Fatalf("cycle count expected to be 0 but was %v", cpu.Cycle)
    }

    zero := ZeroState()
    if zero.SP != 0 {
        test.Fatalf("SP expected to be 0 but was 0x%x\n", zero.SP)
    }
    checkRegisters(test, zero, 0, 0, 0, 0, 0)

    for _, address := range []uint16{0, 0x200, 0x8000, 0xffff} {
        if zero.LoadMemory(address) != 0 || cpu.LoadMemory(address) != 0 {
            test.Fatalf("memory at 0x%x should start zeroed", address)
        }
    }
}

/* https://skilldrick.github.io/easy6502/ */
func TestCPUSimple(test *testing.T){
    bytes := []byte{
        0xa9, 0x01,       // lda #$01
        0x8d, 0x00, 0x02, // sta $0200
        0xa9, 0x05,       // lda #$05
        0x8d, 0x01, 0x02, // sta $0201
        0xa9, 0x08,       // lda #$08
        0x8d, 0x02, 0x02, // sta $0202
    }

    cpu := StartupState()
    /* the program has no brk, so the zero byte after it stops the cpu */
    runProgram(test, cpu, 0x600, bytes)

    checkRegisters(test, cpu, 0x08, 0, 0, 0x610, 0x30)
    if cpu.SP != 0xff {
        test.Fatalf("SP expected to be 0xff but was 0x%x\n", cpu.SP)
    }

    expected := []byte{0x01, 0x05, 0x08}
    for i, value := range expected {
        address := uint16(0x200 + i)
        if cpu.LoadMemory(address) != value {
            test.Fatalf("Expected memory location 0x%x to be 0x%x but was 0x%x\n", address, value, cpu.LoadMemory(address))
        }
    }

    /* 3 lda #imm, 3 sta abs, and the brk */
    if cpu.Cycle != 3 * 2 + 3 * 4 + 7 {
        test.Fatalf("expected %v cycles but ran %v", 3 * 2 + 3 * 4 + 7, cpu.Cycle)
    }
}

func TestCPUSimple2(test *testing.T){
    bytes := []byte{
        0xa9, 0xc0, // LDA #$c0
        0xaa,       // tax
        0xe8,       // inx
        0x69, 0xc4, // adc #$c4
        0x00,       // brk
    }

    cpu := StartupState()
    runProgram(test, cpu, 0x600, bytes)

    checkRegisters(test, cpu, 0x84, 0xc1, 0, 0x607, 0xb1)
    if cpu.SP != 0xff {
        test.Fatalf("SP expected to be 0xff but was 0x%x\n", cpu.SP)
    }
}

func TestCPUSimpleBranch(test *testing.T){
    bytes := []byte{
        0xa2, 0x08, // ldx #$08
        0xca,       // dex
        0x8e, 0x00, 0x02, // stx $0200
        0xe0, 0x03, // cpx #$03
        0xd0, 0xf8, // bne 0xf8
        0x8e, 0x01, 0x02, // stx $0201
        0x00, // brk
    }

    cpu := StartupState()
    runProgram(test, cpu, 0x600, bytes)

    checkRegisters(test, cpu, 0, 0x03, 0, 0x60e, 0x33)

    if cpu.LoadMemory(0x200) != 0x3 {
        test.Fatalf("Expected memory location 0x200 to be 0x3 but was 0x%x\n", cpu.LoadMemory(0x200))
    }

    if cpu.LoadMemory(0x201) != 0x3 {
        test.Fatalf("Expected memory location 0x201 to be 0x3 but was 0x%x\n", cpu.LoadMemory(0x201))
    }
}

func TestLdaTaxInx(test *testing.T){
    cpu := StartupState()
    runProgram(test, cpu, 0x8000, []byte{0xa9, 0xc0, 0xaa, 0xe8, 0x00})
    if cpu.X != 0xc1 {
        test.Fatalf("X register expected to be 0xc1 but was 0x%x\n", cpu.X)
    }
}

func TestStack(test *testing.T){
    /* store values 0x0 - 0xf into memory locations
     * 0x200 - 0x20f, then 0xf - 0x0 into 0x210 - 0x21f
     * first push the values onto the stack then pop them
     * off again.
     */
    bytes := []byte{
        0xa2, 0x00, // ldx #$00
        0xa0, 0x00, // ldy #$00
        0x8a,       // txa
        0x99, 0x00, 0x02, // sta $0200,y
        0x48, // pha
        0xe8, // inx
        0xc8, // iny
        0xc0, 0x10, // cpy #$10
        0xd0, 0xf5, // bne
        0x68, // pla
        0x99, 0x00, 0x02, // sta $0200,y
        0xc8, // iny
        0xc0, 0x20, // cpy #$20
        0xd0, 0xf7, // bne
        0x00, // brk
    }

    cpu := StartupState()
    runProgram(test, cpu, 0x5000, bytes)

    if cpu.A != 0x0 {
        test.Fatalf("Expected A register to be 0x0 but was 0x%x\n", cpu.A)
    }

    if cpu.X != 0x10 {
        test.Fatalf("Expected X register to be 0x10 but was 0x%x\n", cpu.X)
    }

    if cpu.Y != 0x20 {
        test.Fatalf("Expected Y register to be 0x20 but was 0x%x\n", cpu.Y)
    }

    if cpu.SP != 0xff {
        test.Fatalf("Expected SP to be back at 0xff but was 0x%x\n", cpu.SP)
    }

    for i := 0; i <= 0xf; i++ {
        address := uint16(0x200 + i)
        if cpu.LoadMemory(address) != byte(i) {
            test.Fatalf("Expected memory location 0x%x to be 0x%x but was 0x%x\n", address, i, cpu.LoadMemory(address))
        }
    }

    for i := 0xf; i >= 0; i-- {
        address := uint16(0x21f - i)
        if cpu.LoadMemory(address) != byte(i) {
            test.Fatalf("Expected memory location 0x%x to be 0x%x but was 0x%x\n", address, i, cpu.LoadMemory(address))
        }
    }
}

func TestSubroutine(test *testing.T){
    bytes := []byte{
        0x20, 0x08, 0x50, // jsr $5008
        0xa0, 0x10, // ldy #$10
        0x4c, 0x0c, 0x50, // jmp $500c
        0xa2, 0x03, // ldx #$03
        0xe8, // inx
        0x60, // rts
        0x00, // brk
    }

    cpu := StartupState()
    runProgram(test, cpu, 0x5000, bytes)

    if cpu.X != 0x4 {
        test.Fatalf("Expected X register to be 0x4 but was 0x%x\n", cpu.X)
    }

    if cpu.Y != 0x10 {
        test.Fatalf("Expected Y register to be 0x10 but was 0x%x\n", cpu.Y)
    }

    if cpu.PC != 0x500d {
        test.Fatalf("Expected PC to be 0x500d but was 0x%x\n", cpu.PC)
    }

    /* jsr pushed the address of its last byte */
    if cpu.LoadStack(0xff) != 0x50 || cpu.LoadStack(0xfe) != 0x02 {
        test.Fatalf("Expected return address 0x5002 on the stack but found 0x%x%02x\n", cpu.LoadStack(0xff), cpu.LoadStack(0xfe))
    }
}

func TestLoadOverrun(test *testing.T){
    cpu := StartupState()

    err := cpu.Load(0xfffe, []byte{1, 2, 3})
    if !errors.Is(err, ErrAddressOverrun) {
        test.Fatalf("expected an address overrun but got %v", err)
    }

    if cpu.LoadMemory(0xfffe) != 0 || cpu.LoadMemory(0xffff) != 0 || cpu.LoadMemory(0) != 0 {
        test.Fatalf("a failed load should not write anything")
    }

    err = cpu.LoadExecutable(0xfff0, make([]byte, 0x20))
    if !errors.Is(err, ErrAddressOverrun) {
        test.Fatalf("expected an address overrun but got %v", err)
    }
    if cpu.Running || cpu.PC != 0 {
        test.Fatalf("a failed executable load should not touch the registers: %v", cpu.String())
    }

    /* exactly filling the top of memory is fine */
    err = cpu.Load(0xfffd, []byte{1, 2, 3})
    if err != nil {
        test.Fatalf("could not load at the top of memory: %v", err)
    }
    if cpu.LoadMemory(0xffff) != 3 {
        test.Fatalf("expected 0xffff to be 3 but was %v", cpu.LoadMemory(0xffff))
    }
}

func TestUnsupportedOpcode(test *testing.T){
    cpu := StartupState()
    err := cpu.LoadExecutable(0x8000, []byte{0x02})
    if err != nil {
        test.Fatalf("could not load program: %v", err)
    }

    before := cpu.Copy()

    cycles, err := cpu.Step()
    if !errors.Is(err, ErrUnsupportedOpcode) {
        test.Fatalf("expected unsupported opcode but got %v", err)
    }
    if cycles != 0 {
        test.Fatalf("a failed step should take no cycles but took %v", cycles)
    }
    if !cpu.Equals(before) {
        test.Fatalf("a failed step changed the cpu from %v to %v", before.String(), cpu.String())
    }

    err = cpu.Run()
    if !errors.Is(err, ErrUnsupportedOpcode) {
        test.Fatalf("expected run to stop with unsupported opcode but got %v", err)
    }
}

func TestRTIUnsupported(test *testing.T){
    _, err := Decode(0x40)
    if !errors.Is(err, ErrUnsupportedOpcode) {
        test.Fatalf("interrupt return should not be decodable but got %v", err)
    }
}

func TestBrkHalts(test *testing.T){
    cpu := StartupState()
    cycles := stepProgram(test, cpu, 0x8000, []byte{0x00, 0xa9, 0x05})
    if cpu.Running {
        test.Fatalf("brk should stop the cpu")
    }
    if cycles != 7 {
        test.Fatalf("brk expected to take 7 cycles but took %v", cycles)
    }
    if cpu.PC != 0x8001 {
        test.Fatalf("PC expected to be 0x8001 but was 0x%x", cpu.PC)
    }
    if cpu.SP != 0xff || cpu.Status != 0x30 {
        test.Fatalf("brk should not push anything or change flags: %v", cpu.String())
    }

    /* a halted cpu does nothing on run */
    err := cpu.Run()
    if err != nil {
        test.Fatalf("unexpected error %v", err)
    }
    if cpu.A != 0 {
        test.Fatalf("instructions after brk should not run")
    }
}

func TestCycleCounter(test *testing.T){
    cpu := StartupState()
    runProgram(test, cpu, 0x600, []byte{
        0xa2, 0x02, // ldx #$02
        0xca,       // dex
        0xd0, 0xfd, // bne
        0x00, // brk
    })

    /* ldx, 2 dex, one taken branch, one not taken, brk */
    expected := uint64(2 + 2 * 2 + 3 + 2 + 7)
    if cpu.Cycle != expected {
        test.Fatalf("expected %v cycles but ran %v", expected, cpu.Cycle)
    }
}

func TestFlagAccess(test *testing.T){
    cpu := ZeroState()
    cpu.SetFlag(FlagCarry)
    cpu.SetFlag(FlagNegative)
    if !cpu.CheckFlag(FlagCarry) || !cpu.CheckFlag(FlagNegative) {
        test.Fatalf("flags not set: 0x%x", cpu.Status)
    }
    if cpu.Status != 0x81 {
        test.Fatalf("status expected to be 0x81 but was 0x%x", cpu.Status)
    }
    cpu.ClearFlag(FlagCarry)
    if cpu.CheckFlag(FlagCarry) || cpu.Status != 0x80 {
        test.Fatalf("carry not cleared: 0x%x", cpu.Status)
    }
    if cpu.GetNegativeFlag() != cpu.CheckFlag(FlagNegative) {
        test.Fatalf("getter disagrees with CheckFlag")
    }
}

func TestInterruptDecimalFlags(test *testing.T){
    cpu := StartupState()
    /* sei / sed */
    runProgram(test, cpu, 0x600, []byte{0x78, 0xf8, 0x00})
    if !cpu.GetInterruptDisableFlag() || !cpu.GetDecimalFlag() {
        test.Fatalf("sei and sed should set their flags: 0x%x", cpu.Status)
    }
    if cpu.Status != 0x3c {
        test.Fatalf("status expected to be 0x3c but was 0x%x", cpu.Status)
    }

    /* cli / cld */
    runProgram(test, cpu, 0x600, []byte{0x58, 0xd8, 0x00})
    if cpu.GetInterruptDisableFlag() || cpu.GetDecimalFlag() {
        test.Fatalf("cli and cld should clear their flags: 0x%x", cpu.Status)
    }
    if cpu.Status != 0x30 {
        test.Fatalf("status expected to be 0x30 but was 0x%x", cpu.Status)
    }
}

func TestCopy(test *testing.T){
    cpu := StartupState()
    cpu.StoreMemory(0x10, 0x42)
    cpu.A = 3

    copied := cpu.Copy()
    cpu.StoreMemory(0x10, 0x43)

    if !cpu.Equals(copied) {
        test.Fatalf("copy should have equal registers: %v vs %v", cpu.String(), copied.String())
    }

    if copied.LoadMemory(0x10) != 0x42 {
        test.Fatalf("copy should have its own memory")
    }
}

func BenchmarkSimple(benchmark *testing.B){
    bytes := []byte{
        0xa2, 0x02, // ldx #$02
        0x8a, // txa
        0x85, 0x10, // sta $10
        0xe8, // inx
        0x4c, 0x00, 0x06, // jmp $0600
    }

    cpu := StartupState()
    err := cpu.LoadExecutable(0x600, bytes)
    if err != nil {
        benchmark.Fatalf("Could not load program %v\n", err)
    }

    benchmark.ResetTimer()
    for i := 0; i < benchmark.N; i++ {
        _, err := cpu.Step()
        if err != nil {
            benchmark.Fatalf("Could not execute cpu %v\n", err)
        }
    }
}
