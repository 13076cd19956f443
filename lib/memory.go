package lib

import (
    "fmt"
)

/* every address in the 16-bit space is backed by a byte */
const MemorySize = 0x10000

type Memory struct {
    Data [MemorySize]byte
}

func NewMemory() *Memory {
    /* by default the data initializes to all 0's */
    return &Memory{}
}

func (memory *Memory) Store(address uint16, value byte){
    memory.Data[address] = value
}

func (memory *Memory) Load(address uint16) byte {
    return memory.Data[address]
}

/* little endian. the high byte of a word at 0xffff comes from 0x0000 */
func (memory *Memory) LoadWord(address uint16) uint16 {
    low := uint16(memory.Load(address))
    high := uint16(memory.Load(address + 1))
    return (high << 8) | low
}

func (memory *Memory) StoreWord(address uint16, value uint16){
    memory.Store(address, byte(value & 0xff))
    memory.Store(address + 1, byte(value >> 8))
}

/* write data starting at address. nothing is written if the data would
 * run past the end of memory
 */
func (memory *Memory) Copy(address uint16, data []byte) error {
    if int(address) + len(data) > MemorySize {
        return fmt.Errorf("%w: %v bytes at 0x%04x", ErrAddressOverrun, len(data), address)
    }

    copy(memory.Data[address:], data)
    return nil
}

/* a copy of length bytes starting at address, wrapping at the top of memory */
func (memory *Memory) Range(address uint16, length int) []byte {
    out := make([]byte, length)
    for i := 0; i < length; i++ {
        out[i] = memory.Load(address + uint16(i))
    }
    return out
}

func (memory *Memory) Clear(){
    memory.Data = [MemorySize]byte{}
}
