package lib

import (
    "errors"
    "testing"
)

func TestDecode(test *testing.T){
    type decodeCase struct {
        Code byte
        Name string
        Mode AddressMode
        Cycles int
    }

    cases := []decodeCase{
        decodeCase{Code: 0xa9, Name: "LDA", Mode: AddressImmediate, Cycles: 2},
        decodeCase{Code: 0xbd, Name: "LDA", Mode: AddressAbsoluteX, Cycles: 4},
        decodeCase{Code: 0xb6, Name: "LDX", Mode: AddressZeroPageY, Cycles: 4},
        decodeCase{Code: 0x6c, Name: "JMP", Mode: AddressIndirect, Cycles: 5},
        decodeCase{Code: 0xd0, Name: "BNE", Mode: AddressRelative, Cycles: 2},
        decodeCase{Code: 0x00, Name: "BRK", Mode: AddressImplied, Cycles: 7},
        decodeCase{Code: 0x0a, Name: "ASL", Mode: AddressAccumulator, Cycles: 2},
        decodeCase{Code: 0xfe, Name: "INC", Mode: AddressAbsoluteX, Cycles: 7},
        decodeCase{Code: 0x91, Name: "STA", Mode: AddressIndirectY, Cycles: 6},
        decodeCase{Code: 0x20, Name: "JSR", Mode: AddressAbsolute, Cycles: 6},
    }

    for _, check := range cases {
        entry, err := Decode(check.Code)
        if err != nil {
            test.Fatalf("could not decode 0x%x: %v", check.Code, err)
        }
        if entry.Name != check.Name || entry.Mode != check.Mode || entry.Cycles != check.Cycles {
            test.Fatalf("0x%x decoded as %v %v %v", check.Code, entry.Name, entry.Mode, entry.Cycles)
        }
        if int(entry.Kind) != int(check.Code) {
            test.Fatalf("0x%x has kind 0x%x", check.Code, int(entry.Kind))
        }
    }

    for _, code := range []byte{0x02, 0x03, 0x1a, 0x40, 0x80, 0xff} {
        _, err := Decode(code)
        if !errors.Is(err, ErrUnsupportedOpcode) {
            test.Fatalf("0x%x expected to be unsupported but got %v", code, err)
        }
    }
}

func TestOpcodeTable(test *testing.T){
    /* 151 documented opcodes without rti */
    all := AllOpcodes()
    if len(all) != 150 {
        test.Fatalf("expected 150 opcodes but found %v", len(all))
    }

    mnemonics := make(map[string]bool)
    for _, entry := range all {
        mnemonics[entry.Name] = true
    }

    /* 56 documented mnemonics without rti */
    if len(mnemonics) != 55 {
        test.Fatalf("expected 55 mnemonics but found %v", len(mnemonics))
    }
}
