package branch

import (
    "fmt"
    "log"

    nes "github.com/kazzmir/unes/lib"
    test_utils "github.com/kazzmir/unes/test/all-test/utils"
)

/* Branch timing. Each program sets the zero flag with lda and then runs a
 * single beq. The beq costs 2 cycles when not taken, 3 when taken to the
 * same page and 4 when the target is on another page.
 */

type branchTest struct {
    Name string
    Address uint16
    Program []byte
    Cycles int
    PC uint16
}

var tests = []branchTest{
    {"not taken", 0x600, []byte{0xa9, 0x01, 0xf0, 0x10}, 2, 0x604},
    {"forward", 0x600, []byte{0xa9, 0x00, 0xf0, 0x02}, 3, 0x606},
    {"backward", 0x680, []byte{0xa9, 0x00, 0xf0, 0xfc}, 3, 0x680},
    {"forward page cross", 0x6f0, []byte{0xa9, 0x00, 0xf0, 0x20}, 4, 0x714},
    {"backward page cross", 0x700, []byte{0xa9, 0x00, 0xf0, 0xf0}, 4, 0x6f4},
}

func doTest(test branchTest, debug bool) (bool, error) {
    cpu := nes.StartupState()
    if debug {
        cpu.Debug = 1
    }

    err := cpu.LoadExecutable(test.Address, test.Program)
    if err != nil {
        return false, err
    }

    _, err = cpu.Step()
    if err != nil {
        return false, err
    }

    cycles, err := cpu.Step()
    if err != nil {
        return false, err
    }

    if cycles != test.Cycles || cpu.PC != test.PC {
        log.Printf("branch %v: expected %v cycles to 0x%04x but took %v to 0x%04x", test.Name, test.Cycles, test.PC, cycles, cpu.PC)
        return false, nil
    }

    return true, nil
}

func Run(debug bool) (bool, error) {
    passed := 0
    for _, test := range tests {
        ok, err := doTest(test, debug)
        if err != nil {
            return false, fmt.Errorf("%v: %w", test.Name, err)
        }

        log.Print(test_utils.Report(fmt.Sprintf("Branch %v", test.Name), ok))
        if ok {
            passed += 1
        }
    }

    return passed == len(tests), nil
}
