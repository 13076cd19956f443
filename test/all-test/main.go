package main

import (
    "os"
    "log"

    "github.com/kazzmir/unes/test/all-test/easy6502"
    branch "github.com/kazzmir/unes/test/all-test/branch"
)

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    debug := len(os.Args) > 1 && os.Args[1] == "-debug"

    failed := false

    ok, err := easy6502.Run(debug)
    if err != nil {
        log.Printf("easy6502 failed with an error: %v", err)
    }
    if !ok {
        log.Printf("easy6502 tests failed")
        failed = true
    }

    ok, err = branch.Run(debug)
    if err != nil {
        log.Printf("branch failed with an error: %v", err)
    }
    if !ok {
        log.Printf("branch tests failed")
        failed = true
    }

    if failed {
        os.Exit(1)
    }
}
