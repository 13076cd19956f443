package debug

import (
    "fmt"
    "testing"
)

func TestTUILogWithoutGui(test *testing.T){
    tui := MakeTUI(MakeDebugger())

    for i := 0; i < maxLogLines + 10; i++ {
        _, err := fmt.Fprintf(tui, "line %v\n", i)
        if err != nil {
            test.Fatalf("could not write: %v", err)
        }
    }

    /* after the gui is gone writes only collect lines */
    tui.detach()
    fmt.Fprintf(tui, "last\nlines\n")

    if len(tui.logLines) != maxLogLines {
        test.Fatalf("expected %v log lines but have %v", maxLogLines, len(tui.logLines))
    }
    if tui.logLines[len(tui.logLines)-1] != "lines" || tui.logLines[len(tui.logLines)-2] != "last" {
        test.Fatalf("unexpected tail %v", tui.logLines[len(tui.logLines)-2:])
    }
    if tui.logLines[0] != "line 12" {
        test.Fatalf("oldest line expected to be 'line 12' but was '%v'", tui.logLines[0])
    }
}
