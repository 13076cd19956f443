package branch

import (
    "testing"
)

func TestBranchTiming(test *testing.T){
    ok, err := Run(false)
    if err != nil {
        test.Fatalf("branch tests failed with an error: %v", err)
    }
    if !ok {
        test.Fatalf("branch timing is wrong")
    }
}
