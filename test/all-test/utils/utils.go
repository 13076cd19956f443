package utils

import (
    "fmt"
    "github.com/fatih/color"
)

func Failure(message string) string {
    red := color.New(color.FgRed).SprintFunc()
    return fmt.Sprintf("%v %v", message, red("failed"))
}

func Success(message string) string {
    green := color.New(color.FgGreen).SprintFunc()
    return fmt.Sprintf("%v %v", message, green("passed"))
}

func Report(message string, ok bool) string {
    if ok {
        return Success(message)
    }
    return Failure(message)
}

/* "3/4 passed" in green when everything passed, yellow otherwise */
func Summary(name string, passed int, total int) string {
    style := color.New(color.FgYellow, color.Bold)
    if passed == total {
        style = color.New(color.FgGreen, color.Bold)
    }
    return fmt.Sprintf("%v: %v", name, style.Sprintf("%v/%v passed", passed, total))
}
