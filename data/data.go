package data

import (
    "embed"
    "io/fs"
    "path"
    "sort"
    "strings"
)

/* example programs in the hex dump format, assembled at $0600 */
//go:embed programs/*
var programsFS embed.FS

const ProgramAddress uint16 = 0x600

func OpenProgram(name string) (fs.File, error) {
    return programsFS.Open("programs/" + name + ".hex")
}

/* names of the embedded programs, without the .hex extension */
func ListPrograms() []string {
    entries, err := programsFS.ReadDir("programs")
    if err != nil {
        return nil
    }

    var out []string
    for _, entry := range entries {
        if strings.HasSuffix(entry.Name(), ".hex") {
            out = append(out, strings.TrimSuffix(path.Base(entry.Name()), ".hex"))
        }
    }

    sort.Strings(out)
    return out
}
