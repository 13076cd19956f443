package common

import (
    "os"
    "io"
    "fmt"
    "bufio"
    "strings"
    "strconv"
    "crypto/sha256"
    "path/filepath"

    "github.com/kazzmir/unes/data"
)

func FileExists(path string) bool {
    info, err := os.Stat(path)
    if err != nil {
        // missing, or not reachable through the path
        return false
    }

    // return true if exist and is not a directory
    return !info.IsDir()
}

/* return the sha256 hash of a program image */
func GetSha256(data []byte) string {
    return fmt.Sprintf("%x", sha256.Sum256(data))
}

func FindFile(path string) string {
    execRelative := filepath.Join(filepath.Dir(os.Args[0]), path)
    if FileExists(execRelative) {
        return execRelative
    }

    return path
}

/* parse a 16-bit address written in hex, with an optional $ or 0x prefix */
func ParseAddress(text string) (uint16, error) {
    text = strings.TrimSpace(text)
    text = strings.TrimPrefix(text, "$")
    text = strings.TrimPrefix(strings.ToLower(text), "0x")

    value, err := strconv.ParseUint(text, 16, 16)
    if err != nil {
        return 0, fmt.Errorf("invalid address '%v': %w", text, err)
    }
    return uint16(value), nil
}

/* hex dump format, the way easy6502 prints assembled programs:
 *   a9 01 8d 00 02 ; comment
 * a leading 'address:' on a line is ignored
 */
func ParseHexProgram(reader io.Reader) ([]byte, error) {
    var out []byte

    scanner := bufio.NewScanner(reader)
    line := 0
    for scanner.Scan() {
        line += 1
        text := scanner.Text()
        if comment := strings.IndexAny(text, ";#"); comment != -1 {
            text = text[:comment]
        }

        if colon := strings.Index(text, ":"); colon != -1 {
            text = text[colon+1:]
        }

        for _, field := range strings.Fields(text) {
            value, err := strconv.ParseUint(field, 16, 8)
            if err != nil {
                return nil, fmt.Errorf("line %v: invalid byte '%v': %w", line, field, err)
            }
            out = append(out, byte(value))
        }
    }

    if scanner.Err() != nil {
        return nil, scanner.Err()
    }

    return out, nil
}

/* a .hex file is parsed as text, anything else is a raw binary image */
func ReadProgram(path string) ([]byte, error) {
    if strings.ToLower(filepath.Ext(path)) == ".hex" {
        file, err := os.Open(path)
        if err != nil {
            return nil, err
        }
        defer file.Close()
        return ParseHexProgram(file)
    }

    return os.ReadFile(path)
}

/* one of the programs built into the binary, see data.ListPrograms */
func ReadExample(name string) ([]byte, error) {
    file, err := data.OpenProgram(name)
    if err != nil {
        return nil, fmt.Errorf("no example program named '%v': %w", name, err)
    }
    defer file.Close()
    return ParseHexProgram(file)
}
