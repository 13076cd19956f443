package common

import (
    "os"
    "log"
    "encoding/json"
    "path/filepath"
)

const CurrentVersion = 1

type ConfigData struct {
    Version int `json:"version,omitempty"`
    /* hex, where programs are loaded when no address is given */
    LoadAddress string `json:"load-address,omitempty"`
    /* pixel multiplier for the screen window */
    Scale int `json:"scale,omitempty"`
    Realtime bool `json:"realtime,omitempty"`
    NoColor bool `json:"no-color,omitempty"`
    /* hex addresses the debugger stops at */
    Breakpoints []string `json:"breakpoints,omitempty"`
}

/* make the directory where the config file lives, which is ~/.config/unes on linux */
func GetOrCreateConfigDir() (string, error) {
    configDir, err := os.UserConfigDir()
    if err != nil {
        return "", err
    }
    configPath := filepath.Join(configDir, "unes")
    err = os.MkdirAll(configPath, 0755)
    if err != nil {
        return "", err
    }

    return configPath, nil
}

func DefaultConfigData() ConfigData {
    return ConfigData{
        Version: CurrentVersion,
        LoadAddress: "0600",
        Scale: 10,
    }
}

func ConfigPath() (string, error) {
    configPath, err := GetOrCreateConfigDir()
    if err != nil {
        return "", err
    }
    return filepath.Join(configPath, "config.json"), nil
}

func LoadConfigData() (ConfigData, error) {
    config, err := ConfigPath()
    if err != nil {
        return DefaultConfigData(), err
    }
    return LoadConfigFile(config)
}

func LoadConfigFile(config string) (ConfigData, error) {
    file, err := os.Open(config)
    if err != nil {
        return DefaultConfigData(), err
    }
    defer file.Close()

    var data ConfigData
    decoder := json.NewDecoder(file)
    err = decoder.Decode(&data)
    if err != nil {
        log.Printf("Could not load config data: %v", err)
        return DefaultConfigData(), err
    }

    if data.Version != CurrentVersion {
        return DefaultConfigData(), nil
    }

    /* fill in anything an older file left out */
    defaults := DefaultConfigData()
    if data.LoadAddress == "" {
        data.LoadAddress = defaults.LoadAddress
    }
    if data.Scale <= 0 {
        data.Scale = defaults.Scale
    }

    return data, nil
}

/* write the config.json file in the config dir */
func SaveConfigData(data ConfigData) error {
    config, err := ConfigPath()
    if err != nil {
        return err
    }
    return SaveConfigFile(config, data)
}

func SaveConfigFile(config string, data ConfigData) error {
    file, err := os.Create(config)
    if err != nil {
        return err
    }
    defer file.Close()

    encoder := json.NewEncoder(file)
    encoder.SetIndent("", "  ")
    return encoder.Encode(data)
}
