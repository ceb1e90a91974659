package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Library  LibraryConfig  `yaml:"library"`
}

type ServerConfig struct {
	Port           int            `yaml:"port"`
	Concurrency    int            `yaml:"concurrency"`
	RequestConfig  RequestConfig  `yaml:"request"`
	LogConfig      LogConfig      `yaml:"log"`
	CleanConfig    CleanConfig    `yaml:"clean"`
	SnapshotConfig SnapshotConfig `yaml:"snapshot"`
}

// RequestConfig bounds uploads; SizeLimit is in megabytes.
type RequestConfig struct {
	SizeLimit int `yaml:"size_limit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"log_path"`
}

type CleanConfig struct {
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
}

// SnapshotConfig bounds exports; MaxExportMB of zero disables the cap.
type SnapshotConfig struct {
	MaxExportMB int `yaml:"max_export_mb"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// LibraryConfig locates the directory holding exported .afm artifacts.
type LibraryConfig struct {
	Path string `yaml:"path"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 512
	}
	if c.Server.CleanConfig.Schedule == "" {
		c.Server.CleanConfig.Schedule = "0 3 * * *"
	}
	if c.Server.CleanConfig.RetentionDays == 0 {
		c.Server.CleanConfig.RetentionDays = 30
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "shoebox.db"
	}
	if c.Library.Path == "" {
		c.Library.Path = "library"
	}
}
