// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package configs holds the global configuration of the command line
// and web front ends.
package configs

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/komkom/toml"
	"gopkg.in/yaml.v3"

	"codeberg.org/readeck/distiller/pkg/distill"
)

// Version is the application version, set at build time.
var Version = "dev"

// envPrefix is the prefix of every environment variable.
const envPrefix = "DISTILLER_"

type config struct {
	Main      configMain      `json:"main"`
	Server    configServer    `json:"server"`
	Extractor configExtractor `json:"extractor"`
	Distill   configDistill   `json:"distill"`
}

type configMain struct {
	LogLevel slog.Level `json:"log_level" env:"LOG_LEVEL"`
	DevMode  bool       `json:"dev_mode" env:"DEV_MODE"`
}

type configServer struct {
	Host       string `json:"host" env:"SERVER_HOST"`
	Port       int    `json:"port" env:"SERVER_PORT"`
	DebugPages bool   `json:"debug_pages" env:"SERVER_DEBUG_PAGES"`
}

type configExtractor struct {
	Timeout   Duration `json:"timeout" env:"EXTRACTOR_TIMEOUT"`
	DeniedIPs []IPNet  `json:"denied_ips" env:"EXTRACTOR_DENIED_IPS"`
	UserAgent string   `json:"user_agent" env:"EXTRACTOR_USER_AGENT"`
}

type configDistill struct {
	Options distill.Options `json:"options" envPrefix:"DISTILL_"`
	Base    string          `json:"base" env:"DISTILL_BASE"`
}

// Config holds the configuration data.
var Config = newConfig()

func newConfig() config {
	return config{
		Main: configMain{
			LogLevel: slog.LevelInfo,
		},
		Server: configServer{
			Host:       "127.0.0.1",
			Port:       8000,
			DebugPages: true,
		},
		Extractor: configExtractor{
			Timeout: Duration(10 * time.Second),
			DeniedIPs: []IPNet{
				MustParseIPNet("127.0.0.0/8"),
				MustParseIPNet("::1/128"),
			},
		},
		Distill: configDistill{
			Options: distill.DefaultOptions(),
		},
	}
}

// Reset restores the default configuration.
func Reset() {
	Config = newConfig()
}

// LoadConfiguration loads the configuration file, when not empty,
// and applies the environment overrides.
// The file format is chosen from its extension: ".yaml" or ".yml"
// for YAML, TOML otherwise.
func LoadConfiguration(configPath string) error {
	if configPath != "" {
		fd, err := os.Open(configPath)
		if err != nil {
			return err
		}
		defer fd.Close() //nolint:errcheck

		switch strings.ToLower(filepath.Ext(configPath)) {
		case ".yaml", ".yml":
			err = decodeYAML(fd, &Config)
		default:
			err = json.NewDecoder(toml.New(fd)).Decode(&Config)
		}
		if err != nil {
			return fmt.Errorf("cannot load %s: %w", configPath, err)
		}
	}

	return env.ParseWithOptions(&Config, env.Options{Prefix: envPrefix})
}

// decodeYAML reads a YAML document and decodes it through its JSON
// representation so both formats share the same field names.
func decodeYAML(r io.Reader, dest any) error {
	var data any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

// Duration is a [time.Duration] that reads from strings like "10s".
type Duration time.Duration

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// IPNet is a network range read from its CIDR notation.
type IPNet struct {
	*net.IPNet
}

// ParseIPNet parses a CIDR value.
func ParseIPNet(s string) (IPNet, error) {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		return IPNet{}, err
	}
	return IPNet{n}, nil
}

// MustParseIPNet is like [ParseIPNet] but panics on error.
func MustParseIPNet(s string) IPNet {
	n, err := ParseIPNet(s)
	if err != nil {
		panic(err)
	}
	return n
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (n *IPNet) UnmarshalText(text []byte) (err error) {
	*n, err = ParseIPNet(string(text))
	return
}

// MarshalText implements [encoding.TextMarshaler].
func (n IPNet) MarshalText() ([]byte, error) {
	if n.IPNet == nil {
		return []byte{}, nil
	}
	return []byte(n.String()), nil
}
