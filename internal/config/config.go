package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Zipfer/ocf-neutron-agent/internal/logger"
	"github.com/Zipfer/ocf-neutron-agent/internal/ocf"
)

// Built-in parameter defaults for the supervised network agent.
const (
	DefaultBinary      = "neutron-dhcp-agent"
	DefaultConfig      = "/etc/neutron/neutron.conf"
	DefaultAgentConfig = "/etc/neutron/dhcp_agent.ini"
	DefaultUser        = "neutron"
)

// EnvDefaultsFile names an optional TOML file with site-wide defaults.
// OCF_RESKEY_* parameters always win over it.
const EnvDefaultsFile = "OCF_NEUTRON_AGENT_CONFIG"

// Handle identifies the one daemon instance this invocation supervises.
// It is immutable once resolved.
type Handle struct {
	Binary               string
	ConfigFile           string
	AgentConfigFile      string
	User                 string
	PIDFile              string
	AdditionalParameters []string
	JournalDSN           string
	Log                  logger.Config
}

// fileDefaults is the TOML shape of the optional defaults file.
type fileDefaults struct {
	Binary      string        `toml:"binary" mapstructure:"binary"`
	Config      string        `toml:"config" mapstructure:"config"`
	AgentConfig string        `toml:"agent_config" mapstructure:"agent_config"`
	User        string        `toml:"user" mapstructure:"user"`
	PIDFile     string        `toml:"pidfile" mapstructure:"pidfile"`
	JournalDSN  string        `toml:"journal_dsn" mapstructure:"journal_dsn"`
	Log         logger.Config `toml:"log" mapstructure:"log"`
}

// Load resolves the Handle: built-in defaults, then the optional defaults
// file, then OCF_RESKEY_* environment parameters, strongest last.
func Load() (Handle, error) {
	h := Handle{
		Binary:          DefaultBinary,
		ConfigFile:      DefaultConfig,
		AgentConfigFile: DefaultAgentConfig,
		User:            DefaultUser,
	}

	if path := os.Getenv(EnvDefaultsFile); path != "" {
		fd, err := loadDefaultsFile(path)
		if err != nil {
			return Handle{}, fmt.Errorf("defaults file %s: %w", path, err)
		}
		applyDefaults(&h, fd)
	}

	if v := ocf.ResKey("binary"); v != "" {
		h.Binary = v
	}
	if v := ocf.ResKey("config"); v != "" {
		h.ConfigFile = v
	}
	if v := ocf.ResKey("agent_config"); v != "" {
		h.AgentConfigFile = v
	}
	if v := ocf.ResKey("user"); v != "" {
		h.User = v
	}
	if v := ocf.ResKey("pid"); v != "" {
		h.PIDFile = v
	}
	if v := ocf.ResKey("journal_dsn"); v != "" {
		h.JournalDSN = v
	}
	if v := ocf.ResKey("additional_parameters"); v != "" {
		h.AdditionalParameters = strings.Fields(v)
	}
	if h.PIDFile == "" {
		h.PIDFile = filepath.Join(ocf.RSCTmpDir(), ocf.ResourceInstance()+".pid")
	}
	if ocf.ResKey("debug") != "" {
		h.Log.Level = "debug"
	}
	return h, nil
}

func loadDefaultsFile(path string) (fileDefaults, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fileDefaults{}, err
	}
	var fd fileDefaults
	if err := v.Unmarshal(&fd); err != nil {
		return fileDefaults{}, err
	}
	return fd, nil
}

func applyDefaults(h *Handle, fd fileDefaults) {
	if fd.Binary != "" {
		h.Binary = fd.Binary
	}
	if fd.Config != "" {
		h.ConfigFile = fd.Config
	}
	if fd.AgentConfig != "" {
		h.AgentConfigFile = fd.AgentConfig
	}
	if fd.User != "" {
		h.User = fd.User
	}
	if fd.PIDFile != "" {
		h.PIDFile = fd.PIDFile
	}
	if fd.JournalDSN != "" {
		h.JournalDSN = fd.JournalDSN
	}
	h.Log = fd.Log
}

// Args returns the argv tail the daemon is started with: both config files
// plus any caller-supplied extra arguments.
func (h Handle) Args() []string {
	args := []string{
		"--config-file", h.ConfigFile,
		"--config-file", h.AgentConfigFile,
	}
	return append(args, h.AdditionalParameters...)
}

// BinaryName returns the bare executable name, used to match process-table
// entries when the PID record is missing.
func (h Handle) BinaryName() string {
	return filepath.Base(h.Binary)
}
