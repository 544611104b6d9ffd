// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma_test

import (
	"os"
	"path/filepath"
	"testing"

	"code.hybscloud.com/sigma"
)

func TestParseConfig(t *testing.T) {
	c, err := sigma.ParseConfig([]byte(`
[machine]
max-depth = 512

[log]
verbosity = 2
path = "sigma.log"
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Machine.MaxDepth != 512 {
		t.Errorf("MaxDepth = %d, want 512", c.Machine.MaxDepth)
	}
	if c.Machine.CheckEvery != sigma.DefaultCheckEvery || c.Machine.LocalsHint != sigma.DefaultLocalsHint {
		t.Errorf("missing fields not defaulted: %+v", c.Machine)
	}
	if c.Log.Verbosity != 2 || c.Log.Path != "sigma.log" {
		t.Errorf("Log = %+v", c.Log)
	}
}

func TestParseConfigNonPositive(t *testing.T) {
	c, err := sigma.ParseConfig([]byte("[machine]\nmax-depth = 0\ncheck-every = -5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Machine.MaxDepth != sigma.DefaultMaxDepth || c.Machine.CheckEvery != sigma.DefaultCheckEvery {
		t.Errorf("Machine = %+v, want defaults", c.Machine)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	if _, err := sigma.ParseConfig([]byte("[machine\n")); err == nil {
		t.Error("malformed TOML parsed without error")
	}
	if _, err := sigma.ParseConfig([]byte(`[machine]` + "\n" + `max-depth = "deep"`)); err == nil {
		t.Error("string depth parsed without error")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigma.toml")
	if err := os.WriteFile(path, []byte("[machine]\nlocals-hint = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := sigma.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Machine.LocalsHint != 16 {
		t.Errorf("LocalsHint = %d, want 16", c.Machine.LocalsHint)
	}
	m := sigma.NewMachine(c.Machine)
	if m.Config().LocalsHint != 16 || m.Config().MaxDepth != sigma.DefaultMaxDepth {
		t.Errorf("machine config = %+v", m.Config())
	}
}

func TestNewMachineDefaults(t *testing.T) {
	m := sigma.NewMachine(sigma.MachineConfig{})
	if m.Config() != sigma.DefaultConfig().Machine {
		t.Errorf("Config() = %+v, want %+v", m.Config(), sigma.DefaultConfig().Machine)
	}
	if other := sigma.NewMachine(sigma.MachineConfig{}); other.ID() == m.ID() {
		t.Error("two machines share an ID")
	}
}
