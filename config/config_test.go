/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exprgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.NullCheck)
	assert.Equal(t, "UTC", cfg.TimeZone)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
null_check: false
time_zone: Asia/Shanghai
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.NullCheck)
	assert.Equal(t, "Asia/Shanghai", cfg.TimeZone)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "time_zone: America/New_York\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.NullCheck, "unset keys keep their defaults")
	assert.Equal(t, "America/New_York", cfg.TimeZone)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "null_check: [not, a, bool]\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "time_zone: Not/AZone\n"))
	assert.Error(t, err)
}

func TestValidateEmptyZoneDefaultsToUTC(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "UTC", cfg.TimeZone)
}
