// Profiles Manager - Named profile picker for applications
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package launch

import (
	"bytes"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnviron(t *testing.T) {
	base := []string{"PATH=/bin", "GAME_PROFILE=stale", ProfileEnv + "=old", "HOME=/home/u"}
	env := Environ(base, Options{Profile: "work", EnvVar: "GAME_PROFILE"})

	assert.Equal(t, []string{
		"PATH=/bin",
		"HOME=/home/u",
		ProfileEnv + "=work",
		"GAME_PROFILE=work",
	}, env)
}

func TestEnviron_NoEnvVar(t *testing.T) {
	env := Environ([]string{"PATH=/bin"}, Options{Profile: "work"})
	assert.Equal(t, []string{"PATH=/bin", ProfileEnv + "=work"}, env)
}

func TestEnviron_EnvVarIsProfileEnv(t *testing.T) {
	env := Environ(nil, Options{Profile: "work", EnvVar: ProfileEnv})
	assert.Equal(t, []string{ProfileEnv + "=work"}, env)
}

func TestValidateEnvVar(t *testing.T) {
	for _, ok := range []string{"", "A", "_x", "GAME_PROFILE_2"} {
		assert.NoError(t, ValidateEnvVar(ok), ok)
	}
	for _, bad := range []string{"1A", "A-B", "A B", "A=B"} {
		var e *InvalidEnvVarError
		assert.ErrorAs(t, ValidateEnvVar(bad), &e, bad)
	}
}

func TestExportLine(t *testing.T) {
	assert.Equal(t, "export P='work'", ExportLine("P", "work"))
	assert.Equal(t, `export P='it'\''s'`, ExportLine("P", "it's"))
}

func TestProgram_NoProgram(t *testing.T) {
	_, err := Program(Options{Profile: "a"})
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestProgram_InvalidEnvVar(t *testing.T) {
	_, err := Program(Options{Profile: "a", EnvVar: "1bad", Program: "true"})
	var e *InvalidEnvVarError
	assert.ErrorAs(t, err, &e)
}

func TestProgram_PassesProfile(t *testing.T) {
	sh := requireShell(t)
	var out bytes.Buffer
	code, err := Program(Options{
		Profile: "work",
		EnvVar:  "GAME_PROFILE",
		Program: sh,
		Args:    []string{"-c", `printf '%s %s' "$GAME_PROFILE" "$` + ProfileEnv + `"`},
		Stdout:  &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "work work", out.String())
}

func TestProgram_ExitCode(t *testing.T) {
	sh := requireShell(t)
	code, err := Program(Options{Profile: "a", Program: sh, Args: []string{"-c", "exit 3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestProgram_NotFound(t *testing.T) {
	code, err := Program(Options{Profile: "a", Program: "/nonexistent/program"})
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found")
	}
	return sh
}
