// Profiles Manager - Named profile picker for applications
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package launch starts the downstream program with the selected profile.
package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/cloud-exit/profiles-manager/internal/ui"
)

// ProfileEnv is always exported to the launched program.
const ProfileEnv = "PROFILE_MANAGER_PROFILE"

var envNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ErrNoProgram is returned by Program when Options.Program is empty.
var ErrNoProgram = errors.New("no program configured")

// InvalidEnvVarError is returned for a variable name a shell can't export.
type InvalidEnvVarError struct {
	Name string
}

func (e *InvalidEnvVarError) Error() string {
	return "invalid environment variable name: " + e.Name
}

// Options describes how to hand the selected profile to the next program.
type Options struct {
	Profile string
	EnvVar  string
	Program string
	Args    []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ValidateEnvVar checks that name is usable as an environment variable.
func ValidateEnvVar(name string) error {
	if name != "" && !envNameRe.MatchString(name) {
		return &InvalidEnvVarError{Name: name}
	}
	return nil
}

// Environ returns base with the profile variables set, replacing any
// earlier definitions.
func Environ(base []string, opts Options) []string {
	set := map[string]string{ProfileEnv: opts.Profile}
	if opts.EnvVar != "" {
		set[opts.EnvVar] = opts.Profile
	}
	env := make([]string, 0, len(base)+len(set))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, ok := set[k]; ok {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, ProfileEnv+"="+opts.Profile)
	if opts.EnvVar != "" && opts.EnvVar != ProfileEnv {
		env = append(env, opts.EnvVar+"="+opts.Profile)
	}
	return env
}

// ExportLine renders an assignment a POSIX shell can eval.
func ExportLine(name, value string) string {
	return fmt.Sprintf("export %s='%s'", name, strings.ReplaceAll(value, "'", `'\''`))
}

// Program runs opts.Program with inherited stdio and waits for it. It returns
// the child's exit code; err is set only when the program could not start.
func Program(opts Options) (int, error) {
	if opts.Program == "" {
		return 1, ErrNoProgram
	}
	if err := ValidateEnvVar(opts.EnvVar); err != nil {
		return 1, err
	}

	c := exec.Command(opts.Program, opts.Args...)
	c.Env = Environ(os.Environ(), opts)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if opts.Stdin != nil {
		c.Stdin = opts.Stdin
	}
	if opts.Stdout != nil {
		c.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		c.Stderr = opts.Stderr
	}

	ui.Debugf("launch: %s %s (profile %q)", opts.Program, strings.Join(opts.Args, " "), opts.Profile)

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("failed to start %s: %w", opts.Program, err)
}
