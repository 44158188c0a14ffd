// Profiles Manager - Named profile picker for applications
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app", "profiles.json")
	in := []Record{{Name: "work"}, {Name: "personal"}, {Name: "Work"}, {Name: "zeta"}}

	require.NoError(t, SaveProfilesTo(path, in))
	assert.Equal(t, in, LoadProfilesFrom(path))
}

func TestSaveProfilesTo_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, SaveProfilesTo(path, []Record{{Name: "a"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"a\"\n  }\n]", string(data))
}

func TestSaveProfilesTo_EmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, SaveProfilesTo(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Empty(t, LoadProfilesFrom(path))
}

func TestSaveProfilesTo_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, SaveProfilesTo(path, []Record{{Name: "a"}, {Name: "b"}, {Name: "c"}}))
	require.NoError(t, SaveProfilesTo(path, []Record{{Name: "b"}}))

	assert.Equal(t, []Record{{Name: "b"}}, LoadProfilesFrom(path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoadProfilesFrom_Missing(t *testing.T) {
	got := LoadProfilesFrom(filepath.Join(t.TempDir(), "nope", "profiles.json"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadProfilesFrom_Corrupt(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":   "{not json",
		"object":    `{"name":"a"}`,
		"strings":   `["a","b"]`,
		"null":      "null",
		"truncated": `[{"name":"a"},`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profiles.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			got := LoadProfilesFrom(path)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestLoadProfilesFrom_Directory(t *testing.T) {
	assert.Empty(t, LoadProfilesFrom(t.TempDir()))
}

func TestSaveProfilesTo_UncreatableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := SaveProfilesTo(filepath.Join(blocker, "sub", "profiles.json"), []Record{{Name: "a"}})
	assert.Error(t, err)
}

func TestSelectedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app", "selected-profile")
	require.NoError(t, SaveSelectedTo(path, "work"))

	name, ok := LoadSelectedFrom(path)
	assert.True(t, ok)
	assert.Equal(t, "work", name)
}

func TestLoadSelectedFrom_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selected-profile")
	require.NoError(t, os.WriteFile(path, []byte("  work\n"), 0644))

	name, ok := LoadSelectedFrom(path)
	assert.True(t, ok)
	assert.Equal(t, "work", name)
}

func TestLoadSelectedFrom_MissingOrBlank(t *testing.T) {
	dir := t.TempDir()
	_, ok := LoadSelectedFrom(filepath.Join(dir, "selected-profile"))
	assert.False(t, ok)

	blank := filepath.Join(dir, "blank")
	require.NoError(t, os.WriteFile(blank, []byte(" \n"), 0644))
	_, ok = LoadSelectedFrom(blank)
	assert.False(t, ok)
}
