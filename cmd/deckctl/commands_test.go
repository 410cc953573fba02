// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/platform/sec"
)

const validDeck = `
title: Service Lane
cover: /service.png
spreads:
  - left_page:
      background: lane.png
    right_page:
      background: lane.png
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

/*
TestValidate_ReportsEachFile verifies that validate checks every argument.

1. One valid and one invalid file are written.
2. The valid one is listed on stdout, the invalid one on stderr.
3. The command fails with a count of invalid files.
*/
func TestValidate_ReportsEachFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte(validDeck), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("title: Empty\n"), 0o600))

	stdout, stderr, err := execute(t, "", "validate", good, bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, stdout, `"service-lane", 1 spreads`)
	assert.Contains(t, stderr, "bad.yaml")
}

func TestValidate_RequiresArgs(t *testing.T) {
	_, _, err := execute(t, "", "validate")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	stdout, _, err := execute(t, "correct horse\n", "hash-password")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", strings.TrimSpace(stdout)))
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, _, err := execute(t, "\n", "hash-password")
	assert.ErrorContains(t, err, "required")
}

func TestHashPassword_RejectsShort(t *testing.T) {
	_, _, err := execute(t, "s3cret\n", "hash-password")
	assert.ErrorContains(t, err, "Minimum 10 characters")
}

func TestImport_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, _, err := execute(t, "", "import", "--dir", t.TempDir())
	assert.ErrorContains(t, err, "DATABASE_URL")
}
