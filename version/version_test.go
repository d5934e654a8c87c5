// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package version_test

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teal-finance/a85/version"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		program, version string
		want             string
	}{
		{"", "v1.2.3", "v1.2.3"},
		{"a85", "v1.2.3", "a85-1.2.3"},
		{"a85", "1.2.3", "a85-1.2.3"},
		{"a85d", "v", "a85d-v"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, version.Version(c.program, c.version))
	}

	assert.NotEmpty(t, version.Version("a85", ""))
}

func TestSetFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	done := false

	fs := flag.NewFlagSet("a85", flag.ContinueOnError)
	version.SetFlag(fs, "", "a85-9.9.9", &out, func() { done = true })

	require.NoError(t, fs.Parse([]string{"-version"}))
	assert.True(t, done)
	assert.True(t, strings.HasPrefix(out.String(), "a85-9.9.9\n"), out.String())
}
