// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command in-process and returns its exit code, stdout and stderr.
func execute(t *testing.T, stdin []byte, args ...string) (int, []byte, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, bytes.NewReader(stdin), &stdout, &stderr)
	return code, stdout.Bytes(), stderr.String()
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	code, out, _ := execute(t, []byte("Hello, World!"))
	require.Equal(t, exitOK, code)
	assert.Equal(t, "87cURD_*#4DfTZ)+T", string(out))

	code, out, _ = execute(t, []byte("Hello, World!"), "-e")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "87cURD_*#4DfTZ)+T", string(out))

	code, out, _ = execute(t, []byte("87cURD_*#4DfTZ)+T"), "-d")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Hello, World!", string(out))
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	cases := []struct {
		name    string
		input   []byte
		wantLen int
	}{
		{"empty", []byte{}, 0},
		{"20 zero bytes", make([]byte, 20), 25},
		{"256 byte values", all, 320},
		{"1 byte", []byte{0xca}, 2},
		{"2 bytes", []byte{0xca, 0xfe}, 3},
		{"3 bytes", []byte{0xca, 0xfe, 0xba}, 4},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			code, txt, stderr := execute(t, c.input, "-e")
			require.Equal(t, exitOK, code, stderr)
			assert.Len(t, txt, c.wantLen)

			code, bin, stderr := execute(t, txt, "-d")
			require.Equal(t, exitOK, code, stderr)
			assert.Equal(t, c.input, append([]byte{}, bin...))
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		kind  string
	}{
		{"high byte", "\x80", "invalid-character"},
		{"stray sixth character", "87cURD", "invalid-length"},
		{"whitespace", "87cUR D_*#4", "invalid-character"},
		{"overflow", `s8W-"`, "group-overflow"},
		{"z without -z", "z", "invalid-character"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			code, out, stderr := execute(t, []byte(c.input), "-d")
			assert.Equal(t, exitFailure, code)
			assert.Empty(t, out, "no partial output")
			assert.Contains(t, stderr, c.kind)
			assert.Equal(t, 1, strings.Count(stderr, "\n"), "one diagnostic line")
		})
	}
}

func TestBtoa(t *testing.T) {
	t.Parallel()

	input := []byte{0, 0, 0, 0, 1}

	code, out, _ := execute(t, input, "-z")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "z!<", string(out))

	code, out, _ = execute(t, []byte("z!<"), "-d", "-z")
	require.Equal(t, exitOK, code)
	assert.Equal(t, input, out)
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{"both modes", []string{"-e", "-d"}},
		{"positional argument", []string{"file.txt"}},
		{"unknown flag", []string{"-x"}},
		{"null limit", []string{"-d", "-c", "gz", "-max", "0"}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			code, out, stderr := execute(t, []byte("abc"), c.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, out)
			assert.Contains(t, stderr, "Usage")
		})
	}
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	code, out, _ := execute(t, []byte("ignored"), "-version")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(string(out), "a85-"), string(out))
}

func TestCompression(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte(`{"symbol":"BTC","price":20000}`), 50)

	for _, format := range []string{"br", "gz", "s2", "sz", "zst"} {
		format := format
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			code, txt, stderr := execute(t, payload, "-c", format, "-level", "3")
			require.Equal(t, exitOK, code, stderr)
			assert.Less(t, len(txt), len(payload))

			code, bin, stderr := execute(t, txt, "-d", "-c", format)
			require.Equal(t, exitOK, code, stderr)
			assert.Equal(t, payload, bin)
		})
	}
}

func TestCompressionUnsupported(t *testing.T) {
	t.Parallel()

	code, out, stderr := execute(t, []byte("abc"), "-c", "bz2")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "unsupported compression format")
}

// The environment never selects a compression format: only -c does.
func TestEnvDoesNotCompress(t *testing.T) {
	t.Setenv("A85_COMPRESS", "gz")

	code, out, stderr := execute(t, []byte("Hello, World!"), "-e")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "87cURD_*#4DfTZ)+T", string(out))

	code, out, stderr = execute(t, []byte("87cURD_*#4DfTZ)+T"), "-d")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Hello, World!", string(out))
}

func TestDecompressionLimit(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 10000)

	code, txt, stderr := execute(t, payload, "-c", "zst")
	require.Equal(t, exitOK, code, stderr)

	code, out, stderr := execute(t, txt, "-d", "-c", "zst", "-max", "1000")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "exceeds the limit")

	code, out, stderr = execute(t, txt, "-d", "-c", "zst", "-max", "10000")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, payload, out)
}
