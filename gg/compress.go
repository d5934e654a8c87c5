// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package gg

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Compression formats, named after their file extension.
const (
	NoExt     = ""
	BrotliExt = ".br"
	Bzip2Ext  = ".bz2" // decompression only
	GZipExt   = ".gz"
	S2Ext     = ".s2"
	SnappyExt = ".sz" // framed Snappy stream
	ZStdExt   = ".zst"
)

// ErrUnsupportedFormat is wrapped by Compress and Decompress for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported compression format")

// NormalizeExt accepts "gz", ".gz" or "GZ" and returns ".gz".
// "none" and the empty string mean no compression.
func NormalizeExt(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "", "none", ".":
		return NoExt
	}
	if format[0] != '.' {
		format = "." + format
	}
	return format
}

// Compress compresses buf using the format identified by its file extension.
// The level is brought back into the range of the format.
// NoExt returns buf unchanged.
func Compress(buf []byte, ext string, level int) ([]byte, error) {
	ext = NormalizeExt(ext)
	if ext == NoExt {
		return buf, nil
	}

	var out bytes.Buffer
	out.Grow(len(buf)/2 + 64)

	zw, err := newWriter(&out, ext, level)
	if err != nil {
		return nil, err
	}

	_, err = zw.Write(buf)
	if e := zw.Close(); err == nil {
		err = e
	}
	if err != nil {
		return nil, fmt.Errorf("%s compression: %w", ext, err)
	}

	return out.Bytes(), nil
}

// Decompress reverses Compress.
// maxBytes > 0 bounds the size of the decompressed output.
func Decompress(buf []byte, ext string, maxBytes int) ([]byte, error) {
	ext = NormalizeExt(ext)
	if ext == NoExt {
		return buf, nil
	}

	zr, err := newReader(bytes.NewReader(buf), ext)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var r io.Reader = zr
	if maxBytes > 0 {
		r = io.LimitReader(zr, int64(maxBytes)+1)
	}

	out, err := io.ReadAll(r)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%s decompression: %w", ext, err)
	case maxBytes > 0 && len(out) > maxBytes:
		return nil, fmt.Errorf("%s decompression exceeds the limit of %s", ext, ConvertSize(maxBytes))
	}

	return out, nil
}

func newWriter(w io.Writer, ext string, level int) (io.WriteCloser, error) {
	switch ext {
	case BrotliExt:
		return brotli.NewWriterLevel(w, clamp(ext, level, brotli.BestSpeed, brotli.BestCompression)), nil
	case GZipExt:
		return gzip.NewWriterLevel(w, clamp(ext, level, gzip.StatelessCompression, gzip.BestCompression))
	case S2Ext:
		return s2.NewWriter(w, s2Options(level)...), nil
	case SnappyExt:
		return snappy.NewBufferedWriter(w), nil
	case ZStdExt:
		l := clamp(ext, level, int(zstd.SpeedFastest), int(zstd.SpeedBestCompression))
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevel(l)))
	}

	return nil, fmt.Errorf("%w: cannot compress %q, want one of %s %s %s %s %s",
		ErrUnsupportedFormat, ext, BrotliExt, GZipExt, S2Ext, SnappyExt, ZStdExt)
}

func newReader(r io.Reader, ext string) (io.ReadCloser, error) {
	switch ext {
	case BrotliExt:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Bzip2Ext:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case GZipExt:
		return gzip.NewReader(r)
	case S2Ext:
		return io.NopCloser(s2.NewReader(r)), nil
	case SnappyExt:
		return io.NopCloser(snappy.NewReader(r)), nil
	case ZStdExt:
		d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return d.IOReadCloser(), nil
	}

	return nil, fmt.Errorf("%w: cannot decompress %q, want one of %s %s %s %s %s %s",
		ErrUnsupportedFormat, ext, BrotliExt, Bzip2Ext, GZipExt, S2Ext, SnappyExt, ZStdExt)
}

func clamp(ext string, level, lowest, highest int) int {
	switch {
	case level < lowest:
		log.Debugf("%s level %d raised to %d", ext, level, lowest)
		return lowest
	case level > highest:
		log.Debugf("%s level %d lowered to %d", ext, level, highest)
		return highest
	}
	return level
}

// s2Options maps the levels 1-2 to the default speed,
// 3-5 to the better compression and 6+ to the best one.
func s2Options(level int) []s2.WriterOption {
	switch {
	case level >= 6:
		return []s2.WriterOption{s2.WriterBestCompression()}
	case level >= 3:
		return []s2.WriterOption{s2.WriterBetterCompression()}
	}
	return nil
}
