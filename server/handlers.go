// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/teal-finance/a85/a85"
	"github.com/teal-finance/a85/gg"
	"github.com/teal-finance/a85/version"
)

const defaultLevel = 5

// params are the query parameters shared by /encode and /decode.
type params struct {
	enc      *a85.Encoding
	compress string
	level    int
}

func (s *Server) encode(w http.ResponseWriter, r *http.Request) {
	p, ok := s.params(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	bin, err := gg.Compress(body, p.compress, p.level)
	if err != nil {
		s.metrics.countFailure("encode", "", len(body))
		s.Writer.WriteErr(w, r, http.StatusBadRequest, "Cannot compress the payload", "error", err.Error())
		return
	}

	s.metrics.countOK("encode", len(body))
	writeResult(w, "text/plain; charset=us-ascii", p.enc.Encode(bin))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) {
	p, ok := s.params(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	bin, err := p.enc.Decode(body)
	if err != nil {
		kind := a85.Kind(err)
		s.metrics.countFailure("decode", kind, len(body))
		log.Warnf("Rejected %s %s: %v", kind, gg.Obfuscate(body), err)
		s.Writer.WriteDecodeErr(w, r, err)
		return
	}

	bin, err = gg.Decompress(bin, p.compress, s.maxBytes)
	if err != nil {
		s.metrics.countFailure("decode", "", len(body))
		s.Writer.WriteErr(w, r, http.StatusBadRequest, "Cannot decompress the decoded payload", "error", err.Error())
		return
	}

	s.metrics.countOK("decode", len(body))
	writeResult(w, "application/octet-stream", bin)
}

func (s *Server) serveVersion(w http.ResponseWriter, _ *http.Request) {
	s.Writer.WriteLines(w, version.Info(s.version))
}

// params parses ?btoa=1&compress=zst&level=9.
func (s *Server) params(w http.ResponseWriter, r *http.Request) (params, bool) {
	q := r.URL.Query()

	p := params{
		enc:      a85.StdEncoding,
		compress: gg.NormalizeExt(q.Get("compress")),
		level:    defaultLevel,
	}

	if str := q.Get("btoa"); str != "" {
		btoa, err := strconv.ParseBool(str)
		if err != nil {
			s.Writer.WriteErr(w, r, http.StatusBadRequest, "Query parameter btoa must be a boolean", "btoa", str)
			return p, false
		}
		if btoa {
			p.enc = a85.BtoaEncoding
		}
	}

	if str := q.Get("level"); str != "" {
		level, err := strconv.Atoi(str)
		if err != nil {
			s.Writer.WriteErr(w, r, http.StatusBadRequest, "Query parameter level must be an integer", "level", str)
			return p, false
		}
		p.level = level
	}

	return p, true
}

// readBody reads the whole request body, up to maxBytes.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.maxBytes)))
	if err == nil {
		return body, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.Writer.WriteErr(w, r, http.StatusRequestEntityTooLarge,
			"Request body too large", "max", gg.ConvertSize(s.maxBytes))
		return nil, false
	}

	s.Writer.WriteErr(w, r, http.StatusBadRequest, "Cannot read the request body", "error", err.Error())
	return nil, false
}

// writeResult sets the ETag from the HighwayHash of the response body.
func writeResult(w http.ResponseWriter, contentType string, buf []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.Header().Set("ETag", `"`+gg.Fingerprint(buf)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf)
}
