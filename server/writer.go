// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"

	"github.com/mailru/easyjson/jwriter"

	"github.com/teal-finance/a85/a85"
)

// Writer renders the JSON responses of the API.
// Its value is the documentation URL added to every error.
type Writer string

// NewWriter sets the documentation URL, empty to omit it.
func NewWriter(docURL string) Writer {
	return Writer(docURL)
}

// InvalidPath replies 400 to the unknown routes.
func (gw Writer) InvalidPath(w http.ResponseWriter, r *http.Request) {
	gw.WriteErr(w, r, http.StatusBadRequest, "Path is not valid. Please refer to the documentation.")
}

// MethodNotAllowed replies 405 with the rejected method.
func (gw Writer) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	gw.WriteErr(w, r, http.StatusMethodNotAllowed, "Method is not allowed on this path.", "method", r.Method)
}

// WriteErr replies {"message":..., "path":..., "query":..., "doc":...}.
// detail is either empty or one key and its value,
// inserted right after the message.
func (gw Writer) WriteErr(w http.ResponseWriter, r *http.Request, statusCode int, message string, detail ...string) {
	if len(detail) != 0 && len(detail) != 2 {
		log.Panic("WriteErr wants one key and one value but got ", len(detail), " strings")
	}

	out := jwriter.Writer{}
	out.RawString(`{"message":`)
	out.String(message)

	if len(detail) == 2 {
		out.RawByte(',')
		out.String(detail[0])
		out.RawByte(':')
		out.String(detail[1])
	}

	if r != nil {
		out.RawString(`,"path":`)
		out.String(r.URL.Path)
		if r.URL.RawQuery != "" {
			out.RawString(`,"query":`)
			out.String(r.URL.RawQuery)
		}
	}

	if gw != "" {
		out.RawString(`,"doc":`)
		out.String(string(gw))
	}

	out.RawByte('}')
	writeJSON(w, statusCode, &out)
}

// WriteDecodeErr reports where the Ascii85 input is corrupted.
// Nothing of the partially decoded data is written.
func (gw Writer) WriteDecodeErr(w http.ResponseWriter, r *http.Request, err error) {
	body := ErrorBody{
		Message: err.Error(),
		Kind:    a85.Kind(err),
		Offset:  -1,
		Path:    "",
		Doc:     string(gw),
	}

	var corrupt *a85.CorruptInputError
	if errors.As(err, &corrupt) {
		body.Offset = corrupt.Offset
	}

	if r != nil {
		body.Path = r.URL.Path
	}

	out := jwriter.Writer{}
	body.MarshalEasyJSON(&out)
	writeJSON(w, http.StatusBadRequest, &out)
}

// WriteLines replies a JSON array of strings, as the version lines.
func (gw Writer) WriteLines(w http.ResponseWriter, lines []string) {
	out := jwriter.Writer{}
	out.RawByte('[')
	for i, line := range lines {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(line)
	}
	out.RawByte(']')
	writeJSON(w, http.StatusOK, &out)
}

func writeJSON(w http.ResponseWriter, statusCode int, out *jwriter.Writer) {
	buf, err := out.BuildBytes()
	if err != nil {
		log.Warn("Cannot build the JSON response: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf)
}
