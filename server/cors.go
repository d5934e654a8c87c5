// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
)

// DevOrigins are added in dev mode: any local port and the 192.168.1.x LAN.
var DevOrigins = []string{"http://localhost:", "http://127.0.0.1:", "http://192.168.1."}

// MiddlewareCORS lets the browsers of the allowed origins
// post payloads and read the ETag of the results.
// An entry ending with ':' or '.' is a prefix, other entries are exact origins.
// "http://" is assumed when the schema is missing.
func MiddlewareCORS(origins []string, debug bool) Middleware {
	origins = withSchema(origins)
	log.Info("CORS origins: ", origins)

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			if originAllowed(origin, origins) {
				return true
			}
			log.Info("CORS: refuse origin ", origin)
			return false
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         int((24 * time.Hour).Seconds()),
		Debug:          debug,
	})

	return c.Handler
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if origin == a {
			return true
		}
		if strings.HasSuffix(a, ":") || strings.HasSuffix(a, ".") {
			if strings.HasPrefix(origin, a) {
				return true
			}
		}
	}
	return false
}

// withSchema returns a copy where the origins without schema start with "http://".
func withSchema(origins []string) []string {
	result := make([]string, len(origins))
	for i, o := range origins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			o = "http://" + o
		}
		result[i] = o
	}
	return result
}
