// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/pkg/errors"
)

// LoggerMiddleware logs one structured line per request, correlated by
// an X-Request-Id that is generated when the caller does not send one.
func LoggerMiddleware(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Health probes would drown out real traffic
		if path == "/health" {
			c.Next()
			return
		}

		requestID := ensureRequestID(c)

		c.Next()

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.Int("bytes_out", c.Writer.Size()),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			attrs = append(attrs, slog.String("forwarded_for", xff))
		}

		if len(c.Errors) == 0 {
			l.Info("Request", flattenAttrs(attrs)...)
			return
		}

		for _, err := range c.Errors {
			attrs = append(attrs, errorAttrs(err.Err)...)
		}

		// 5xx is our fault, 4xx is the caller's
		switch {
		case c.Writer.Status() >= 500:
			l.Error("Server Error", flattenAttrs(attrs)...)
		case c.Writer.Status() >= 400:
			l.Warn("Client Error", flattenAttrs(attrs)...)
		}
	}
}

// ensureRequestID propagates the caller's X-Request-Id or mints one,
// storing it on the context for error correlation.
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-Id")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-Id", requestID)
	}
	c.Set("request_id", requestID)
	return requestID
}

// errorAttrs expands a typed error into its code, domain, message and
// metadata fields; anything else logs as a plain error string.
func errorAttrs(err error) []slog.Attr {
	me, ok := err.(*errors.MmaclError)
	if !ok {
		return []slog.Attr{slog.String("error", err.Error())}
	}

	attrs := []slog.Attr{
		slog.Int("error_code", int(me.Code)),
		slog.String("error_domain", string(me.Domain)),
		slog.String("error_message", me.Message),
		slog.String("error_details", me.Details),
	}
	for k, v := range me.Metadata {
		attrs = append(attrs, slog.String("error_metadata_"+k, v))
	}
	return attrs
}

// flattenAttrs converts slog attrs into the key-value pairs the logger
// takes variadically.
func flattenAttrs(attrs []slog.Attr) []interface{} {
	args := make([]interface{}, len(attrs)*2)
	for i, attr := range attrs {
		args[i*2] = attr.Key
		args[i*2+1] = attr.Value.Any()
	}
	return args
}
