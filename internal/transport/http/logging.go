package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	maxPreviewKeys     = 8
	redacted           = "redacted"
)

// Body keys whose values never reach the logs.
var secretKeyParts = []string{"password", "token", "secret"}

func registerLogging(e *echo.Echo, log logrus.FieldLogger) {
	e.Use(middleware.RequestID())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			entry := log.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set(contextLoggerKey, entry)
			return next(c)
		}
	})

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
				"actor":      actorOf(c),
			}
			if body := c.Get(requestBodyLogKey); body != nil {
				fields["request_body"] = body
			}
			if body := c.Get(responseBodyLogKey); body != nil {
				fields["response_body"] = body
			}

			entry := log.WithFields(fields)
			switch {
			case v.Error != nil:
				entry.WithError(v.Error).Error("request failed")
			case v.Status >= 500:
				entry.Error("request completed")
			case v.Status >= 400:
				entry.Warn("request completed")
			default:
				entry.Info("request completed")
			}
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

func actorOf(c echo.Context) string {
	if admin, ok := CurrentAdmin(c); ok {
		return "admin:" + admin.ID.String()
	}
	if user, ok := CurrentUser(c); ok {
		return "user:" + user.ID.String()
	}
	return "anonymous"
}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	for _, part := range secretKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

// sanitizeBody turns a raw body into something safe to log: secrets are
// redacted, binary content is replaced by a marker and large payloads are
// reduced to a preview.
func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(contentType))

	switch {
	case strings.HasPrefix(lowered, "multipart/form-data"):
		return sanitizeMultipart(body, contentType)
	case strings.HasPrefix(lowered, "application/json") || json.Valid(body):
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return limitJSONSize(sanitizeJSON(data, false))
		}
	case strings.HasPrefix(lowered, "application/x-www-form-urlencoded"):
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			fields := make(map[string]any, len(values))
			for key, vals := range values {
				for _, v := range vals {
					addFormField(fields, key, sanitizeString(v, isSecretKey(key)))
				}
			}
			return limitJSONSize(fields)
		}
	}

	if containsBinaryBytes(body) {
		return "binary"
	}
	text := string(body)
	if isSecretKey(text) {
		return redacted
	}
	return clampString(text)
}

func sanitizeJSON(value any, secret bool) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = sanitizeJSON(val, secret || isSecretKey(key))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeJSON(item, secret)
		}
		return out
	case string:
		return sanitizeString(v, secret)
	default:
		if secret {
			return redacted
		}
		return v
	}
}

func sanitizeString(value string, secret bool) string {
	if secret {
		return redacted
	}
	if containsBinaryBytes([]byte(value)) {
		return "binary"
	}
	return clampString(value)
}

func sanitizeMultipart(body []byte, contentType string) any {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return "binary"
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	fields := make(map[string]any)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "binary"
		}
		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		var value any = "binary"
		if part.FileName() == "" {
			if data, err := io.ReadAll(part); err == nil {
				value = sanitizeString(string(data), isSecretKey(name))
			}
		}
		_ = part.Close()
		addFormField(fields, name, value)
	}
	if len(fields) == 0 {
		return "binary"
	}
	return limitJSONSize(fields)
}

// limitJSONSize keeps small values as they are and replaces large ones with a
// key listing or an item count.
func limitJSONSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	out := map[string]any{"_truncated": true, "_bytes": len(buf)}
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > maxPreviewKeys {
			out["_omitted_fields"] = len(keys) - maxPreviewKeys
			keys = keys[:maxPreviewKeys]
		}
		out["_fields"] = keys
	case []any:
		out["_total_items"] = len(v)
	}
	return out
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}

func addFormField(fields map[string]any, key string, value any) {
	if existing, ok := fields[key]; ok {
		if items, isList := existing.([]any); isList {
			fields[key] = append(items, value)
		} else {
			fields[key] = []any{existing, value}
		}
		return
	}
	fields[key] = value
}
