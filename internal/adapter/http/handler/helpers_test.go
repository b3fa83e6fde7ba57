package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "object", body: `{"Hour": 4, "Risk_Score": 0.5}`},
		{name: "empty object", body: `{}`},
		{name: "array", body: `[1, 2]`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "scalar", body: `42`, wantErr: true},
		{name: "truncated", body: `{"Hour": 4`, wantErr: true},
		{name: "trailing data", body: `{"Hour": 4} {}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := decodeObject(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, features)
		})
	}
}

func TestDecodeObject_KeepsNumberLiterals(t *testing.T) {
	features, err := decodeObject(strings.NewReader(`{"Hour": 4, "Risk_Score": 0.25}`))

	require.NoError(t, err)
	assert.Equal(t, json.Number("4"), features["Hour"])
	assert.Equal(t, json.Number("0.25"), features["Risk_Score"])
}

func TestBindTransaction(t *testing.T) {
	newRouter := func(maxBytes int64) *gin.Engine {
		router := gin.New()
		router.POST("/test", func(c *gin.Context) {
			features, ok := bindTransaction(c, maxBytes)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"fields": len(features)})
		})
		return router
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		maxBytes    int64
		wantStatus  int
		wantError   string
	}{
		{
			name:        "json object",
			contentType: "application/json",
			body:        `{"a": 1, "b": 2}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"a": 1}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "vendor json type",
			contentType: "application/vnd.api+json",
			body:        `{"a": 1}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "form content type",
			contentType: "application/x-www-form-urlencoded",
			body:        `a=1`,
			wantStatus:  http.StatusBadRequest,
			wantError:   MsgNotJSON,
		},
		{
			name:       "missing content type",
			body:       `{"a": 1}`,
			wantStatus: http.StatusBadRequest,
			wantError:  MsgNotJSON,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"a": `,
			wantStatus:  http.StatusBadRequest,
			wantError:   MsgNotJSON,
		},
		{
			name:        "array body",
			contentType: "application/json",
			body:        `[{"a": 1}]`,
			wantStatus:  http.StatusBadRequest,
			wantError:   MsgNotJSON,
		},
		{
			name:        "body over limit",
			contentType: "application/json",
			body:        `{"a": "` + strings.Repeat("x", 64) + `"}`,
			maxBytes:    32,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantError:   MsgBodyTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", "/test", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			newRouter(tt.maxBytes).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var body ErrorBody
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body.Error)
				assert.Equal(t, "error", body.Status)
			}
		})
	}
}
