package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
)

// Messages for rejected request bodies
const (
	MsgNotJSON      = "Request must be JSON"
	MsgBodyTooLarge = "Request body too large"
)

// DefaultMaxBodyBytes caps a request body when no limit is configured
const DefaultMaxBodyBytes int64 = 16 << 20

// isJSONContentType accepts application/json and any +json media type
func isJSONContentType(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == gin.MIMEJSON || strings.HasSuffix(ct, "+json")
}

// bindTransaction decodes the request body into a feature map. It writes the
// error response itself and reports false when the body is rejected.
func bindTransaction(c *gin.Context, maxBytes int64) (entity.TransactionFeatures, bool) {
	if !isJSONContentType(c) {
		HandleInvalidRequest(c, MsgNotJSON)
		return nil, false
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	features, err := decodeObject(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return nil, false
		}
		HandleInvalidRequest(c, MsgNotJSON)
		return nil, false
	}

	return features, true
}

// decodeObject reads exactly one JSON object. Numbers stay json.Number so
// integers keep their literal form.
func decodeObject(r io.Reader) (entity.TransactionFeatures, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var features map[string]any
	if err := dec.Decode(&features); err != nil {
		return nil, err
	}
	if features == nil {
		return nil, errors.New("body is not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return nil, err
	}

	return entity.TransactionFeatures(features), nil
}
