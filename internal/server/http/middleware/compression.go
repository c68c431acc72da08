package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest transparently unwraps gzip encoded request bodies so
// handlers always read plain JSON.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(strings.ToLower(encoding), "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		reader, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer body.Close()

		c.Request.Body = io.NopCloser(reader)
		c.Request.Header.Del("Content-Encoding")
		// Length of the decompressed stream is unknown.
		c.Request.ContentLength = -1
		c.Next()
	}
}
