package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TrustedIPs rejects callers whose address is not in the allow list. Entries
// may be single addresses or CIDR ranges. An empty list allows everyone,
// which keeps local development working without gateway configuration.
//
// The client address is taken from the leftmost X-Forwarded-For entry when
// present, falling back to the socket peer.
func TrustedIPs(allowed []string, logger *slog.Logger) gin.HandlerFunc {
	var nets []*net.IPNet
	var addrs []net.IP
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, network)
			} else {
				logger.Warn("ignoring malformed trusted network", slog.String("entry", entry))
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			addrs = append(addrs, ip)
		} else {
			logger.Warn("ignoring malformed trusted address", slog.String("entry", entry))
		}
	}

	allowAll := len(nets) == 0 && len(addrs) == 0

	return func(c *gin.Context) {
		if allowAll {
			c.Next()
			return
		}

		ip := clientIP(c)
		if ip == nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		for _, a := range addrs {
			if a.Equal(ip) {
				c.Next()
				return
			}
		}
		for _, n := range nets {
			if n.Contains(ip) {
				c.Next()
				return
			}
		}

		logger.Warn("untrusted webhook source rejected", slog.String("ip", ip.String()))
		c.AbortWithStatus(http.StatusForbidden)
	}
}

func clientIP(c *gin.Context) net.IP {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return net.ParseIP(c.Request.RemoteAddr)
	}
	return net.ParseIP(host)
}
