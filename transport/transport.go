package transport

import (
	"context"
	"net"
	"strconv"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// Server is a long running listener managed by app.Application.
type Server interface {
	// Run blocks until the server stops. A graceful stop returns
	// http.ErrServerClosed or nil.
	Run() error
	Shutdown(context.Context) error
}

// ValidateAddress reports whether addr is a host:port pair with a usable
// port. The host may be empty, an IP literal or a hostname.
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}
	if host != "" && !validHost(host) {
		return false
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return p >= MinPort && p <= MaxPort
}

func validHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	if len(host) > 253 {
		return false
	}

	for label := range strings.SplitSeq(host, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
	}
	return true
}
