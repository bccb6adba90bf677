package utils

import (
	"fmt"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Edge proxies normally sit on loopback or private ranges; anything
// else must be configured explicitly via SetTrustedProxies.
var defaultTrustedCIDRs = []string{
	"127.0.0.0/8",
	"::1/128",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"fc00::/7",
}

var trustedNets = mustParseCIDRs(defaultTrustedCIDRs)

func mustParseCIDRs(cidrs []string) []*net.IPNet {
	nets, err := parseCIDRs(cidrs)
	if err != nil {
		panic(err)
	}
	return nets
}

func parseCIDRs(cidrs []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy CIDR %q: %w", cidr, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// SetTrustedProxies replaces the set of networks whose forwarding
// headers are honored. Call during startup, before serving traffic.
func SetTrustedProxies(cidrs []string) error {
	nets, err := parseCIDRs(cidrs)
	if err != nil {
		return err
	}
	trustedNets = nets
	return nil
}

func trustedPeer(c *gin.Context) bool {
	ip := net.ParseIP(c.RemoteIP())
	if ip == nil {
		return false
	}
	for _, n := range trustedNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// GetRealIP resolves the client address the rate limiter keys on, so
// every call site must resolve it the same way. X-Real-IP and
// X-Forwarded-For are client-settable; they are honored only when the
// direct peer is a trusted edge proxy, otherwise a caller could rotate
// addresses past the submission cap by rewriting a header.
func GetRealIP(c *gin.Context) string {
	if trustedPeer(c) {
		// X-Real-IP is set by the edge proxy
		if ip := c.GetHeader("X-Real-IP"); ip != "" {
			return ip
		}

		// X-Forwarded-For can be a comma-separated list; the leftmost
		// entry is the original client
		if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
			ips := strings.Split(forwardedFor, ",")
			if len(ips) > 0 {
				return strings.TrimSpace(ips[0])
			}
		}
	}

	return c.RemoteIP()
}
