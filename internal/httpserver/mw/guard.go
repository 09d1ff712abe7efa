package mw

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// Guard restricts a route to allowed client IPs/CIDRs and allowed Host
// headers. An empty list disables that check. trustProxy resolves the client
// IP from proxy headers (CF-Connecting-IP, X-Forwarded-For, X-Real-IP).
func Guard(hosts, cidrs []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	prefixes := parsePrefixes(cidrs, log)
	if len(prefixes) == 0 && len(hosts) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(prefixes) > 0 {
				ip := clientIP(r, trustProxy)
				if !ipAllowed(ip, prefixes) {
					log.Debug("guard: client ip rejected", logger.String("ip", ip))
					w.WriteHeader(http.StatusForbidden)
					return
				}
			}
			if len(hosts) > 0 && !hostAllowed(r.Host, hosts) {
				log.Debug("guard: host rejected", logger.String("host", r.Host))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parsePrefixes accepts bare IPs and CIDRs; invalid items are logged and
// skipped.
func parsePrefixes(list []string, log logger.Logger) []netip.Prefix {
	var out []netip.Prefix
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			out = append(out, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		log.Warn("guard: ignoring invalid ip/cidr", logger.String("value", s))
	}
	return out
}

func ipAllowed(ip string, prefixes []netip.Prefix) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// hostAllowed matches exact hosts and "*.example.com" wildcards.
func hostAllowed(host string, patterns []string) bool {
	for _, pattern := range patterns {
		if host == pattern {
			return true
		}
		if strings.HasPrefix(pattern, "*.") && strings.HasSuffix(host, pattern[1:]) {
			return true
		}
	}
	return false
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"} {
			v := r.Header.Get(h)
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = v[:i]
			}
			if v = hostOnly(strings.TrimSpace(v)); v != "" {
				return v
			}
		}
	}
	return hostOnly(r.RemoteAddr)
}

func hostOnly(s string) string {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().String()
	}
	return strings.Trim(s, "[]")
}
