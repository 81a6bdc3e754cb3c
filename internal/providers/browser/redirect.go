package browser

import (
	"fmt"
	"net/http"
	"strings"
)

// RedirectPolicy decides how relative Location headers are resolved
type RedirectPolicy int

const (
	// RedirectAllPathTrimmed resolves relative targets against the directory
	// of the request path
	RedirectAllPathTrimmed RedirectPolicy = iota
	// RedirectOnlyHost resolves relative targets against the host alone
	RedirectOnlyHost
	// RedirectNone never follows redirects
	RedirectNone
)

func (p RedirectPolicy) String() string {
	switch p {
	case RedirectAllPathTrimmed:
		return "all"
	case RedirectOnlyHost:
		return "host"
	case RedirectNone:
		return "none"
	default:
		return fmt.Sprintf("RedirectPolicy(%d)", int(p))
	}
}

// ParseRedirectPolicy accepts "all", "host" or "none"
func ParseRedirectPolicy(s string) (RedirectPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return RedirectAllPathTrimmed, nil
	case "host":
		return RedirectOnlyHost, nil
	case "none":
		return RedirectNone, nil
	default:
		return 0, fmt.Errorf("unknown redirect policy %q", s)
	}
}

// IsRedirect reports whether status carries a Location to follow
func IsRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect:
		return true
	}
	return false
}

// ResolveRedirect turns a Location header into the next absolute URL.
// host is the Host the request was sent with and requestPath its path.
// Targets starting with "/" are rooted at the host under both policies;
// other relative targets are joined to the request directory
// (RedirectAllPathTrimmed) or the host (RedirectOnlyHost). A target that
// still has no scheme is given "http://". RedirectNone and an empty
// location yield "".
func ResolveRedirect(policy RedirectPolicy, host, requestPath, location string) string {
	location = strings.TrimSpace(location)
	if policy == RedirectNone || location == "" {
		return ""
	}

	if hasHTTPScheme(location) {
		return location
	}

	if strings.HasPrefix(location, "//") {
		return "http:" + location
	}

	base := host
	if policy == RedirectAllPathTrimmed && !strings.HasPrefix(location, "/") {
		dir := requestPath
		if i := strings.LastIndex(dir, "/"); i >= 0 {
			dir = dir[:i]
		} else {
			dir = ""
		}
		base = host + dir
	}

	if !strings.HasPrefix(location, "/") && !strings.HasSuffix(base, "/") {
		location = "/" + location
	}
	target := base + location

	if !hasHTTPScheme(target) {
		target = "http://" + target
	}
	return target
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
