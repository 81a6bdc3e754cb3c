package cookies

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

// Jar is a concurrency-safe cookie store. The zero value is not usable; use NewJar.
//
// Besides the cookiejar that does RFC 6265 matching, the jar keeps a record
// of every stored cookie with its attributes and the URL it was set for, so
// Add and Delete can replay everything else unchanged.
type Jar struct {
	mu      sync.RWMutex
	inner   *cookiejar.Jar
	records []record
}

type record struct {
	u      *url.URL
	cookie http.Cookie
	host   string
	domain string
	key    string
}

// NewJar creates an empty jar
func NewJar() *Jar {
	return &Jar{inner: newInner()}
}

func newInner() *cookiejar.Jar {
	// cookiejar.New only fails on a nil Options value
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// originOf reduces u to scheme://host/
func originOf(u *url.URL) *url.URL {
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return &url.URL{Scheme: scheme, Host: u.Host, Path: "/"}
}

func newRecord(u *url.URL, c *http.Cookie, now time.Time) record {
	cookie := *c
	// Max-Age becomes an absolute expiry
	if cookie.MaxAge > 0 {
		cookie.Expires = now.Add(time.Duration(cookie.MaxAge) * time.Second)
		cookie.MaxAge = 0
	}

	src := *u
	src.Fragment = ""

	host := strings.ToLower(u.Hostname())
	domain := strings.ToLower(strings.TrimPrefix(cookie.Domain, "."))
	path := cookie.Path
	if path == "" || path[0] != '/' {
		path = defaultPath(u.Path)
	}

	return record{
		u:      &src,
		cookie: cookie,
		host:   host,
		domain: domain,
		key:    strings.Join([]string{host, domain, path, cookie.Name}, ";"),
	}
}

// defaultPath is the RFC 6265 default-path of a request path
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}

func expired(c *http.Cookie, now time.Time) bool {
	return c.MaxAge < 0 || (!c.Expires.IsZero() && !c.Expires.After(now))
}

// visibleTo reports whether the recorded cookie is sent to host, ignoring path
func (r record) visibleTo(host string) bool {
	if r.domain == "" {
		return r.host == host
	}
	return host == r.domain || strings.HasSuffix(host, "."+r.domain)
}

// Cookies returns the cookies to send in a request for u
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

// SetCookies stores cookies received in a response for u
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)

	now := time.Now()
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		j.store(newRecord(u, c, now), expired(c, now))
	}
}

// store replaces the record with the same key in place, or appends it.
// An expired cookie removes its record.
func (j *Jar) store(rec record, expired bool) {
	for i := range j.records {
		if j.records[i].key != rec.key {
			continue
		}
		if expired {
			j.records = append(j.records[:i], j.records[i+1:]...)
		} else {
			j.records[i] = rec
		}
		return
	}
	if !expired {
		j.records = append(j.records, rec)
	}
}

// Header returns the "Cookie:" header value the jar would send to u
func (j *Jar) Header(u *url.URL) string {
	values := form.NewOrderedMap()
	for _, c := range j.Cookies(u) {
		values.Add(c.Name, c.Value)
	}
	return CookiesToHeader(values)
}

// SetHeader stores every pair of a "Cookie:" header value as a cookie for u
func (j *Jar) SetHeader(u *url.URL, header string) {
	values := HeaderToCookies(header)

	cookies := make([]*http.Cookie, 0, values.Len())
	values.Each(func(name, value string) {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	})
	j.SetCookies(u, cookies)
}

// Value returns the value of the named cookie sent to u, or "" when absent
func (j *Jar) Value(u *url.URL, name string) string {
	for _, c := range j.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Add sets name=value with path "/" for u's host. Every cookie of that
// name sent to the host, whatever its path, is replaced.
func (j *Jar) Add(u *url.URL, name, value string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.drop(u, name)
	origin := originOf(u)
	j.records = append(j.records, newRecord(origin, &http.Cookie{Name: name, Value: value, Path: "/"}, time.Now()))
	j.rebuild()
}

// Delete removes every cookie of that name sent to u's host
func (j *Jar) Delete(u *url.URL, name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.drop(u, name)
	j.rebuild()
}

// Clear drops every stored cookie
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner = newInner()
	j.records = nil
}

func (j *Jar) drop(u *url.URL, name string) {
	host := strings.ToLower(u.Hostname())

	kept := j.records[:0]
	for _, rec := range j.records {
		if rec.cookie.Name == name && rec.visibleTo(host) {
			continue
		}
		kept = append(kept, rec)
	}
	j.records = kept
}

// rebuild replaces the inner jar with one holding every record, replayed in
// the order first stored with its original attributes
func (j *Jar) rebuild() {
	fresh := newInner()
	now := time.Now()

	kept := j.records[:0]
	for _, rec := range j.records {
		if expired(&rec.cookie, now) {
			continue
		}
		cookie := rec.cookie
		fresh.SetCookies(rec.u, []*http.Cookie{&cookie})
		kept = append(kept, rec)
	}

	j.records = kept
	j.inner = fresh
}
