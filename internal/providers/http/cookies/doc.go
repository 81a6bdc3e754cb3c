// Package cookies holds session cookie state for the scripted browser.
//
// Jar is the cookie store: it wraps net/http/cookiejar (with the
// golang.org/x/net/publicsuffix list) so domain, path and expiry matching
// follow RFC 6265, and implements http.CookieJar so it can be handed to the
// transport directly. A Jar may be shared by several browsers to carry a
// login from one client to another; it is safe for concurrent use.
//
// Jar.Add and Jar.Delete change one name on one host. The jar keeps every
// stored cookie with its attributes and replays the rest into a fresh
// cookiejar, so path-scoped, secure and domain cookies survive unchanged.
//
// The header helpers convert between a raw "Cookie:" header string and an
// ordered name -> value mapping.
package cookies
