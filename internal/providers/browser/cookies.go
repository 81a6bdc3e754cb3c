package browser

import "net/http"

// AddCookie sets name=value among the cookies of rawURL's host
func (b *Browser) AddCookie(rawURL, name, value string) error {
	u, err := parseAddress(rawURL)
	if err != nil {
		return err
	}
	b.jar.Add(u, name, value)
	return nil
}

// DeleteCookie removes the named cookie from rawURL's host
func (b *Browser) DeleteCookie(rawURL, name string) error {
	u, err := parseAddress(rawURL)
	if err != nil {
		return err
	}
	b.jar.Delete(u, name)
	return nil
}

// GetCookieValue returns the value of the named cookie sent to rawURL, or
// "" when there is none
func (b *Browser) GetCookieValue(rawURL, name string) (string, error) {
	u, err := parseAddress(rawURL)
	if err != nil {
		return "", err
	}
	return b.jar.Value(u, name), nil
}

// CookieHeader returns the Cookie header the browser would send to rawURL
func (b *Browser) CookieHeader(rawURL string) (string, error) {
	u, err := parseAddress(rawURL)
	if err != nil {
		return "", err
	}
	return b.jar.Header(u), nil
}

// Cookies returns the cookies the browser would send to rawURL
func (b *Browser) Cookies(rawURL string) ([]*http.Cookie, error) {
	u, err := parseAddress(rawURL)
	if err != nil {
		return nil, err
	}
	return b.jar.Cookies(u), nil
}

// MatchCookies copies the cookies sent to sourceURL onto destURL, handing a
// session from one host to a related one
func (b *Browser) MatchCookies(sourceURL, destURL string) error {
	src, err := parseAddress(sourceURL)
	if err != nil {
		return err
	}
	dst, err := parseAddress(destURL)
	if err != nil {
		return err
	}
	b.jar.SetHeader(dst, b.jar.Header(src))
	return nil
}
