/*
Package browser drives scripted HTTP browsing sessions.

# Overview

A Browser holds a cookie jar, a header bag and a text codec, and performs
requests the way a site expects a desktop browser to: cookies are attached
and recorded on every hop, redirects are followed by hand, and form data is
framed as url-encoded or multipart bodies byte for byte.

# Redirects

Automatic redirects are disabled in the transport. Send performs exactly
one hop and returns a Result whose Redirect field names the next hop, if
any. Navigate and the Post family follow Redirect with GET until the chain
ends or DefaultMaxRedirects hops have been taken, in which case
ErrTooManyRedirects is returned.

The RedirectPolicy decides how relative Location headers are resolved:

  - RedirectAllPathTrimmed: against the directory of the request path
  - RedirectOnlyHost: against the host alone
  - RedirectNone: never follow

# Cookies

With the host override enabled (the default), response cookies are stored
under the host the request was sent to, whatever domain the server named.
A jar can be shared between browsers with WithJar.

# Errors

  - ErrInvalidAddress: the URL is not an absolute http(s) address
  - ErrTransport: the request could not be completed
  - *ProtocolError: the server answered with status 400 or above
  - ErrTooManyRedirects: the redirect chain did not end

Example Usage:

	b, err := browser.New(browser.WithRedirectPolicy(browser.RedirectOnlyHost))
	if err != nil {
		return err
	}

	doc, err := b.NavigateDocument(ctx, "http://shop.example.com/login", nil)
	if err != nil {
		return err
	}

	f, found, err := b.ExtractFieldsByQuery(doc, "//form[@id='login']")
	if err != nil || !found {
		return err
	}
	f.Fields.ReplaceSingleValue("user", "guest")

	page, err := b.PostArgs(ctx, "http://shop.example.com/login", f.Fields, browser.URLEncoded("&", true))
*/
package browser
