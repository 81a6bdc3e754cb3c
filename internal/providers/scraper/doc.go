// Package scraper parses HTML pages and turns form elements into
// submittable argument sets.
//
// Pages are parsed once into an x/net/html tree and exposed through the
// Document and Node interfaces:
//   - XPathDocument: htmlquery XPath expressions (the default)
//   - CSSDocument: goquery/cascadia CSS selectors
//
// The charset comes from a BOM or the Content-Type header, then a <meta>
// declaration, then a confident chardet guess. When all of them fail the
// codec given with WithFallbackEncoding is used (UTF-8 by default).
//
// Form extraction walks input, select, textarea and button controls in
// document order. Controls without a name are skipped because they cannot
// be resubmitted.
//
// Example Usage:
//
//	doc, err := scraper.Parse(body, resp.Header.Get("Content-Type"))
//	if err != nil {
//		return err
//	}
//	f, found, err := scraper.Find(doc, "//form[@id='login']", nil)
//	if err != nil || !found {
//		return err
//	}
//	f.Fields.ReplaceSingleValue("user", "guest")
package scraper
