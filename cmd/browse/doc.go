// Package main is the browse command: it runs a scripted browsing session.
//
// A script is a YAML or TOML file holding an ordered list of steps that
// share one browser, so cookies and the last loaded page carry from one
// step to the next:
//
//	steps:
//	  - action: navigate
//	    url: http://shop.example.com/account/login
//	  - action: submit
//	    form: //form[@id='login']
//	    escape: true
//	    separator: "&"
//	    args:
//	      - {name: user, value: guest}
//	      - {name: pass, value: secret}
//	    select:
//	      - {name: country, value: United States}
//	  - action: extract
//	    xpath: //h1
//
// Actions:
//   - navigate: GET url with optional query fields
//   - post: POST args (url-encoded or multipart), files, or a raw body
//   - submit: fill a form of the last page and send it to its action
//   - cookie: add, delete (delete: true) or copy (match: url) cookies
//   - download: save url to dest
//   - extract: print the text or an attribute of XPath matches
//
// Configuration:
//   - Environment variables (BROWSING_*, LOG_LEVEL, LOG_DEV)
//   - CLI flags for the script path, development logging and a summary
//
// Usage:
//
//	./browse -script login.yaml
//
//	# Development mode (console logs, debug level) with a request summary
//	./browse -script login.toml -dev -metrics
package main
