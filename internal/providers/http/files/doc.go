// Package files sources the payloads of multipart file parts.
//
// A location is a local path, a glob pattern (doublestar syntax, "**"
// allowed), a file:// URL or an http(s) URL. Remote locations are fetched
// through a Fetcher, normally the browser itself so session cookies apply.
// An empty location yields an empty payload, which lets a script submit a
// form with an unset file input.
package files
