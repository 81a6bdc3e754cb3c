// Package form models the named values a scripted browser submits.
//
// An Arg is one form control or request parameter: a name, its value as
// encoded bytes, an optional part content type, extra Content-Disposition
// attributes (such as "filename") and, for <select> controls, the list of
// selectable options. Args is an ordered collection of Arg values.
//
// Ordering:
//   - Insertion order is preserved and significant: it decides the order of
//     url-encoded pairs and multipart parts on the wire.
//   - Duplicate names are allowed; Lookup returns the first match.
//
// Encoding:
//   - Values are stored as bytes in the Arg's text codec
//     (golang.org/x/text/encoding). The default codec is windows-1251.
//   - Runes the codec cannot represent are written as HTML numeric
//     references, the same way browsers submit such forms.
//
// Example Usage:
//
//	args := form.NewArgs(nil)
//	args.Add("login", "guest")
//	args.ReplaceSingleValue("remember", "1")
//	if country, ok := args.Lookup("country"); ok {
//		country.SelectOption("United States")
//	}
package form
