package scraper

import (
	"strings"

	"golang.org/x/text/encoding"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

// controlTags are the elements resubmitted with a form
var controlTags = []string{"input", "select", "textarea", "button"}

// Form is the submittable state of one form element
type Form struct {
	Action  string
	Method  string
	Enctype string
	Fields  *form.Args
}

// Multipart reports whether the form declares multipart/form-data
func (f Form) Multipart() bool {
	return strings.EqualFold(strings.TrimSpace(f.Enctype), "multipart/form-data")
}

// ExtractFields collects the named controls under node, in document order.
// Values are encoded with enc (nil means form.DefaultEncoding). Only select
// controls carry options, keyed by the option's trimmed text.
func ExtractFields(node Node, enc encoding.Encoding) Form {
	action, _ := node.Attr("action")
	method, _ := node.Attr("method")
	enctype, _ := node.Attr("enctype")

	if method == "" {
		method = "GET"
	}
	if enctype == "" {
		enctype = "application/x-www-form-urlencoded"
	}

	fields := form.NewArgs(enc)

	for _, control := range node.Descendants(controlTags...) {
		name, _ := control.Attr("name")
		if name == "" {
			continue
		}

		value, _ := control.Attr("value")

		var opts []form.ArgOption
		if control.Tag() == "select" {
			opts = append(opts, form.WithOptions(selectOptions(control)))
		}

		fields.Add(name, value, opts...)
	}

	return Form{
		Action:  action,
		Method:  strings.ToUpper(method),
		Enctype: enctype,
		Fields:  fields,
	}
}

func selectOptions(control Node) *form.OrderedMap {
	options := form.NewOrderedMap()
	for _, option := range control.Descendants("option") {
		value, _ := option.Attr("value")
		options.Add(strings.TrimSpace(option.Text()), value)
	}
	return options
}

// Find locates the first node matching query and extracts its fields.
// A query without matches reports false; only a malformed query is an error.
func Find(doc Document, query string, enc encoding.Encoding) (Form, bool, error) {
	node, found, err := doc.QueryOne(query)
	if err != nil || !found {
		return Form{}, false, err
	}
	return ExtractFields(node, enc), true, nil
}

// FindAll extracts every form element of the document
func FindAll(doc Document, enc encoding.Encoding) []Form {
	nodes := doc.Root().Descendants("form")

	forms := make([]Form, 0, len(nodes))
	for _, node := range nodes {
		forms = append(forms, ExtractFields(node, enc))
	}
	return forms
}
