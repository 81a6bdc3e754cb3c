package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/browsing/internal/logging"
	"github.com/GriffinCanCode/browsing/internal/providers/browser"
	"github.com/GriffinCanCode/browsing/internal/providers/http/files"
	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
	"github.com/GriffinCanCode/browsing/internal/providers/scraper"
)

// Step actions
const (
	ActionNavigate = "navigate"
	ActionPost     = "post"
	ActionSubmit   = "submit"
	ActionCookie   = "cookie"
	ActionDownload = "download"
	ActionExtract  = "extract"
)

// Script is an ordered list of browsing steps
type Script struct {
	Steps []Step `yaml:"steps" toml:"steps"`
}

// Field is one name/value pair. Lists of fields keep their order, which
// matters for request bodies.
type Field struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value" toml:"value"`
}

// Step is a single scripted action
type Step struct {
	Action string `yaml:"action" toml:"action"`
	URL    string `yaml:"url" toml:"url"`

	// navigate
	Query []Field `yaml:"query" toml:"query"`

	// post and submit
	Body        string  `yaml:"body" toml:"body"`
	Args        []Field `yaml:"args" toml:"args"`
	Form        string  `yaml:"form" toml:"form"`
	Select      []Field `yaml:"select" toml:"select"`
	Files       []Field `yaml:"files" toml:"files"`
	ContentType string  `yaml:"content_type" toml:"content_type"` // raw body type, or type of every file part
	Multipart   bool    `yaml:"multipart" toml:"multipart"`
	Separator   string  `yaml:"separator" toml:"separator"`
	Escape      bool    `yaml:"escape" toml:"escape"`

	// cookie
	Name   string `yaml:"name" toml:"name"`
	Value  string `yaml:"value" toml:"value"`
	Delete bool   `yaml:"delete" toml:"delete"`
	Match  string `yaml:"match" toml:"match"`

	// download
	Dest string `yaml:"dest" toml:"dest"`

	// extract
	XPath     string `yaml:"xpath" toml:"xpath"`
	Attribute string `yaml:"attribute" toml:"attribute"`
}

// LoadScript reads a YAML (.yaml, .yml) or TOML (.toml) script
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported script format %q", filepath.Ext(path))
	}
}

// ParseYAML decodes a YAML script
func ParseYAML(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	return &script, script.Validate()
}

// ParseTOML decodes a TOML script
func ParseTOML(data []byte) (*Script, error) {
	var script Script
	if err := toml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("TOML parse error: %w", err)
	}
	return &script, script.Validate()
}

// Validate checks that every step names a known action and carries the
// fields it needs
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Action {
	case ActionNavigate, ActionPost, ActionDownload:
		if s.URL == "" {
			return fmt.Errorf("url is required")
		}
		if s.Action == ActionDownload && s.Dest == "" {
			return fmt.Errorf("dest is required")
		}
	case ActionSubmit:
		if s.Form == "" {
			return fmt.Errorf("form is required")
		}
	case ActionCookie:
		if s.URL == "" || (s.Match == "" && s.Name == "") {
			return fmt.Errorf("url and either name or match are required")
		}
	case ActionExtract:
		if s.XPath == "" {
			return fmt.Errorf("xpath is required")
		}
	default:
		return fmt.Errorf("unknown action")
	}
	return nil
}

func (s Step) framing() browser.Framing {
	if s.Multipart {
		return browser.Multipart
	}
	return browser.URLEncoded(s.Separator, s.Escape)
}

func (s Step) sources() *files.Sources {
	if len(s.Files) == 0 {
		return nil
	}
	sources := files.NewSources()
	for _, f := range s.Files {
		sources.Set(f.Name, f.Value)
	}
	return sources
}

func values(fields []Field) url.Values {
	if len(fields) == 0 {
		return nil
	}
	v := make(url.Values, len(fields))
	for _, f := range fields {
		v.Add(f.Name, f.Value)
	}
	return v
}

// Runner executes script steps against one browser, keeping the last page
// for submit and extract steps
type Runner struct {
	browser *browser.Browser
	logger  *logging.Logger
	out     io.Writer
	page    *browser.Page
}

// NewRunner creates a runner printing extract results to out
func NewRunner(b *browser.Browser, logger *logging.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{browser: b, logger: logger, out: out}
}

// Page returns the last page loaded, or nil
func (r *Runner) Page() *browser.Page {
	return r.page
}

// Run executes every step in order and stops at the first failure
func (r *Runner) Run(ctx context.Context, script *Script) error {
	for i, step := range script.Steps {
		r.logger.Info("running step",
			zap.Int("step", i+1),
			zap.String("action", step.Action),
			zap.String("url", step.URL),
		)

		if err := r.runStep(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	switch step.Action {
	case ActionNavigate:
		return r.keep(r.browser.Navigate(ctx, step.URL, values(step.Query)))
	case ActionPost:
		return r.post(ctx, step)
	case ActionSubmit:
		return r.submit(ctx, step)
	case ActionCookie:
		return r.cookie(step)
	case ActionDownload:
		n, err := r.browser.Download(ctx, step.URL, step.Dest)
		if err != nil {
			return err
		}
		r.logger.Info("downloaded", zap.String("dest", step.Dest), zap.Int("size", n))
		return nil
	case ActionExtract:
		return r.extract(step)
	default:
		return fmt.Errorf("unknown action")
	}
}

func (r *Runner) keep(page *browser.Page, err error) error {
	if err != nil {
		return err
	}
	r.page = page
	return nil
}

func (r *Runner) post(ctx context.Context, step Step) error {
	if len(step.Args) == 0 && len(step.Files) == 0 {
		if step.ContentType != "" {
			defer r.restoreContentType(r.browser.Header().Get("Content-Type"))
			r.browser.SetContentType(step.ContentType)
		}
		return r.keep(r.browser.PostString(ctx, step.URL, step.Body))
	}

	args := form.NewArgs(r.browser.Encoding())
	for _, f := range step.Args {
		args.Add(f.Name, f.Value)
	}

	if sources := step.sources(); sources != nil {
		return r.keep(r.browser.PostFiles(ctx, step.URL, args, step.framing(), sources, step.ContentType))
	}
	return r.keep(r.browser.PostArgs(ctx, step.URL, args, step.framing()))
}

// restoreContentType puts back the header bag value a step overrode
func (r *Runner) restoreContentType(prev string) {
	if prev == "" {
		r.browser.Header().Del("Content-Type")
		return
	}
	r.browser.SetContentType(prev)
}

func (r *Runner) submit(ctx context.Context, step Step) error {
	doc, err := r.document()
	if err != nil {
		return err
	}

	f, found, err := r.browser.ExtractFieldsByQuery(doc, step.Form)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("form %q not found on %s", step.Form, r.page.URL)
	}

	for _, field := range step.Args {
		f.Fields.ReplaceSingleValue(field.Name, field.Value)
	}
	for _, sel := range step.Select {
		arg, ok := f.Fields.Lookup(sel.Name)
		if !ok {
			return fmt.Errorf("select %q not found in form", sel.Name)
		}
		if !f.Fields.SelectOption(arg, sel.Value) {
			return fmt.Errorf("select %q has no option %q", sel.Name, sel.Value)
		}
	}

	sources := step.sources()
	if sources == nil {
		return r.keep(r.browser.Submit(ctx, r.page, f, step.framing()))
	}

	action, err := browser.ResolveAction(r.page, f)
	if err != nil {
		return err
	}
	framing := step.framing()
	if f.Multipart() {
		framing = browser.Multipart
	}
	return r.keep(r.browser.PostFiles(ctx, action, f.Fields, framing, sources, step.ContentType))
}

func (r *Runner) cookie(step Step) error {
	switch {
	case step.Match != "":
		return r.browser.MatchCookies(step.URL, step.Match)
	case step.Delete:
		return r.browser.DeleteCookie(step.URL, step.Name)
	default:
		return r.browser.AddCookie(step.URL, step.Name, step.Value)
	}
}

func (r *Runner) extract(step Step) error {
	doc, err := r.document()
	if err != nil {
		return err
	}

	var found []string
	if step.Attribute != "" {
		found, err = scraper.QueryAttribute(doc, step.XPath, step.Attribute)
	} else {
		found, err = scraper.QueryText(doc, step.XPath)
	}
	if err != nil {
		return err
	}

	for _, s := range found {
		fmt.Fprintln(r.out, s)
	}
	return nil
}

func (r *Runner) document() (*scraper.XPathDocument, error) {
	if r.page == nil {
		return nil, fmt.Errorf("no page loaded yet")
	}
	return r.page.Document()
}
