package router

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches a {name} segment in a route template
var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Template is a compiled route template such as "/users/{id}/posts/{post}".
// Each placeholder captures one or more word characters and never crosses '/'.
type Template struct {
	raw   string
	re    *regexp.Regexp
	names []string
}

// Compile compiles a route template. Text outside placeholders matches literally.
func Compile(tmpl string) (*Template, error) {
	if tmpl == "" || tmpl[0] != '/' {
		return nil, fmt.Errorf("template %q must begin with '/'", tmpl)
	}

	var pattern strings.Builder
	pattern.WriteByte('^')

	t := &Template{raw: tmpl}
	last := 0
	for _, loc := range placeholder.FindAllStringSubmatchIndex(tmpl, -1) {
		pattern.WriteString(regexp.QuoteMeta(tmpl[last:loc[0]]))
		pattern.WriteString(`(\w+)`)
		t.names = append(t.names, tmpl[loc[2]:loc[3]])
		last = loc[1]
	}
	pattern.WriteString(regexp.QuoteMeta(tmpl[last:]))
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("compile template %q: %w", tmpl, err)
	}
	t.re = re

	return t, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(tmpl string) *Template {
	t, err := Compile(tmpl)
	if err != nil {
		panic(err)
	}
	return t
}

// Match tests url against the whole template and returns the captures.
// When a name repeats, the last capture wins.
func (t *Template) Match(url string) (Vars, bool) {
	m := t.re.FindStringSubmatch(url)
	if m == nil {
		return nil, false
	}

	vars := make(Vars, len(t.names))
	for i, name := range t.names {
		vars[name] = m[i+1]
	}
	return vars, true
}

// Names returns the placeholder names in template order
func (t *Template) Names() []string {
	return t.names
}

// String returns the source template
func (t *Template) String() string {
	return t.raw
}
