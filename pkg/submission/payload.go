package submission

import (
	"strings"

	"github.com/North-Head-Digital/nhd-website/pkg/endpoints"
)

var (
	// ContactFields are captured from contact forms, in submission order.
	ContactFields = []string{"name", "email", "company", "message"}
	// NewsletterFields are captured from newsletter forms.
	NewsletterFields = []string{"email"}
)

// FieldsFor returns the fields captured for kind.
func FieldsFor(kind endpoints.Kind) []string {
	if kind == endpoints.Newsletter {
		return NewsletterFields
	}
	return ContactFields
}

// Field is one captured form value.
type Field struct {
	Name  string
	Value string
}

// Payload is the ordered, trimmed field mapping captured at submit time.
type Payload []Field

// Capture reads every field for kind from form. Values are trimmed and
// missing fields become empty strings; nothing else is validated.
func Capture(kind endpoints.Kind, form Form) Payload {
	fields := FieldsFor(kind)
	p := make(Payload, 0, len(fields))
	for _, name := range fields {
		value, _ := form.Value(name)
		p = append(p, Field{Name: name, Value: strings.TrimSpace(value)})
	}
	return p
}

// Get returns the value of name, or "" when absent.
func (p Payload) Get(name string) string {
	for _, f := range p {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Map returns the payload as a plain map.
func (p Payload) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, f := range p {
		m[f.Name] = f.Value
	}
	return m
}
