package submission

import "sync"

// Form is the submitting form as the pipeline sees it.
type Form interface {
	// Name is the form's logical name; empty means the kind's default.
	Name() string
	// Endpoint is the per-form endpoint override, if any.
	Endpoint() string
	// Value returns the raw value of a field and whether the field exists.
	Value(field string) (string, bool)
	// Reset clears the input fields after a successful submission.
	Reset()
}

// ValuesForm is a Form backed by a map of field values.
type ValuesForm struct {
	mu       sync.Mutex
	name     string
	endpoint string
	values   map[string]string
}

// NewValuesForm creates a form holding a copy of values.
func NewValuesForm(name, endpoint string, values map[string]string) *ValuesForm {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &ValuesForm{name: name, endpoint: endpoint, values: copied}
}

func (f *ValuesForm) Name() string     { return f.name }
func (f *ValuesForm) Endpoint() string { return f.endpoint }

func (f *ValuesForm) Value(field string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[field]
	return v, ok
}

// Reset keeps every field but empties its value.
func (f *ValuesForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.values {
		f.values[k] = ""
	}
}
