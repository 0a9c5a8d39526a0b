package fieldedit

// Form groups independent fields keyed by name. Each field keeps its own
// draft; editing one never touches another.
type Form struct {
	fields   map[string]*Field
	order    []string
	onCommit CommitFunc
}

// NewForm returns an empty form whose fields commit through onCommit unless
// they were given their own callback.
func NewForm(onCommit CommitFunc) *Form {
	return &Form{fields: make(map[string]*Field), onCommit: onCommit}
}

// Add registers a field, replacing any field with the same name.
func (fm *Form) Add(name string, kind Kind, original string, opts ...FieldOption) *Field {
	field := NewField(name, kind, original, opts...)
	if field.onCommit == nil {
		field.onCommit = fm.onCommit
	}
	if _, exists := fm.fields[name]; !exists {
		fm.order = append(fm.order, name)
	}
	fm.fields[name] = field
	return field
}

// Field returns the named field.
func (fm *Form) Field(name string) (*Field, bool) {
	field, ok := fm.fields[name]
	return field, ok
}

// Fields returns the fields in registration order.
func (fm *Form) Fields() []*Field {
	out := make([]*Field, 0, len(fm.order))
	for _, name := range fm.order {
		out = append(out, fm.fields[name])
	}
	return out
}

// Editing lists the names of fields currently being edited.
func (fm *Form) Editing() []string {
	var names []string
	for _, name := range fm.order {
		if fm.fields[name].State() == Editing {
			names = append(names, name)
		}
	}
	return names
}

// Reset pushes external values into the matching fields.
func (fm *Form) Reset(values map[string]string) {
	for name, value := range values {
		if field, ok := fm.fields[name]; ok {
			field.Reset(value)
		}
	}
}
