package templates

// Selector picks a layout: either a built-in or a name that is looked up
// among the built-in aliases and then the registry. The zero Selector
// means nothing was selected; the mail composer sends such messages Plain.
type Selector struct {
	builtIn BuiltIn
	name    string
}

// Named selects a layout by name or alias.
func Named(name string) Selector {
	return Selector{name: name}
}

// IsZero reports whether no layout was selected.
func (s Selector) IsZero() bool {
	return s.builtIn == 0 && s.name == ""
}

// BuiltIn returns the built-in tag, if the selector holds one.
func (s Selector) BuiltIn() (BuiltIn, bool) {
	return s.builtIn, s.builtIn != 0
}

// Name returns the layout name, if the selector holds one.
func (s Selector) Name() (string, bool) {
	return s.name, s.builtIn == 0 && s.name != ""
}

func (s Selector) String() string {
	switch {
	case s.builtIn != 0:
		return s.builtIn.String()
	case s.name != "":
		return s.name
	}
	return Plain.String()
}
