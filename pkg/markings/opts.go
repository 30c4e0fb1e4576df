package markings

// Opts configures how a template is parsed and applied.
//
// The zero value is the default and the strictest policy: parsing fails on
// templates without markers and on repeated keys, and Apply fails on
// arguments that have no key in the template.
//
// The toggle methods flip one setting and return the result, so they chain:
//
//	opts := markings.Opts{}.
//	    ToggleOptionalKeys().
//	    ToggleDuplicateKeys().
//	    ToggleEmptyTemplate()
type Opts struct {
	// OptionalKeys lets Apply ignore arguments that do not appear in the template.
	OptionalKeys bool `yaml:"optional_keys" json:"optional_keys"`

	// DuplicateKeys lets a key appear more than once. One argument resolves
	// every occurrence.
	DuplicateKeys bool `yaml:"duplicate_keys" json:"duplicate_keys"`

	// EmptyTemplate lets a template have no markers. Such a template applies
	// as the identity.
	EmptyTemplate bool `yaml:"empty_template" json:"empty_template"`
}

// DefaultOpts returns the default options.
func DefaultOpts() Opts {
	return Opts{}
}

// ToggleOptionalKeys flips OptionalKeys.
func (o Opts) ToggleOptionalKeys() Opts {
	o.OptionalKeys = !o.OptionalKeys
	return o
}

// ToggleDuplicateKeys flips DuplicateKeys.
func (o Opts) ToggleDuplicateKeys() Opts {
	o.DuplicateKeys = !o.DuplicateKeys
	return o
}

// ToggleEmptyTemplate flips EmptyTemplate.
func (o Opts) ToggleEmptyTemplate() Opts {
	o.EmptyTemplate = !o.EmptyTemplate
	return o
}

// Validate checks scanned keys against the options.
//
// An empty key list is checked before duplicates.
func (o Opts) Validate(keys []string) error {
	if len(keys) == 0 && !o.EmptyTemplate {
		return ErrEmptyTemplate
	}
	if !o.DuplicateKeys && hasDuplicates(keys) {
		return ErrDuplicateKeys
	}
	return nil
}

func hasDuplicates(keys []string) bool {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}
