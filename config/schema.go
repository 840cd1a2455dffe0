package config

// Entry pairs a field key with its Option.
type Entry struct {
	Key    string
	Option Option
}

// Define creates a schema Entry.
func Define(key string, opt Option) Entry {
	return Entry{Key: key, Option: opt}
}

// Schema is an ordered mapping of field keys to options. Validation phases
// visit fields in declaration order.
type Schema struct {
	keys    []string
	options map[string]Option
}

// NewSchema creates a Schema from entries in order.
func NewSchema(entries ...Entry) *Schema {
	schema := &Schema{
		keys:    make([]string, 0, len(entries)),
		options: make(map[string]Option, len(entries)),
	}

	for _, entry := range entries {
		schema.Add(entry.Key, entry.Option)
	}

	return schema
}

// Add appends key to the schema. Adding an existing key replaces its option
// and keeps its original position.
func (s *Schema) Add(key string, opt Option) {
	if _, exists := s.options[key]; !exists {
		s.keys = append(s.keys, key)
	}

	s.options[key] = opt
}

// Option returns the option declared for key.
func (s *Schema) Option(key string) (Option, bool) {
	if s == nil {
		return nil, false
	}

	opt, ok := s.options[key]

	return opt, ok
}

// Has reports whether key is declared.
func (s *Schema) Has(key string) bool {
	_, ok := s.Option(key)

	return ok
}

// Keys returns the declared keys in order.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}

	keys := make([]string, len(s.keys))
	copy(keys, s.keys)

	return keys
}

// Len returns the number of declared keys.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}

	return len(s.keys)
}
