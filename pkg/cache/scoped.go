package cache

// ScopedKeyer wraps a Keyer with a prefix so that callers sharing a backend
// keep separate namespaces.
//
// Example usage:
//
//	// Keys for one API tenant
//	tenant := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ToolKey generates a prefixed key for a tool result.
func (k *ScopedKeyer) ToolKey(tool string, input []byte) string {
	return k.prefix + k.inner.ToolKey(tool, input)
}
