package cache

// ScopedKeyer wraps a Keyer with a prefix.
//
// The source extractor's output depends on its configured extensions and
// stdlib exclusions, so scans with different settings must not share
// entries:
//
//	scope := cache.HashParts(cfg.SourceExtensions, cfg.StdlibExclusions)
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "cfg:"+scope+":")
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

// ExtractKey generates a prefixed key for extraction results.
func (k *ScopedKeyer) ExtractKey(dialect string, content []byte) string {
	return k.prefix + k.inner.ExtractKey(dialect, content)
}
