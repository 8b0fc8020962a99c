package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// producers can share one backend without reading each other's entries.
// The HTTP server scopes its keys with "server:".
type ScopedKeyer struct {
	Keyer
	Prefix string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{Keyer: inner, Prefix: prefix}
}

func (k ScopedKeyer) AlignmentKey(opts AlignmentKeyOpts) string {
	return k.Prefix + k.Keyer.AlignmentKey(opts)
}

func (k ScopedKeyer) ArtifactKey(alignmentKey string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Keyer.ArtifactKey(alignmentKey, opts)
}
