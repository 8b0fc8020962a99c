package cache

// AlignmentKeyOpts identifies one alignment computation.
type AlignmentKeyOpts struct {
	Left        string `json:"left"`
	Top         string `json:"top"`
	Match       int    `json:"match"`
	Mismatch    int    `json:"mismatch"`
	Gap         int    `json:"gap"`
	TerminalGap int    `json:"terminal_gap"`
	Mode        string `json:"mode"`
}

// ArtifactKeyOpts identifies one rendering of an alignment.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	LeftName string `json:"left_name,omitempty"`
	TopName  string `json:"top_name,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// AlignmentKey returns the key of a filled and traced alignment.
	AlignmentKey(opts AlignmentKeyOpts) string
	// ArtifactKey returns the key of a rendered output of the alignment
	// stored under alignmentKey.
	ArtifactKey(alignmentKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AlignmentKey returns "alignment:<hash>".
func (DefaultKeyer) AlignmentKey(opts AlignmentKeyOpts) string {
	return hashKey("alignment", opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(alignmentKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", alignmentKey, opts)
}
