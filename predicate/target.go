package predicate

// Target represents what aspect of a key to compare in predicates.
type Target int

const (
	// TargetVersion compares the per-key modification counter.
	TargetVersion Target = iota
	// TargetCreateRevision compares the store revision at which the key was
	// created.
	TargetCreateRevision
	// TargetModRevision compares the store revision of the last modification
	// to the key.
	TargetModRevision
	// TargetValue compares the stored value byte-for-byte.
	TargetValue
)

func (t Target) String() string {
	switch t {
	case TargetVersion:
		return "Version"
	case TargetCreateRevision:
		return "CreateRevision"
	case TargetModRevision:
		return "ModRevision"
	case TargetValue:
		return "Value"
	default:
		return "Unknown"
	}
}
