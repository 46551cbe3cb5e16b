package profile

// KeyField is the record field holding the identity key (the account email).
const KeyField = "email"

// Record is a flat profile snapshot: field name to value.
type Record map[string]string

// Clone returns an independent copy. Cloning nil yields an empty record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns base with every field of changes written over it. Fields of
// base that changes does not mention are kept. Neither argument is modified,
// and Merge(Merge(b, c), c) equals Merge(b, c).
func Merge(base, changes Record) Record {
	out := base.Clone()
	for k, v := range changes {
		out[k] = v
	}
	return out
}
