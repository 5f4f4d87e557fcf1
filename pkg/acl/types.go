// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package acl

// FileKind classifies the filesystem object an ACL record was read from.
type FileKind string

const (
	KindFile      FileKind = "file"
	KindDirectory FileKind = "directory"
	KindUnknown   FileKind = "unknown"
)

// Permission sentinels returned by GroupPermission.
const (
	// PermUnknown means no record could be obtained for the path.
	PermUnknown = "????"
	// PermNone means the record exists but carries no entry for the group.
	PermNone = "----"
)

// DefaultMask is emitted on encode when a record carries no stored mask.
// Full permissions, so named entries keep their effective permissions
// under mask intersection.
const DefaultMask = "rwxc"

// Entry is one named user or group line: the requested permission and
// the effective permission after mask intersection. Both are 4-character
// fixed-position flag strings (`rwxc` or `-`), passed through unvalidated.
type Entry struct {
	Perms     string `json:"perms"`
	Effective string `json:"effective,omitempty"`
}

// Record is the structured access control state of one file or directory,
// as reported by mmgetacl.
type Record struct {
	Path  string   `json:"path"`
	Kind  FileKind `json:"kind"`
	Owner string   `json:"owner,omitempty"`
	Group string   `json:"group,omitempty"`

	// Base entries. Mandatory in any real mmgetacl dump.
	UserPerms  string `json:"user_perms"`
	GroupPerms string `json:"group_perms"`
	OtherPerms string `json:"other_perms"`

	// Mask is nil when the source text contained no mask:: line. Absence
	// is semantically distinct from an empty mask; Encode applies
	// DefaultMask only at encode time.
	Mask *string `json:"mask,omitempty"`

	Users  map[string]Entry `json:"users"`
	Groups map[string]Entry `json:"groups"`

	// Insertion order of named entries, so encode output is
	// deterministic. Not serialized: a record rebuilt from JSON emits
	// named entries in map iteration order.
	userOrder  []string
	groupOrder []string
}

// NewRecord returns an empty record for the given path and kind.
func NewRecord(path string, kind FileKind) *Record {
	return &Record{
		Path:   path,
		Kind:   kind,
		Users:  make(map[string]Entry),
		Groups: make(map[string]Entry),
	}
}

// SetMask stores an explicit mask on the record.
func (r *Record) SetMask(mask string) {
	r.Mask = &mask
}

// HasMask reports whether the record carries an explicit mask entry.
func (r *Record) HasMask() bool {
	return r.Mask != nil
}

// SetUserEntry upserts a named user entry. A repeated name keeps its
// first-insert position and takes the new value (last-write-wins).
func (r *Record) SetUserEntry(name string, e Entry) {
	if r.Users == nil {
		r.Users = make(map[string]Entry)
	}
	if _, ok := r.Users[name]; !ok {
		r.userOrder = append(r.userOrder, name)
	}
	r.Users[name] = e
}

// SetGroupEntry upserts a named group entry, same rules as SetUserEntry.
func (r *Record) SetGroupEntry(name string, e Entry) {
	if r.Groups == nil {
		r.Groups = make(map[string]Entry)
	}
	if _, ok := r.Groups[name]; !ok {
		r.groupOrder = append(r.groupOrder, name)
	}
	r.Groups[name] = e
}

// UserNames returns named users in insertion order. Names present in the
// map but not in the order slice (e.g. after JSON decoding) are appended
// in map iteration order.
func (r *Record) UserNames() []string {
	return orderedNames(r.userOrder, r.Users)
}

// GroupNames returns named groups in insertion order.
func (r *Record) GroupNames() []string {
	return orderedNames(r.groupOrder, r.Groups)
}

func orderedNames(order []string, entries map[string]Entry) []string {
	names := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, n := range order {
		if _, ok := entries[n]; ok && !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	for n := range entries {
		if !seen[n] {
			names = append(names, n)
		}
	}
	return names
}

// GroupPermission is the 3-way lookup over a decoded record:
// PermUnknown when no record could be obtained, PermNone when the record
// has no entry for the group, and the stored permission string otherwise.
func GroupPermission(rec *Record, group string) string {
	if rec == nil {
		return PermUnknown
	}
	if e, ok := rec.Groups[group]; ok {
		return e.Perms
	}
	return PermNone
}
