// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"strings"

	"github.com/stratastor/mmacl/pkg/errors"
)

// DecodeOptions controls decoder strictness.
type DecodeOptions struct {
	// Strict makes unrecognized or truncated lines an error instead of
	// being skipped. mmgetacl output from healthy clusters never needs
	// it; it is useful when decoding hand-edited ACL files.
	Strict bool
}

// Decode parses mmgetacl text output into a Record.
//
// Recognized lines:
//
//	#owner:NAME
//	#group:NAME
//	user::PERMS            group::PERMS           other::PERMS
//	mask::PERMS
//	user:NAME:PERMS[:EFFECTIVE]
//	group:NAME:PERMS[:EFFECTIVE]
//
// For named entries PERMS is truncated to its first 4 characters and
// EFFECTIVE to characters 2-5, matching the fixed-width column layout
// mmgetacl prints; base entries pass through untouched. Anything else
// is skipped, or rejected when opts.Strict is set.
func Decode(lines []string, path string, kind FileKind, opts DecodeOptions) (*Record, error) {
	rec := NewRecord(path, kind)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ":")
		switch fields[0] {
		case "#owner":
			if len(fields) < 2 {
				if err := malformed(opts, line, "missing owner name"); err != nil {
					return nil, err
				}
				continue
			}
			rec.Owner = fields[1]

		case "#group":
			if len(fields) < 2 {
				if err := malformed(opts, line, "missing group name"); err != nil {
					return nil, err
				}
				continue
			}
			rec.Group = fields[1]

		case "user":
			perms, entry, named, err := parseEntryFields(fields, opts, line)
			if err != nil {
				return nil, err
			}
			if named == "" {
				rec.UserPerms = perms
			} else {
				rec.SetUserEntry(named, entry)
			}

		case "group":
			perms, entry, named, err := parseEntryFields(fields, opts, line)
			if err != nil {
				return nil, err
			}
			if named == "" {
				rec.GroupPerms = perms
			} else {
				rec.SetGroupEntry(named, entry)
			}

		case "other":
			if len(fields) < 3 || fields[1] != "" {
				if err := malformed(opts, line, "malformed other entry"); err != nil {
					return nil, err
				}
				continue
			}
			rec.OtherPerms = fields[2]

		case "mask":
			if len(fields) < 3 || fields[1] != "" {
				if err := malformed(opts, line, "malformed mask entry"); err != nil {
					return nil, err
				}
				continue
			}
			rec.SetMask(fields[2])

		default:
			if err := malformed(opts, line, "unrecognized entry tag"); err != nil {
				return nil, err
			}
		}
	}

	return rec, nil
}

// DecodeString is Decode over newline-separated text.
func DecodeString(text, path string, kind FileKind, opts DecodeOptions) (*Record, error) {
	return Decode(strings.Split(text, "\n"), path, kind, opts)
}

// parseEntryFields handles both base ("user::rwxc") and named
// ("user:bob:rw--:rw--") forms of user/group lines. For the base form
// it returns the permission string with named == "". For the named form
// it returns the entry and the name.
func parseEntryFields(fields []string, opts DecodeOptions, line string) (perms string, entry Entry, named string, err error) {
	if len(fields) < 3 {
		return "", Entry{}, "", malformed(opts, line, "truncated entry")
	}
	if fields[1] == "" {
		return fields[2], Entry{}, "", nil
	}

	entry = Entry{Perms: sliceClamp(fields[2], 0, 4)}
	if len(fields) >= 4 {
		// The effective column carries one marker character before the
		// permission flags, hence the shifted window.
		entry.Effective = sliceClamp(fields[3], 1, 5)
	}
	return "", entry, fields[1], nil
}

func malformed(opts DecodeOptions, line, reason string) error {
	if !opts.Strict {
		return nil
	}
	return errors.New(errors.ACLParseError, reason).
		WithMetadata("line", line)
}

// sliceClamp returns s[lo:hi] with both bounds clamped to the string
// length, so short permission fields pass through untouched instead of
// panicking.
func sliceClamp(s string, lo, hi int) string {
	if lo > len(s) {
		lo = len(s)
	}
	if hi > len(s) {
		hi = len(s)
	}
	if lo > hi {
		return ""
	}
	return s[lo:hi]
}

// Encode renders a record back into mmputacl input text. Base entries
// come first, then the mask (DefaultMask when the record has none),
// then named entries in insertion order. Effective permissions are
// never emitted; mmputacl recomputes them from the mask.
func Encode(rec *Record) []string {
	lines := make([]string, 0, 4+len(rec.Users)+len(rec.Groups))

	lines = append(lines,
		"user::"+rec.UserPerms,
		"group::"+rec.GroupPerms,
		"other::"+rec.OtherPerms,
	)

	mask := DefaultMask
	if rec.Mask != nil {
		mask = *rec.Mask
	}
	lines = append(lines, "mask::"+mask)

	for _, name := range rec.UserNames() {
		lines = append(lines, "user:"+name+":"+rec.Users[name].Perms)
	}
	for _, name := range rec.GroupNames() {
		lines = append(lines, "group:"+name+":"+rec.Groups[name].Perms)
	}

	return lines
}

// EncodeToString joins Encode output with a trailing newline, the form
// mmputacl expects in its input file.
func EncodeToString(rec *Record) string {
	return strings.Join(Encode(rec), "\n") + "\n"
}
