// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/mmacl/pkg/errors"
)

const sampleGetaclOutput = `#owner:alice
#group:staff
user::rwxc
group::r-x-
other::----
mask::rwx-
user:bob:rw-c:+rw-c
group:admins:rwx-:+rwx-
`

func TestDecode(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		rec, err := DecodeString(sampleGetaclOutput, "/gpfs/data", KindDirectory, DecodeOptions{})
		require.NoError(t, err)

		assert.Equal(t, "/gpfs/data", rec.Path)
		assert.Equal(t, KindDirectory, rec.Kind)
		assert.Equal(t, "alice", rec.Owner)
		assert.Equal(t, "staff", rec.Group)
		assert.Equal(t, "rwxc", rec.UserPerms)
		assert.Equal(t, "r-x-", rec.GroupPerms)
		assert.Equal(t, "----", rec.OtherPerms)

		require.True(t, rec.HasMask())
		assert.Equal(t, "rwx-", *rec.Mask)

		require.Contains(t, rec.Users, "bob")
		assert.Equal(t, Entry{Perms: "rw-c", Effective: "rw-c"}, rec.Users["bob"])

		require.Contains(t, rec.Groups, "admins")
		assert.Equal(t, Entry{Perms: "rwx-", Effective: "rwx-"}, rec.Groups["admins"])
	})

	t.Run("named permission fields are clamped", func(t *testing.T) {
		text := "user::rwxc\nuser:bob:rw\nuser:carol:rwxcTRAILING:+rwxcTRAILING\n"
		rec, err := DecodeString(text, "/gpfs/f", KindFile, DecodeOptions{})
		require.NoError(t, err)

		assert.Equal(t, "rwxc", rec.UserPerms)
		// Short fields clamp instead of panicking
		assert.Equal(t, "rw", rec.Users["bob"].Perms)
		assert.Equal(t, "", rec.Users["bob"].Effective)
		// Long fields truncate to the fixed-width windows
		assert.Equal(t, "rwxc", rec.Users["carol"].Perms)
		assert.Equal(t, "rwxc", rec.Users["carol"].Effective)
	})

	t.Run("mask absent", func(t *testing.T) {
		rec, err := DecodeString("user::rwxc\ngroup::r---\nother::----\n", "/gpfs/f", KindFile, DecodeOptions{})
		require.NoError(t, err)
		assert.False(t, rec.HasMask())
	})

	t.Run("repeated named entry takes last value", func(t *testing.T) {
		text := "user:bob:r---\nuser:carol:rwxc\nuser:bob:rw-c\n"
		rec, err := DecodeString(text, "/gpfs/f", KindFile, DecodeOptions{})
		require.NoError(t, err)

		assert.Equal(t, "rw-c", rec.Users["bob"].Perms)
		assert.Equal(t, []string{"bob", "carol"}, rec.UserNames())
	})

	t.Run("lenient mode skips junk lines", func(t *testing.T) {
		text := "foo::bar\nuser::rwxc\n\nnot an acl line\nother::r---\n"
		rec, err := DecodeString(text, "/gpfs/f", KindFile, DecodeOptions{})
		require.NoError(t, err)

		assert.Equal(t, "rwxc", rec.UserPerms)
		assert.Equal(t, "r---", rec.OtherPerms)
	})

	t.Run("strict mode rejects junk lines", func(t *testing.T) {
		_, err := DecodeString("foo::bar\n", "/gpfs/f", KindFile, DecodeOptions{Strict: true})
		require.Error(t, err)

		code, ok := errors.GetCode(err)
		require.True(t, ok)
		assert.Equal(t, errors.ACLParseError, code)
	})

	t.Run("strict mode rejects truncated entries", func(t *testing.T) {
		_, err := DecodeString("user:bob\n", "/gpfs/f", KindFile, DecodeOptions{Strict: true})
		require.Error(t, err)

		_, err = DecodeString("other:x:r---\n", "/gpfs/f", KindFile, DecodeOptions{Strict: true})
		require.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		rec, err := DecodeString(sampleGetaclOutput, "/gpfs/data", KindDirectory, DecodeOptions{})
		require.NoError(t, err)

		want := []string{
			"user::rwxc",
			"group::r-x-",
			"other::----",
			"mask::rwx-",
			"user:bob:rw-c",
			"group:admins:rwx-",
		}
		assert.Equal(t, want, Encode(rec))
	})

	t.Run("default mask when absent", func(t *testing.T) {
		rec := NewRecord("/gpfs/f", KindFile)
		rec.UserPerms = "rwxc"
		rec.GroupPerms = "r---"
		rec.OtherPerms = "----"

		lines := Encode(rec)
		assert.Contains(t, lines, "mask::"+DefaultMask)
	})

	t.Run("named entries keep insertion order", func(t *testing.T) {
		rec := NewRecord("/gpfs/f", KindFile)
		rec.SetUserEntry("zeta", Entry{Perms: "r---"})
		rec.SetUserEntry("alpha", Entry{Perms: "rw--"})
		rec.SetGroupEntry("ops", Entry{Perms: "rwx-"})
		rec.SetUserEntry("zeta", Entry{Perms: "rwxc"})

		lines := Encode(rec)
		text := strings.Join(lines, "\n")
		assert.Less(t, strings.Index(text, "user:zeta:rwxc"), strings.Index(text, "user:alpha:rw--"))
		assert.Contains(t, lines, "group:ops:rwx-")
	})

	t.Run("string form ends with newline", func(t *testing.T) {
		rec := NewRecord("/gpfs/f", KindFile)
		assert.True(t, strings.HasSuffix(EncodeToString(rec), "\n"))
	})
}

func TestGroupPermission(t *testing.T) {
	rec, err := DecodeString(sampleGetaclOutput, "/gpfs/data", KindDirectory, DecodeOptions{})
	require.NoError(t, err)

	t.Run("nil record", func(t *testing.T) {
		assert.Equal(t, PermUnknown, GroupPermission(nil, "admins"))
	})

	t.Run("group not present", func(t *testing.T) {
		assert.Equal(t, PermNone, GroupPermission(rec, "nobody"))
	})

	t.Run("group present", func(t *testing.T) {
		assert.Equal(t, "rwx-", GroupPermission(rec, "admins"))
	})
}
