// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stratastor/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/mmacl/pkg/errors"
)

// Tests run against stub mmgetacl/mmputacl scripts in a temp directory,
// so no Spectrum Scale install is needed.

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l, err := logger.NewTag(logger.Config{LogLevel: "error"}, "test")
	require.NoError(t, err)
	return l
}

func writeStub(t *testing.T, dir, name, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0755))
}

// stubGetacl emits the sample record, or a marker record when invoked
// with -d.
func stubGetacl(t *testing.T, binDir string) {
	t.Helper()
	writeStub(t, binDir, BinMmgetacl, `#!/bin/sh
if [ "$1" = "-d" ]; then
cat <<'EOF'
#owner:root
#group:root
user::rwxc
group::r-x-
other::----
mask::rwxc
EOF
else
cat <<'EOF'
`+sampleGetaclOutput+`EOF
fi
`)
}

// stubPutacl copies the -i input file to capture so tests can inspect
// the applied payload, and appends the remaining args to capture.args.
func stubPutacl(t *testing.T, binDir, capture string) {
	t.Helper()
	writeStub(t, binDir, BinMmputacl, fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %s.args
while [ "$1" != "-i" ]; do shift; done
cp "$2" %s
`, capture, capture))
}

func TestManagerClassify(t *testing.T) {
	m := NewManager(testLogger(t), t.TempDir())
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	t.Run("directory", func(t *testing.T) {
		fqpn, kind, err := m.Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, fqpn)
		assert.Equal(t, KindDirectory, kind)
	})

	t.Run("file", func(t *testing.T) {
		_, kind, err := m.Classify(file)
		require.NoError(t, err)
		assert.Equal(t, KindFile, kind)
	})

	t.Run("missing path", func(t *testing.T) {
		_, _, err := m.Classify(filepath.Join(dir, "nope"))
		require.Error(t, err)
		code, ok := errors.GetCode(err)
		require.True(t, ok)
		assert.Equal(t, errors.ACLPathNotFound, code)
	})

	t.Run("empty path", func(t *testing.T) {
		_, _, err := m.Classify("")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLInvalidInput))
	})
}

func TestManagerGetACL(t *testing.T) {
	binDir := t.TempDir()
	stubGetacl(t, binDir)
	m := NewManager(testLogger(t), binDir)

	target := t.TempDir()
	ctx := context.Background()

	t.Run("access record", func(t *testing.T) {
		rec, err := m.GetACL(ctx, target)
		require.NoError(t, err)

		assert.Equal(t, "alice", rec.Owner)
		assert.Equal(t, KindDirectory, rec.Kind)
		assert.Equal(t, "rw-c", rec.Users["bob"].Perms)
	})

	t.Run("default record uses -d", func(t *testing.T) {
		rec, err := m.GetDefaultACL(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, "root", rec.Owner)
	})

	t.Run("parent default record", func(t *testing.T) {
		inner := filepath.Join(target, "sub")
		require.NoError(t, os.Mkdir(inner, 0755))

		rec, err := m.GetDefaultParentACL(ctx, inner)
		require.NoError(t, err)
		assert.Equal(t, "root", rec.Owner)
		assert.Equal(t, target, rec.Path)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := m.GetACL(ctx, filepath.Join(target, "nope"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLPathNotFound))
	})
}

func TestManagerGetACLErrors(t *testing.T) {
	target := t.TempDir()
	ctx := context.Background()

	t.Run("path outside managed filesystem", func(t *testing.T) {
		binDir := t.TempDir()
		writeStub(t, binDir, BinMmgetacl, "#!/bin/sh\nexit 22\n")
		m := NewManager(testLogger(t), binDir)

		_, err := m.GetACL(ctx, target)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLNotManaged))
	})

	t.Run("tool failure", func(t *testing.T) {
		binDir := t.TempDir()
		writeStub(t, binDir, BinMmgetacl, "#!/bin/sh\necho boom >&2\nexit 1\n")
		m := NewManager(testLogger(t), binDir)

		_, err := m.GetACL(ctx, target)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLCommandFailed))
	})
}

func TestManagerGetGroupACL(t *testing.T) {
	binDir := t.TempDir()
	stubGetacl(t, binDir)
	m := NewManager(testLogger(t), binDir)

	target := t.TempDir()
	ctx := context.Background()

	t.Run("group present", func(t *testing.T) {
		assert.Equal(t, "rwx-", m.GetGroupACL(ctx, target, "admins"))
	})

	t.Run("group absent", func(t *testing.T) {
		assert.Equal(t, PermNone, m.GetGroupACL(ctx, target, "nobody"))
	})

	t.Run("record unavailable", func(t *testing.T) {
		assert.Equal(t, PermUnknown, m.GetGroupACL(ctx, filepath.Join(target, "nope"), "admins"))
	})

	t.Run("tool failure", func(t *testing.T) {
		failDir := t.TempDir()
		writeStub(t, failDir, BinMmgetacl, "#!/bin/sh\nexit 22\n")
		fm := NewManager(testLogger(t), failDir)
		assert.Equal(t, PermUnknown, fm.GetGroupACL(ctx, target, "admins"))
	})
}

func TestManagerSetACL(t *testing.T) {
	binDir := t.TempDir()
	stubGetacl(t, binDir)
	capture := filepath.Join(t.TempDir(), "applied.acl")
	stubPutacl(t, binDir, capture)
	m := NewManager(testLogger(t), binDir)

	target := t.TempDir()
	ctx := context.Background()

	rec := NewRecord(target, KindDirectory)
	rec.UserPerms = "rwxc"
	rec.GroupPerms = "r---"
	rec.OtherPerms = "----"
	rec.SetUserEntry("bob", Entry{Perms: "rw--"})

	t.Run("applies encoded payload via temp file", func(t *testing.T) {
		require.NoError(t, m.SetACL(ctx, target, rec, SetOptions{}))

		applied, err := os.ReadFile(capture)
		require.NoError(t, err)
		assert.Equal(t, EncodeToString(rec), string(applied))
	})

	t.Run("default flag reaches the tool", func(t *testing.T) {
		require.NoError(t, m.SetDefaultACL(ctx, target, rec, SetOptions{}))

		args, err := os.ReadFile(capture + ".args")
		require.NoError(t, err)
		assert.Contains(t, string(args), "-d")
	})

	t.Run("dry run skips the tool", func(t *testing.T) {
		failDir := t.TempDir()
		writeStub(t, failDir, BinMmputacl, "#!/bin/sh\nexit 1\n")
		stubGetacl(t, failDir)
		fm := NewManager(testLogger(t), failDir)

		require.NoError(t, fm.SetACL(ctx, target, rec, SetOptions{DryRun: true}))
	})

	t.Run("nil record", func(t *testing.T) {
		err := m.SetACL(ctx, target, nil, SetOptions{})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLInvalidInput))
	})

	t.Run("write failure", func(t *testing.T) {
		failDir := t.TempDir()
		writeStub(t, failDir, BinMmputacl, "#!/bin/sh\nexit 1\n")
		fm := NewManager(testLogger(t), failDir)

		err := fm.SetACL(ctx, target, rec, SetOptions{})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLWriteError))
	})
}

func TestManagerSetMask(t *testing.T) {
	binDir := t.TempDir()
	stubGetacl(t, binDir)
	capture := filepath.Join(t.TempDir(), "applied.acl")
	stubPutacl(t, binDir, capture)
	m := NewManager(testLogger(t), binDir)

	target := t.TempDir()
	require.NoError(t, m.SetMask(context.Background(), target, "r---", SetOptions{}))

	applied, err := os.ReadFile(capture)
	require.NoError(t, err)
	assert.Contains(t, string(applied), "mask::r---\n")
	// The rest of the record survives the rewrite.
	assert.Contains(t, string(applied), "user:bob:rw-c\n")
}

func TestManagerSetGroupACL(t *testing.T) {
	binDir := t.TempDir()
	stubGetacl(t, binDir)
	capture := filepath.Join(t.TempDir(), "applied.acl")
	stubPutacl(t, binDir, capture)
	m := NewManager(testLogger(t), binDir)

	target := t.TempDir()
	ctx := context.Background()

	t.Run("upserts the group entry", func(t *testing.T) {
		require.NoError(t, m.SetGroupACL(ctx, target, "ops", "rw--", SetOptions{}))

		applied, err := os.ReadFile(capture)
		require.NoError(t, err)
		assert.Contains(t, string(applied), "group:ops:rw--\n")
		assert.Contains(t, string(applied), "group:admins:rwx-\n")
	})

	t.Run("empty group name", func(t *testing.T) {
		err := m.SetGroupACL(ctx, target, "", "rw--", SetOptions{})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ACLInvalidInput))
	})
}
