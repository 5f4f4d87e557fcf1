// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/stratastor/logger"

	"github.com/stratastor/mmacl/internal/command"
	"github.com/stratastor/mmacl/internal/constants"
	"github.com/stratastor/mmacl/pkg/errors"
)

const (
	// Spectrum Scale ACL administration binaries
	BinMmgetacl = "mmgetacl"
	BinMmputacl = "mmputacl"

	// NotManagedExitCode is what mmgetacl/mmputacl return for a path
	// that lives outside any GPFS filesystem (EINVAL).
	NotManagedExitCode = 22
)

// Manager wraps the Spectrum Scale ACL binaries with typed errors and
// structured records.
type Manager struct {
	logger     logger.Logger
	getaclPath string
	putaclPath string
}

// SetOptions controls write operations.
type SetOptions struct {
	// DryRun logs the command and payload instead of invoking mmputacl.
	DryRun bool
}

// NewManager returns a Manager invoking the ACL binaries under binDir,
// or the standard GPFS install prefix when binDir is empty.
func NewManager(l logger.Logger, binDir string) *Manager {
	if binDir == "" {
		binDir = constants.DefaultMmfsBinDir
	}
	return &Manager{
		logger:     l,
		getaclPath: filepath.Join(binDir, BinMmgetacl),
		putaclPath: filepath.Join(binDir, BinMmputacl),
	}
}

// Classify resolves path to absolute form and stats it.
func (m *Manager) Classify(path string) (string, FileKind, error) {
	if path == "" {
		return "", KindUnknown, errors.New(errors.ACLInvalidInput, "empty path")
	}

	fqpn, err := filepath.Abs(path)
	if err != nil {
		return "", KindUnknown, errors.Wrap(err, errors.ACLInvalidInput).
			WithMetadata("path", path)
	}

	info, err := os.Stat(fqpn)
	if err != nil {
		return "", KindUnknown, errors.Wrap(err, errors.ACLPathNotFound).
			WithMetadata("path", fqpn)
	}

	switch {
	case info.IsDir():
		return fqpn, KindDirectory, nil
	case info.Mode().IsRegular():
		return fqpn, KindFile, nil
	default:
		return fqpn, KindUnknown, nil
	}
}

// GetACL reads the access ACL of path.
func (m *Manager) GetACL(ctx context.Context, path string) (*Record, error) {
	fqpn, kind, err := m.Classify(path)
	if err != nil {
		return nil, err
	}
	return m.readACL(ctx, fqpn, kind, false)
}

// GetDefaultACL reads the default (inheritable) ACL of a directory.
func (m *Manager) GetDefaultACL(ctx context.Context, path string) (*Record, error) {
	fqpn, kind, err := m.Classify(path)
	if err != nil {
		return nil, err
	}
	return m.readACL(ctx, fqpn, kind, true)
}

// GetDefaultParentACL reads the default ACL of the directory containing
// path. New objects under that directory inherit it.
func (m *Manager) GetDefaultParentACL(ctx context.Context, path string) (*Record, error) {
	fqpn, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ACLInvalidInput).
			WithMetadata("path", path)
	}
	return m.GetDefaultACL(ctx, filepath.Dir(fqpn))
}

// GetGroupACL looks up one group's permission on path. It never returns
// an error: PermUnknown stands in when the record cannot be read, and
// PermNone when the record has no entry for the group.
func (m *Manager) GetGroupACL(ctx context.Context, path, group string) string {
	rec, err := m.GetACL(ctx, path)
	if err != nil {
		m.logger.Debug("Group lookup could not read ACL record",
			"path", path,
			"group", group,
			"err", err)
		return PermUnknown
	}
	return GroupPermission(rec, group)
}

// SetACL applies rec as the access ACL of path.
func (m *Manager) SetACL(ctx context.Context, path string, rec *Record, opts SetOptions) error {
	return m.writeACL(ctx, path, rec, false, opts)
}

// SetDefaultACL applies rec as the default ACL of a directory.
func (m *Manager) SetDefaultACL(ctx context.Context, path string, rec *Record, opts SetOptions) error {
	return m.writeACL(ctx, path, rec, true, opts)
}

// SetMask reads the current access ACL, replaces its mask, and writes
// it back.
func (m *Manager) SetMask(ctx context.Context, path, mask string, opts SetOptions) error {
	rec, err := m.GetACL(ctx, path)
	if err != nil {
		return err
	}
	rec.SetMask(mask)
	return m.SetACL(ctx, path, rec, opts)
}

// SetGroupACL reads the current access ACL, upserts the named group
// entry, and writes it back.
func (m *Manager) SetGroupACL(ctx context.Context, path, group, perms string, opts SetOptions) error {
	if group == "" {
		return errors.New(errors.ACLInvalidInput, "empty group name")
	}

	rec, err := m.GetACL(ctx, path)
	if err != nil {
		return err
	}
	rec.SetGroupEntry(group, Entry{Perms: perms})
	return m.SetACL(ctx, path, rec, opts)
}

func (m *Manager) readACL(ctx context.Context, fqpn string, kind FileKind, dflt bool) (*Record, error) {
	args := []string{}
	if dflt {
		args = append(args, "-d")
	}
	args = append(args, fqpn)

	out, err := command.ExecCommand(ctx, m.logger, m.getaclPath, args...)
	if err != nil {
		return nil, m.mapCommandError(err, fqpn, errors.ACLCommandFailed)
	}

	rec, err := DecodeString(string(out), fqpn, kind, DecodeOptions{})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (m *Manager) writeACL(ctx context.Context, path string, rec *Record, dflt bool, opts SetOptions) error {
	if rec == nil {
		return errors.New(errors.ACLInvalidInput, "nil ACL record")
	}

	fqpn, _, err := m.Classify(path)
	if err != nil {
		return err
	}

	payload := EncodeToString(rec)

	if opts.DryRun {
		args := []string{m.putaclPath}
		if dflt {
			args = append(args, "-d")
		}
		args = append(args, "-i", "<aclfile>", fqpn)
		m.logger.Info("Dry run, not applying ACL",
			"cmd", shellquote.Join(args...),
			"acl", payload)
		return nil
	}

	tmpFile, err := os.CreateTemp("", "mmacl-*.acl")
	if err != nil {
		return errors.Wrap(err, errors.ACLWriteError).
			WithMetadata("path", fqpn)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(payload); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, errors.ACLWriteError).
			WithMetadata("path", fqpn)
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, errors.ACLWriteError).
			WithMetadata("path", fqpn)
	}

	args := []string{}
	if dflt {
		args = append(args, "-d")
	}
	args = append(args, "-i", tmpPath, fqpn)

	if _, err := command.ExecCommand(ctx, m.logger, m.putaclPath, args...); err != nil {
		return m.mapCommandError(err, fqpn, errors.ACLWriteError)
	}

	m.logger.Info("Applied ACL",
		"path", fqpn,
		"default", dflt)
	return nil
}

// mapCommandError turns executor failures into ACL-domain errors,
// singling out the not-managed exit code.
func (m *Manager) mapCommandError(err error, fqpn string, fallback errors.ErrorCode) error {
	if code, ok := command.ExitCode(err); ok && code == NotManagedExitCode {
		return errors.Wrap(err, errors.ACLNotManaged).
			WithMetadata("path", fqpn)
	}
	return errors.Wrap(err, fallback).
		WithMetadata("path", fqpn)
}
