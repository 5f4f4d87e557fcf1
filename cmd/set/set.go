// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package set

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/config"
	"github.com/stratastor/mmacl/pkg/acl"
)

var (
	dflt     bool
	dryRun   bool
	group    string
	perms    string
	aclFile  string
	jsonFile string
)

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set PATH",
		Short: "Replace the ACL of a file or directory",
		Long: `Replace the ACL of a file or directory.

The new ACL is read from --file (or stdin with --file -) in mmputacl
input format, from --json-file as a JSON record, or built from the
current ACL with a single group entry upserted via --group/--perms.`,
		Args: cobra.ExactArgs(1),
		RunE: runSet,
	}

	cmd.Flags().BoolVarP(&dflt, "default", "d", false, "Write the default (inheritable) ACL")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Log the command without applying")
	cmd.Flags().StringVarP(&aclFile, "file", "f", "", "ACL text file, or - for stdin")
	cmd.Flags().StringVar(&jsonFile, "json-file", "", "ACL record as JSON, or - for stdin")
	cmd.Flags().StringVarP(&group, "group", "g", "", "Group name to upsert into the current ACL")
	cmd.Flags().StringVarP(&perms, "perms", "p", "", "Permissions for --group (4-character flags)")
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "set")
	if err != nil {
		return err
	}

	manager := acl.NewManager(l, cfg.ACL.BinDir)
	ctx := cmd.Context()
	opts := acl.SetOptions{DryRun: dryRun || cfg.ACL.DryRun}

	if group != "" {
		if dflt {
			return fmt.Errorf("--group cannot be combined with --default")
		}
		return manager.SetGroupACL(ctx, args[0], group, perms, opts)
	}

	if aclFile == "" && jsonFile == "" {
		return fmt.Errorf("one of --file, --json-file or --group is required")
	}

	var rec *acl.Record
	if jsonFile != "" {
		text, err := readInput(jsonFile)
		if err != nil {
			return err
		}
		rec = &acl.Record{}
		if err := json.Unmarshal(text, rec); err != nil {
			return fmt.Errorf("failed to parse ACL record: %w", err)
		}
	} else {
		text, err := readInput(aclFile)
		if err != nil {
			return err
		}
		// Hand-edited input gets the strict decoder
		rec, err = acl.DecodeString(string(text), args[0], acl.KindUnknown, acl.DecodeOptions{Strict: true})
		if err != nil {
			return err
		}
	}

	if dflt {
		return manager.SetDefaultACL(ctx, args[0], rec, opts)
	}
	return manager.SetACL(ctx, args[0], rec, opts)
}

func readInput(src string) ([]byte, error) {
	var (
		text []byte
		err  error
	)
	if src == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ACL input: %w", err)
	}
	return text, nil
}
