// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package get

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/config"
	"github.com/stratastor/mmacl/pkg/acl"
)

var (
	dflt   bool
	parent bool
	asJSON bool
)

func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Read the ACL of a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}

	cmd.Flags().BoolVarP(&dflt, "default", "d", false, "Read the default (inheritable) ACL")
	cmd.Flags().BoolVar(&parent, "parent", false, "Read the default ACL of the containing directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "get")
	if err != nil {
		return err
	}

	manager := acl.NewManager(l, cfg.ACL.BinDir)
	ctx := cmd.Context()

	var rec *acl.Record
	switch {
	case parent:
		rec, err = manager.GetDefaultParentACL(ctx, args[0])
	case dflt:
		rec, err = manager.GetDefaultACL(ctx, args[0])
	default:
		rec, err = manager.GetACL(ctx, args[0])
	}
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if rec.Owner != "" {
		fmt.Printf("#owner:%s\n", rec.Owner)
	}
	if rec.Group != "" {
		fmt.Printf("#group:%s\n", rec.Group)
	}
	fmt.Print(acl.EncodeToString(rec))
	return nil
}
