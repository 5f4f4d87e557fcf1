// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/config"
	"github.com/stratastor/mmacl/pkg/acl"
)

func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH GROUP",
		Short: "Look up one group's permission on a path",
		Long: `Look up one group's permission on a path.

Prints the stored 4-character permission string, "----" when the ACL
carries no entry for the group, or "????" when the record cannot be
read at all.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			l, err := logger.NewTag(config.NewLoggerConfig(cfg), "check")
			if err != nil {
				return err
			}

			manager := acl.NewManager(l, cfg.ACL.BinDir)
			fmt.Println(manager.GetGroupACL(cmd.Context(), args[0], args[1]))
			return nil
		},
	}
}
