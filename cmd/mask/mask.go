// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package mask

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/config"
	"github.com/stratastor/mmacl/pkg/acl"
)

var dryRun bool

func NewMaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mask PATH [PERMS]",
		Short: "Show or rewrite the ACL mask of a path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			l, err := logger.NewTag(config.NewLoggerConfig(cfg), "mask")
			if err != nil {
				return err
			}

			manager := acl.NewManager(l, cfg.ACL.BinDir)

			if len(args) == 1 {
				rec, err := manager.GetACL(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if rec.HasMask() {
					fmt.Println(*rec.Mask)
				} else {
					fmt.Println("no mask entry")
				}
				return nil
			}

			opts := acl.SetOptions{DryRun: dryRun || cfg.ACL.DryRun}
			return manager.SetMask(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Log the command without applying")
	return cmd
}
