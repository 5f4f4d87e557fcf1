// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stratastor/mmacl/cmd/check"
	"github.com/stratastor/mmacl/cmd/config"
	"github.com/stratastor/mmacl/cmd/get"
	"github.com/stratastor/mmacl/cmd/health"
	"github.com/stratastor/mmacl/cmd/mask"
	"github.com/stratastor/mmacl/cmd/serve"
	"github.com/stratastor/mmacl/cmd/set"
	"github.com/stratastor/mmacl/cmd/version"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mmacl",
		Short: "mmacl: Spectrum Scale ACL administration",
	}

	rootCmd.AddCommand(get.NewGetCmd())
	rootCmd.AddCommand(set.NewSetCmd())
	rootCmd.AddCommand(check.NewCheckCmd())
	rootCmd.AddCommand(mask.NewMaskCmd())
	rootCmd.AddCommand(serve.NewServeCmd())
	rootCmd.AddCommand(health.NewHealthCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(config.NewConfigCmd())

	return rootCmd
}
