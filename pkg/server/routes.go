// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"github.com/gin-gonic/gin"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/config"
	"github.com/stratastor/mmacl/internal/constants"
	"github.com/stratastor/mmacl/pkg/acl"
	"github.com/stratastor/mmacl/pkg/acl/api"
)

func registerACLRoutes(engine *gin.Engine) error {
	cfg := config.GetConfig()

	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "acl")
	if err != nil {
		return err
	}

	manager := acl.NewManager(l, cfg.ACL.BinDir)
	handler := api.NewACLHandler(manager, l)

	aclGroup := engine.Group(constants.APIACL)
	handler.RegisterRoutes(aclGroup)

	return nil
}
