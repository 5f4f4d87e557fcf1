// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/stratastor/logger"
	"github.com/stratastor/mmacl/internal/common"
	"github.com/stratastor/mmacl/pkg/acl"
	"github.com/stratastor/mmacl/pkg/errors"
)

var APIError = common.APIError

// ACLHandler handles HTTP requests for Spectrum Scale ACLs
type ACLHandler struct {
	manager *acl.Manager
	logger  logger.Logger
}

// NewACLHandler creates a new ACL handler
func NewACLHandler(manager *acl.Manager, logger logger.Logger) *ACLHandler {
	return &ACLHandler{
		manager: manager,
		logger:  logger,
	}
}

// RegisterRoutes registers ACL API routes
func (h *ACLHandler) RegisterRoutes(router *gin.RouterGroup) {
	aclGroup := router.Group("")

	// Apply common middleware
	aclGroup.Use(ValidatePathParam())

	aclGroup.GET("/*path", h.getACL) // Get access/default ACL or one group's permission
	aclGroup.PUT("/*path", h.setACL) // Replace ACL, mask, or one group entry
}

// getACL handles GET requests to retrieve ACL records.
//
// Query parameters:
//
//	default=true  read the default (inheritable) ACL instead of the access ACL
//	parent=true   read the default ACL of the containing directory
//	group=NAME    return only NAME's permission, with sentinel values for
//	              unreadable records and missing entries
func (h *ACLHandler) getACL(c *gin.Context) {
	fsPath := getDecodedPath(c)
	if fsPath == "" {
		APIError(c, errors.New(errors.ACLInvalidInput, "Path cannot be empty"))
		return
	}

	ctx := c.Request.Context()

	if group := c.Query("group"); group != "" {
		perms := h.manager.GetGroupACL(ctx, fsPath, group)
		c.JSON(http.StatusOK, gin.H{
			"path":  fsPath,
			"group": group,
			"perms": perms,
		})
		return
	}

	var (
		rec *acl.Record
		err error
	)
	switch {
	case c.Query("parent") == "true":
		rec, err = h.manager.GetDefaultParentACL(ctx, fsPath)
	case c.Query("default") == "true":
		rec, err = h.manager.GetDefaultACL(ctx, fsPath)
	default:
		rec, err = h.manager.GetACL(ctx, fsPath)
	}
	if err != nil {
		APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": rec})
}

// setACL handles PUT requests. The body selects the operation: a full
// record replaces the ACL, a mask rewrites only the mask entry, and a
// group/perms pair upserts one named group entry.
//
// Query parameters:
//
//	default=true  write the default ACL instead of the access ACL
//	dryrun=true   log the command and payload without applying
func (h *ACLHandler) setACL(c *gin.Context) {
	fsPath := getDecodedPath(c)
	if fsPath == "" {
		APIError(c, errors.New(errors.ACLInvalidInput, "Path cannot be empty"))
		return
	}

	var req struct {
		ACL   *acl.Record `json:"acl"`
		Mask  string      `json:"mask"`
		Group string      `json:"group"`
		Perms string      `json:"perms"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		APIError(c, errors.New(errors.ServerRequestValidation, err.Error()))
		return
	}

	ctx := c.Request.Context()
	dflt := c.Query("default") == "true"
	opts := acl.SetOptions{DryRun: c.Query("dryrun") == "true"}

	var err error
	switch {
	case req.ACL != nil:
		if dflt {
			err = h.manager.SetDefaultACL(ctx, fsPath, req.ACL, opts)
		} else {
			err = h.manager.SetACL(ctx, fsPath, req.ACL, opts)
		}
	case req.Mask != "":
		err = h.manager.SetMask(ctx, fsPath, req.Mask, opts)
	case req.Group != "":
		err = h.manager.SetGroupACL(ctx, fsPath, req.Group, req.Perms, opts)
	default:
		err = errors.New(
			errors.ServerRequestValidation,
			"Request must carry an acl record, a mask, or a group/perms pair",
		)
	}
	if err != nil {
		APIError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ValidatePathParam validates the path parameter format
func ValidatePathParam() gin.HandlerFunc {
	validPath := regexp.MustCompile(`^/(?:[^<>:"|?*]*/)*(?:[^<>:"|?*]*)$`)

	return func(c *gin.Context) {
		path := c.Param("path")
		if path == "" || path == "/" {
			APIError(c, errors.New(errors.ACLInvalidInput, "Path cannot be empty"))
			c.Abort()
			return
		}

		// URL-decode the path
		decodedPath, err := url.PathUnescape(path)
		if err != nil {
			APIError(c, errors.New(errors.ACLInvalidInput, "Invalid path encoding"))
			c.Abort()
			return
		}

		// Validate path format
		if !validPath.MatchString(decodedPath) {
			APIError(c, errors.New(errors.ACLInvalidInput, "Invalid path format"))
			c.Abort()
			return
		}

		// Store the decoded path for handlers
		c.Set("decodedPath", decodedPath)
		c.Next()
	}
}

// getDecodedPath retrieves the URL-decoded path from the context
func getDecodedPath(c *gin.Context) string {
	path, exists := c.Get("decodedPath")
	if !exists {
		return ""
	}

	// Convert to absolute path, removing any ".." components
	absPath, err := filepath.Abs(path.(string))
	if err != nil {
		return ""
	}

	return absPath
}
