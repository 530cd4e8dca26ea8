package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eoplatform/workspace-api/go-pkg/httperrors"
	goutil "github.com/eoplatform/workspace-api/go-pkg/util"
	"github.com/eoplatform/workspace-api/workspace"
)

func HandleWorkspaceCreate(c *gin.Context) {
	var data workspace.WorkspaceCreate
	if err := c.BindJSON(&data); err != nil {
		goutil.Logger.Debugw("failed to parse json input",
			"operation", "create",
			"error", err,
		)
		c.JSON(http.StatusBadRequest, gin.H{"code": httperrors.ErrorCodeInvalidRequest, "message": "failed to parse request: " + err.Error()})
		return
	}

	name, err := Service.Create(c, data)
	if err != nil {
		respondError(c, "create", data.PreferredName, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

func HandleWorkspaceGet(c *gin.Context) {
	name := c.Param("name")
	ws, err := Service.Get(c, name, userFor(c, name))
	if err != nil {
		respondError(c, "get", name, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func HandleWorkspaceDelete(c *gin.Context) {
	name := c.Param("name")
	if err := Service.Delete(c, name, userFor(c, name)); err != nil {
		respondError(c, "delete", name, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func HandleWorkspacePatch(c *gin.Context) {
	name := c.Param("name")
	var patch workspace.WorkspacePatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": httperrors.ErrorCodeInvalidRequest, "message": "failed to parse request: " + err.Error()})
		return
	}
	if err := Service.Patch(c, name, userFor(c, name), patch); err != nil {
		respondError(c, "patch", name, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func HandleWorkspaceUpdate(c *gin.Context) {
	name := c.Param("name")
	var edit workspace.WorkspaceEdit
	if err := c.BindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": httperrors.ErrorCodeInvalidRequest, "message": "failed to parse request: " + err.Error()})
		return
	}
	if err := Service.Edit(c, name, userFor(c, name), edit); err != nil {
		respondError(c, "update", name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

// respondError maps the workspace error taxonomy onto the HTTP surface.
// Forbidden responses are deliberately opaque.
func respondError(c *gin.Context, operation, name string, err error) {
	switch {
	case workspace.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"code": httperrors.ErrorCodeResourceNotFound, "message": err.Error()})
	case workspace.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"code": httperrors.ErrorCodeResourceConflict, "message": err.Error()})
	case workspace.IsValidation(err):
		verr := err.(*workspace.ValidationError)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    httperrors.ErrorCodeValidationError,
			"message": verr.Error(),
			"fields":  verr.Fields,
		})
	case workspace.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"code": httperrors.ErrorCodeForbidden, "message": "forbidden"})
	case workspace.IsUnavailable(err):
		goutil.Logger.Errorw("cluster api unavailable",
			"workspace", name,
			"operation", operation,
			"error", err,
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": httperrors.ErrorCodeUnavailable, "message": err.Error()})
	default:
		goutil.Logger.Errorw("operation failed",
			"workspace", name,
			"operation", operation,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"code": httperrors.ErrorCodeInternalFailure, "message": err.Error()})
	}
}
