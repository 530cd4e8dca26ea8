package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eoplatform/workspace-api/go-pkg/httperrors"
)

func HandleWorkspaceRegister(c *gin.Context) {
	name := c.Param("name")
	if err := Service.Register(c, name, userFor(c, name)); err != nil {
		respondError(c, "register", name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

func HandleWorkspaceRegistrationLog(c *gin.Context) {
	name := c.Param("name")
	l := Service.RegistrationLog(name)
	if l == "" {
		c.JSON(http.StatusNotFound, gin.H{"code": httperrors.ErrorCodeResourceNotFound, "message": "no registration ran for workspace " + name})
		return
	}
	c.String(http.StatusOK, l)
}
