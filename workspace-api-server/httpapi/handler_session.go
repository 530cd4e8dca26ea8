package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandleSessionStart(c *gin.Context) {
	name := c.Param("name")
	if err := Service.StartSession(c, name, userFor(c, name)); err != nil {
		respondError(c, "session-start", name, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func HandleSessionStop(c *gin.Context) {
	name := c.Param("name")
	if err := Service.StopSession(c, name, userFor(c, name)); err != nil {
		respondError(c, "session-stop", name, err)
		return
	}
	c.Status(http.StatusNoContent)
}
