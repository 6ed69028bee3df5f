package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bizops-api/internal/middleware"
	"github.com/noah-isme/bizops-api/internal/service"
)

func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	if claims := middleware.ClaimsFromContext(c); claims != nil {
		actor.UserID = claims.UserID
		actor.Role = claims.Role
	}
	return actor
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
