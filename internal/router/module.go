package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on the /api group. Modules pull shared
// infrastructure (redis for rate limits) from the container.
type Module interface {
	Register(rg *gin.RouterGroup)
}
