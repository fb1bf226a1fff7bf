// Package router wires the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/menta2k/image-identifier/internal/handler"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(identifyH *handler.IdentifyHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/healthz", identifyH.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/identify/:mode", identifyH.Identify)
	v1.GET("/session/:mode", identifyH.Snapshot)
	v1.POST("/session/:mode/reset", identifyH.Reset)

	return r
}
