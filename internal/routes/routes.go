package routes

import (
	"github.com/drodber/results-service/internal/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts everything reachable without credentials:
// login and method discovery.
func RegisterPublicRoutes(rg *gin.RouterGroup, resultHandler *handlers.ResultHandler, loginHandler *handlers.LoginHandler) {
	{
		rg.POST("/login_check", loginHandler.Login)

		rg.OPTIONS("/results", resultHandler.Options)
		rg.OPTIONS("/results.json", resultHandler.Options)
		rg.OPTIONS("/results.xml", resultHandler.Options)
		rg.OPTIONS("/results/:id", resultHandler.Options)
	}
}

// RegisterPrivateRoutes mounts the results collection/item operations.
// The .json/.xml variants mirror the format suffix of the collection
// path; the item format suffix travels inside the :id parameter.
func RegisterPrivateRoutes(rg *gin.RouterGroup, resultHandler *handlers.ResultHandler) {
	{
		rg.GET("/results", resultHandler.ListResults)
		rg.POST("/results", resultHandler.CreateResult)

		for _, suffix := range []string{".json", ".xml"} {
			rg.GET("/results"+suffix, resultHandler.ListResults)
			rg.GET("/results"+suffix+"/:sort", resultHandler.ListResults)
			rg.POST("/results"+suffix, resultHandler.CreateResult)
		}

		rg.GET("/results/:id", resultHandler.GetResult)
		rg.PUT("/results/:id", resultHandler.UpdateResult)
		rg.DELETE("/results/:id", resultHandler.DeleteResult)
	}
}
