package api

import (
	"net/http"

	linksHandler "utm-som/internal/links/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router       *gin.RouterGroup
	linksHandler linksHandler.Handler
}

func New(router *gin.RouterGroup, linksHandler linksHandler.Handler) API {
	return API{
		router:       router,
		linksHandler: linksHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		apiGroup.GET("/catalog", a.linksHandler.HandleCatalog)

		linksGroup := apiGroup.Group("/links")
		linksGroup.POST("/preview", a.linksHandler.HandlePreview)
		linksGroup.POST("/commit", a.linksHandler.HandleCommit)
		linksGroup.GET("/notice", a.linksHandler.HandleNotice)
		linksGroup.GET("/notice/stream", a.linksHandler.HandleNoticeStream)
		linksGroup.GET("/history", a.linksHandler.HandleHistory)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
