package server

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/healthz", h.Healthz)
	router.GET("/", h.Dashboard)
	router.POST("/sessionLogin", h.Login)
	router.POST("/logout", h.Logout)

	api := router.Group("/api")
	{
		api.GET("/price", h.Price)
		api.GET("/analysis/latest", h.LatestAnalysis)
		api.GET("/analysis/history", h.AnalysisHistory)
		api.GET("/trades", h.ListTrades)
		api.GET("/performance", h.Performance)

		protected := api.Group("", h.sessions.RequireAuth())
		{
			protected.POST("/analysis/trigger", h.TriggerAnalysis)
			protected.POST("/trades", h.CreateTrade)
			protected.DELETE("/trades", h.ClearTrades)
		}
	}

	return router
}
