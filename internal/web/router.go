package web

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the dashboard routes. CORS is open to the usual local
// dev origins so a page served from a file or a dev server can talk to it.
// The cost routes are registered only when showCosts is set.
func NewRouter(h *Handler, showCosts bool) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/upload", h.Upload)

		api.GET("/history", h.History)
		api.PUT("/extractions", h.SaveCorrection)
		api.DELETE("/extractions", h.DeleteExtraction)

		api.POST("/validate", h.Validate)

		api.GET("/menu", h.ListMenu)
		api.POST("/menu", h.SaveMenuItem)
		api.PUT("/menu", h.SaveMenuItem)
		api.DELETE("/menu", h.DeleteMenuItem)
		api.POST("/menu/image", h.GenerateMenuImage)

		api.GET("/restaurants", h.Restaurants)

		api.GET("/counter", h.Counter)
		api.GET("/stats", h.Stats)

		if showCosts {
			api.GET("/costs", h.Costs)
			api.POST("/cache/invalidate", h.InvalidateCache)
		}

		api.GET("/todos", h.ListTodos)
		api.POST("/todos", h.AddTodo)
		api.PUT("/todos", h.ToggleTodo)
		api.DELETE("/todos", h.DeleteTodo)
	}

	return r
}
