// Package api is the HTTP surface over the engine: route wiring, bearer
// authentication, and translation of typed engine errors into response
// statuses. No business rules live here.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abubakkersiddiqq/taskflow/internal/auth"
	"github.com/abubakkersiddiqq/taskflow/internal/engine"
)

// Server is the TaskFlow HTTP server.
type Server struct {
	engine *engine.Engine
	auth   *auth.Service
	router *gin.Engine
}

// NewServer wires the routes over the engine and auth service.
func NewServer(eng *engine.Engine, authSvc *auth.Service) *Server {
	router := gin.Default()

	s := &Server{
		engine: eng,
		auth:   authSvc,
		router: router,
	}

	router.GET("/", s.handleHealth)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/me", s.requireAuth, s.handleMe)
		authGroup.PUT("/profile", s.requireAuth, s.handleUpdateProfile)
	}

	projects := router.Group("/api/projects", s.requireAuth)
	{
		projects.GET("", s.handleListProjects)
		projects.POST("", s.handleCreateProject)
		projects.PUT("/:id", s.handleUpdateProject)
		projects.DELETE("/:id", s.handleDeleteProject)
	}

	tasks := router.Group("/api/tasks", s.requireAuth)
	{
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleCreateTask)
		tasks.PUT("/:id", s.handleUpdateTask)
		tasks.DELETE("/:id", s.handleDeleteTask)
	}

	return s
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "TaskFlow API running"})
}
