package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abubakkersiddiqq/taskflow/internal/engine"
	"github.com/abubakkersiddiqq/taskflow/internal/model"
)

// createProjectRequest is the POST /api/projects body.
type createProjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.engine.ListProjects(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, err := s.engine.CreateProject(c.Request.Context(), ownerID(c), req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var upd engine.ProjectUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, err := s.engine.UpdateProject(c.Request.Context(), ownerID(c), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := s.engine.DeleteProject(c.Request.Context(), ownerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted", "id": id})
}
