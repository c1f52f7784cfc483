package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abubakkersiddiqq/taskflow/internal/engine"
	"github.com/abubakkersiddiqq/taskflow/internal/model"
	"github.com/abubakkersiddiqq/taskflow/internal/store"
)

func (s *Server) handleListTasks(c *gin.Context) {
	var filter store.TaskFilter
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("priority"); v != "" {
		filter.Priority = &v
	}
	if v := c.Query("project"); v != "" {
		filter.Project = &v
	}

	tasks, err := s.engine.ListTasks(c.Request.Context(), ownerID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var draft engine.TaskDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	task, err := s.engine.CreateTask(c.Request.Context(), ownerID(c), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var upd engine.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	task, err := s.engine.UpdateTask(c.Request.Context(), ownerID(c), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := s.engine.DeleteTask(c.Request.Context(), ownerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed", "id": id})
}
