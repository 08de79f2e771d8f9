package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/models"
	"github.com/jengzang/solar-explorer-go/internal/repository"
	"github.com/jengzang/solar-explorer-go/internal/spatial"
	"github.com/jengzang/solar-explorer-go/pkg/response"
)

// ProjectHandler handles HTTP requests for the project collection
type ProjectHandler struct {
	repo *repository.ProjectRepository
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(repo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

// ProjectsResponse is the project collection with its load state
type ProjectsResponse struct {
	Projects   []models.Project     `json:"projects"`
	Count      int                  `json:"count"`
	Status     models.RequestStatus `json:"status"`
	Loading    bool                 `json:"loading"`
	Generation uint64               `json:"generation"`
	Visible    bool                 `json:"visible"`
	LastError  string               `json:"last_error,omitempty"`
	Bounds     *spatial.Bounds      `json:"bounds,omitempty"`
	Centroid   *models.Coordinates  `json:"centroid,omitempty"`
}

// VisibilityRequest toggles project markers
type VisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	response.Success(c, h.snapshot(h.repo.Projects()))
}

// ReloadProjects handles POST /api/v1/projects/reload
func (h *ProjectHandler) ReloadProjects(c *gin.Context) {
	// a client disconnect must not turn into an emptied collection
	projects := h.repo.Load(context.WithoutCancel(c.Request.Context()))
	response.Success(c, h.snapshot(projects))
}

// SetVisibility handles PUT /api/v1/projects/visibility
func (h *ProjectHandler) SetVisibility(c *gin.Context) {
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: visible is required")
		return
	}

	h.repo.ToggleVisibility(*req.Visible)
	response.Success(c, gin.H{
		"visible": h.repo.Visible(),
		"markers": h.repo.MarkerCount(),
	})
}

// OpenDetail handles POST /api/v1/projects/:id/detail
func (h *ProjectHandler) OpenDetail(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.OpenDetail(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, repository.ErrNoMarker):
			response.Error(c, 409, err.Error())
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	p, _ := h.repo.Project(id)
	response.Success(c, p)
}

func (h *ProjectHandler) snapshot(projects []models.Project) ProjectsResponse {
	resp := ProjectsResponse{
		Projects:   projects,
		Count:      len(projects),
		Status:     h.repo.Status(),
		Generation: h.repo.Generation(),
		Visible:    h.repo.Visible(),
	}
	resp.Loading = resp.Status.IsLoading()
	if err := h.repo.LastError(); err != nil {
		resp.LastError = err.Error()
	}

	locations := spatial.Locations(projects)
	if b, ok := spatial.BoundingBox(locations); ok {
		centroid := spatial.Centroid(locations)
		resp.Bounds = &b
		resp.Centroid = &centroid
	}
	return resp
}
