package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/middleware"
	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
	"github.com/vitrine-app/vitrine-api/internal/pkg/query"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type ListProjectsReq struct {
	Search        string `form:"search"`
	Difficulty    string `form:"difficulty"`
	Status        string `form:"status"`
	Category      string `form:"category"`
	Promotion     string `form:"promotion"`
	Tag           string `form:"tag"`
	IncludeHidden bool   `form:"include_hidden"`
}

// List godoc
//
//	@Summary		List projects
//	@Description	List visible projects, optionally filtered. include_hidden requires admin.
//	@Tags			project
//	@Produce		json
//	@Param			search			query	string	false	"Free-text search over name, description, technologies, tags, students"
//	@Param			difficulty		query	string	false	"Exact difficulty"
//	@Param			status			query	string	false	"Exact status"
//	@Param			category		query	string	false	"Exact category"
//	@Param			promotion		query	string	false	"Exact promotion"
//	@Param			tag				query	string	false	"Tag membership"
//	@Param			include_hidden	query	bool	false	"Include hidden projects (admin only)"
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	req := ListProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if req.IncludeHidden && !middleware.CurrentUser(c).IsAdmin() {
		c.JSON(http.StatusForbidden,
			serializer.Err(http.StatusForbidden, "admin access required for hidden projects", nil))
		return
	}

	projects, err := h.svc.List(c.Request.Context(), query.Spec{
		Search:        req.Search,
		Difficulty:    req.Difficulty,
		Status:        req.Status,
		Category:      req.Category,
		Promotion:     req.Promotion,
		Tag:           req.Tag,
		IncludeHidden: req.IncludeHidden,
	})
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// Facets godoc
//
//	@Summary		Filter facets
//	@Description	Distinct categories, promotions, tags and technologies of the visible catalogue
//	@Tags			project
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=query.Facets}
//	@Router			/projects/facets [get]
func (h *ProjectHandler) Facets(c *gin.Context) {
	facets, err := h.svc.Facets(c.Request.Context())
	if err != nil {
		serializer.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: facets})
}

// Get godoc
//
//	@Summary		Get project
//	@Tags			project
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		serializer.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// Create godoc
//
//	@Summary		Create project
//	@Description	Create a project authored by the caller
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	service.CreateProjectInput	true	"Project fields"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Failure		400	{object}	serializer.Response
//	@Router			/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	req := service.CreateProjectInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req, middleware.CurrentUser(c))
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: p})
}

// Update godoc
//
//	@Summary		Update project
//	@Description	Patch project fields; author or admin only
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"
//	@Param			payload	body	service.UpdateProjectInput	true	"Fields to change"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		403	{object}	serializer.Response
//	@Router			/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	req := service.UpdateProjectInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, middleware.CurrentUser(c))
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// Delete godoc
//
//	@Summary		Delete project
//	@Description	Remove a project permanently; author or admin only
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		403	{object}	serializer.Response
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c)); err != nil {
		serializer.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "project deleted"})
}

// ToggleLike godoc
//
//	@Summary		Toggle like
//	@Description	Like the project, or remove the caller's existing like
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.LikeResult}
//	@Router			/projects/{id}/like [post]
func (h *ProjectHandler) ToggleLike(c *gin.Context) {
	res, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		serializer.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: res})
}
