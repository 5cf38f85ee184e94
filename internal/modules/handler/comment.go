package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/middleware"
	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type ListCommentsReq struct {
	ProjectID string `form:"projectId" binding:"required"`
}

// List godoc
//
//	@Summary		List comments
//	@Description	Comments of a project, newest first
//	@Tags			comment
//	@Produce		json
//	@Param			projectId	query	string	true	"Project ID"
//	@Success		200	{object}	serializer.Response{data=[]model.Comment}
//	@Router			/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	req := ListCommentsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	comments, err := h.svc.ListByProject(c.Request.Context(), req.ProjectID)
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: comments})
}

type CreateCommentReq struct {
	ProjectID string `json:"projectId" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// Create godoc
//
//	@Summary		Post comment
//	@Description	Append a comment to a project; comments are immutable once created
//	@Tags			comment
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateCommentReq	true	"Comment"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Comment}
//	@Failure		404	{object}	serializer.Response
//	@Router			/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	req := CreateCommentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), req.ProjectID, req.Content, middleware.CurrentUser(c))
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: comment})
}
