package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
)

type UploadHandler struct {
	svc service.UploadService
}

func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload godoc
//
//	@Summary		Upload a project visual
//	@Description	Accepts a multipart image and returns a presigned URL for it
//	@Tags			upload
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"image file"
//	@Success		200		{object}	serializer.Response{data=service.UploadResult}
//	@Failure		400		{object}	serializer.Response
//	@Router			/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file field is required", err))
		return
	}
	res, err := h.svc.Store(c.Request.Context(), fh)
	if err != nil {
		serializer.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: res})
}
