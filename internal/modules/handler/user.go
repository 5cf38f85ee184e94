package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
//
//	@Summary		List users
//	@Description	All registered users; admin only
//	@Tags			user
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.User}
//	@Failure		403	{object}	serializer.Response
//	@Router			/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		serializer.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: users})
}
