package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/middleware"
	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type LoginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

type LoginResp struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange identifier (username or email) and secret for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.LoginReq	true	"Credentials"
//	@Success		200		{object}	serializer.Response{data=handler.LoginResp}
//	@Failure		401		{object}	serializer.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Identifier, req.Secret)
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: LoginResp{Token: token, User: user}})
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create a new account with the user role
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		service.RegisterInput	true	"Account details"
//	@Success		201		{object}	serializer.Response{data=model.User}
//	@Failure		400		{object}	serializer.Response
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := service.RegisterInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		serializer.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: user})
}

// Me godoc
//
//	@Summary		Current user
//	@Description	Return the identity the bearer token resolves to
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.User}
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Data: middleware.CurrentUser(c)})
}
