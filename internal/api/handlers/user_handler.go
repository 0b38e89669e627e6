package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/config"
	"github.com/linskybing/formify-go/internal/domain/user"
	"github.com/linskybing/formify-go/pkg/response"
	"github.com/linskybing/formify-go/pkg/utils"
)

var userLabels = map[string]string{
	"Email":    "email",
	"Password": "password",
	"Name":     "name",
	"Role":     "role",
}

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary User registration
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "User registration info"
// @Success 201 {object} user.UserDTO
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.CreateUserInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err, userLabels)
		return
	}

	usr, err := h.svc.RegisterUser(input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usr.ToDTO())
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.TokenResponse "JWT token and user info"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err, userLabels)
		return
	}

	usr, token, err := h.svc.LoginUser(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		writeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(config.TokenTTL.Seconds()), "/", "", config.IsProduction, true)

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:     token,
		UID:       usr.UID,
		Name:      usr.Name,
		Email:     usr.Email,
		IsAdmin:   usr.IsAdmin(),
		ExpiresIn: int64(config.InactivityTimeout.Seconds()),
	})
}

// Logout godoc
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse "Logout successful"
// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if p, err := utils.GetPrincipalFromContext(c); err == nil {
		if err := h.svc.Logout(c.Request.Context(), p); err != nil {
			writeError(c, err)
			return
		}
	}
	c.SetCookie("token", "", -1, "/", "", config.IsProduction, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// AuthStatus godoc
// @Summary Current session
// @Description Answers 401 once the session has expired from inactivity.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.UserDTO
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/status [get]
func (h *UserHandler) AuthStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	usr, err := h.svc.FindUserByID(p.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
		return
	}
	c.JSON(http.StatusOK, usr.ToDTO())
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} user.UserDTO
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := utils.ParsePaging(c, 20)
	users, err := h.svc.ListUserByPaging(page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]user.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToDTO())
	}
	c.JSON(http.StatusOK, out)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param input body user.UpdateRoleInput true "New role"
// @Success 200 {object} user.UserDTO
// @Failure 403 {object} response.ErrorResponse "Reserved admin"
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input user.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, userLabels)
		return
	}

	usr, err := h.svc.UpdateRole(id, user.Role(input.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr.ToDTO())
}
