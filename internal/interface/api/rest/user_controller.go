package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-api/internal/application/ports"
	"user-directory-api/internal/application/services"
	"user-directory-api/internal/interface/api/rest/dto/user"
	"user-directory-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.RouterGroup,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.POST(RouteRoot, uc.CreateUserHandler)
	r.GET(RouteByUUID, uc.GetUserHandler)
	r.PUT(RouteRoot, uc.UpdateUserHandler)
	r.DELETE(RouteByUUID, uc.DeleteUserHandler)
	r.GET(RouteAll, uc.GetUsersHandler)
	r.GET(RouteDepartment, uc.GetUsersByDepartmentHandler)
	r.GET(RouteRole, uc.GetUsersByRoleHandler)
	r.GET(RouteActive, uc.GetActiveUsersHandler)
	r.GET(RouteSearch, uc.SearchUsersHandler)
	r.GET(RouteCount, uc.CountUsersHandler)
	r.POST(RouteActivate, uc.ActivateUserHandler)
	r.POST(RouteDeactivate, uc.DeactivateUserHandler)

	return uc
}

// respondError translates service failures: invalid input becomes 400
// with the validation message, everything else is logged and hidden
// behind a generic 500.
func (uc *UserController) respondError(c *gin.Context, err error, failMsg string) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	uc.logger.Error(failMsg, zap.Error(err))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	uDomain, err := user.ToDomainUser(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), uDomain)
	if err != nil {
		uc.respondError(c, err, "failed to create a user")
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, userUUID := validator.IsUUID(c.Param("uuid"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid must be a valid UUID"})
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), userUUID)
	if err != nil {
		uc.respondError(c, err, "failed to get a user")
		return
	}

	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	uDomain, err := user.ToDomainUser(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), uDomain)
	if err != nil {
		uc.respondError(c, err, "failed to update a user")
		return
	}

	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	ok, userUUID := validator.IsUUID(c.Param("uuid"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid must be a valid UUID"})
		return
	}

	deleted, err := uc.userService.DeleteUser(c.Request.Context(), userUUID)
	if err != nil {
		uc.respondError(c, err, "failed to delete user")
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "user successfully deleted",
		"uuid":      userUUID.String(),
		"timestamp": time.Now().UTC(),
	})
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindUsers(c.Request.Context())
	if err != nil {
		uc.respondError(c, err, "failed to get users")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUsersByDepartmentHandler(c *gin.Context) {
	users, err := uc.userService.FindUsersByDepartment(c.Request.Context(), c.Param("department"))
	if err != nil {
		uc.respondError(c, err, "failed to get users by department")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUsersByRoleHandler(c *gin.Context) {
	users, err := uc.userService.FindUsersByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		uc.respondError(c, err, "failed to get users by role")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetActiveUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindActiveUsers(c.Request.Context())
	if err != nil {
		uc.respondError(c, err, "failed to get active users")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) SearchUsersHandler(c *gin.Context) {
	users, err := uc.userService.SearchUsersByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		uc.respondError(c, err, "failed to search users")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) CountUsersHandler(c *gin.Context) {
	count, err := uc.userService.CountUsers(c.Request.Context())
	if err != nil {
		uc.respondError(c, err, "failed to count users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (uc *UserController) ActivateUserHandler(c *gin.Context) {
	uc.setActiveHandler(c, true)
}

func (uc *UserController) DeactivateUserHandler(c *gin.Context) {
	uc.setActiveHandler(c, false)
}

func (uc *UserController) setActiveHandler(c *gin.Context, active bool) {
	ok, userUUID := validator.IsUUID(c.Param("uuid"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid must be a valid UUID"})
		return
	}

	setActive := uc.userService.DeactivateUser
	failMsg := "failed to deactivate user"
	if active {
		setActive = uc.userService.ActivateUser
		failMsg = "failed to activate user"
	}

	u, err := setActive(c.Request.Context(), userUUID)
	if err != nil {
		uc.respondError(c, err, failMsg)
		return
	}

	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
