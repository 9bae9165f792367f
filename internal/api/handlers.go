package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/tasklist/internal/middleware"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/service"
)

// Handler holds the services behind the REST routes.
type Handler struct {
	auth  *service.AuthService
	tasks *service.TaskService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type userResponse struct {
	User models.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err, errorText{internal: "Server error during registration"})
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User.Public(),
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, errorText{internal: "Server error during login"})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User.Public(),
	})
}

// CurrentUser handles GET /api/auth/user.
func (h *Handler) CurrentUser(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, messageResponse{Message: "Token is not valid"})
		return
	}
	c.JSON(http.StatusOK, userResponse{User: user.Public()})
}

// ListTasks handles GET /api/tasks.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, errorText{internal: "Server error while fetching tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), middleware.GetUserID(c), req.Title, req.Description)
	if err != nil {
		writeError(c, err, errorText{internal: "Server error while creating task"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *Handler) UpdateTask(c *gin.Context) {
	var patch models.TaskPatch
	if !bindJSON(c, &patch) {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, err, errorText{
			internal:  "Server error while updating task",
			forbidden: "Not authorized to update this task",
		})
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *Handler) DeleteTask(c *gin.Context) {
	err := h.tasks.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, errorText{
			internal:  "Server error while deleting task",
			forbidden: "Not authorized to delete this task",
		})
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
