// app/echoServer/controller/auth/authController.go
package auth

import (
	"log/slog"
	"net/http"

	"bookrental/app/echoServer/httperr"
	"bookrental/model"
	authsvc "bookrental/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register a new user with email/username uniqueness and validation
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "validation error, email/username already taken"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/users/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := httperr.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return httperr.Respond(c, ct.Log, "register", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"user":    u,
		"token":   token,
	})
}

// Login
// @Summary      Login
// @Description  Login with username + password, returns JWT
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/users/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := httperr.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}

	_, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		return httperr.Respond(c, ct.Log, "login", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
	})
}

// Request password reset
// @Summary      Request password reset
// @Description  Answers 202 for unknown emails too
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.ResetRequestReq  true  "Email"
// @Success      202  {object}  map[string]any
// @Router       /v1/users/password-reset [post]
func (ct *Controller) RequestReset(c echo.Context) error {
	var req model.ResetRequestReq
	if err := httperr.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}
	if err := ct.Svc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return httperr.Respond(c, ct.Log, "password reset request", err)
	}
	return c.JSON(http.StatusAccepted, echo.Map{
		"message": "check your email for the instructions to reset your password",
	})
}

// Confirm password reset
// @Summary  Reset password
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    payload  body  model.ResetPasswordReq  true  "Token and new password"
// @Success  200  {object}  map[string]any
// @Failure  400  {object}  map[string]any "invalid or expired token"
// @Router   /v1/users/password-reset/confirm [post]
func (ct *Controller) ConfirmReset(c echo.Context) error {
	var req model.ResetPasswordReq
	if err := httperr.Bind(c, ct.V, ct.Log, &req); err != nil {
		return err
	}
	if err := ct.Svc.ResetPassword(c.Request().Context(), req); err != nil {
		return httperr.Respond(c, ct.Log, "password reset", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "your password has been reset"})
}
