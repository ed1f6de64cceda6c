package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"edupro/core"
	"edupro/core/user"
)

type userApi struct {
	svc      user.Service
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc user.Service, validate *validator.Validate) {
	api := userApi{svc: svc, validate: validate}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)
	ug.POST("/register", api.register)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.POST("/logout", api.logout)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("/me", api.me, roleGateMiddleware(api.svc))

	// admin endpoints
	adm := ag.Group("", roleGateMiddleware(api.svc, user.RoleAdmin))
	adm.GET("", api.query)
	adm.GET("/pending", api.queryPending)
	adm.POST("", api.provision)
	adm.PUT("/:id/approve", api.approve)
	adm.DELETE("/:id", api.destroy)
}

// Handlers

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, claims, err := authenticate(data.Username, api.svc)
	if err != nil {
		if errors.Cause(err) == errAuthenticationFailed {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api *userApi) register(ctx echo.Context) error {
	var data user.RegisterUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(); err != nil {
		return errors.Wrap(err, "logging user out")
	}
	return ctx.JSON(http.StatusOK, LandingResponse{Landing: user.LoginPath})
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.User{})
	}
	filter.Clean()

	users, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) queryPending(ctx echo.Context) error {
	pending := user.StatusPending
	users, err := api.svc.Filter(user.QueryFilter{Status: &pending})
	if err != nil {
		return errors.Wrap(err, "querying pending users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) provision(ctx echo.Context) error {
	var data user.ProvisionUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProvisionUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Provision(data)
	if err != nil {
		return errors.Wrap(err, "provisioning user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) approve(ctx echo.Context) error {
	usr, err := api.svc.Approve(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "approving user")
	}
	if usr.ID == "" { // unknown id; deliberate no-op
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	// deletion is irreversible; the caller must confirm explicitly
	if ctx.QueryParam("confirm") != "true" {
		return core.NewValidationError(errors.New("deletion requires confirm=true"))
	}

	// Say No to Suicide! ctxUser cannot delete themselves
	ctxUsr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if ctx.Param("id") == ctxUsr.ID {
		return errHttpForbidden
	}

	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
