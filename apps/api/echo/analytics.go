package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core/analytics"
	"github.com/sajidbaba1/fithub/core/user"
)

type analyticsApi struct {
	svc analytics.Service
}

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc analytics.Service) {
	api := analyticsApi{svc: svc}

	ag := g.Group("/analytics", jwt)
	ag.GET("/overview", api.overview)
	ag.GET("/dashboard", api.dashboard, staffMiddleware())
	ag.GET("/members", api.members, staffMiddleware())
	ag.GET("/classes", api.classes)
	ag.GET("/trainers", api.trainers, adminMiddleware(user.RoleManager, user.RoleTrainer))
	ag.GET("/financial", api.financial, adminMiddleware(user.RoleManager))
}

// overview returns the slices the caller's role is entitled to see.
func (api *analyticsApi) overview(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	overview, err := api.svc.OverviewFor(ctx.Request().Context(), claims.Role)
	if err != nil {
		return errors.Wrap(err, "building analytics overview")
	}
	return ctx.JSON(http.StatusOK, overview)
}

func (api *analyticsApi) dashboard(ctx echo.Context) error {
	dash, err := api.svc.Dashboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *analyticsApi) members(ctx echo.Context) error {
	res, err := api.svc.Members(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building member analytics")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *analyticsApi) classes(ctx echo.Context) error {
	res, err := api.svc.Classes(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building class analytics")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *analyticsApi) trainers(ctx echo.Context) error {
	res, err := api.svc.Trainers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building trainer analytics")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *analyticsApi) financial(ctx echo.Context) error {
	res, err := api.svc.Financials(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building financial analytics")
	}
	return ctx.JSON(http.StatusOK, res)
}
