package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/user"
)

type memberApi struct {
	svc     member.Service
	userSvc user.Service
}

func registerMemberAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc member.Service, userSvc user.Service) {
	api := memberApi{svc: svc, userSvc: userSvc}

	mg := g.Group("/members", jwt, staffMiddleware())
	mg.POST("", api.create)
	mg.GET("", api.query)
	mg.GET("/expiring", api.expiring)
	mg.POST("/deactivate-expired", api.deactivateExpired, adminMiddleware(user.RoleManager))

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy, adminMiddleware(user.RoleManager))
	dg.POST("/complete-session", api.completeSession)
	dg.POST("/refresh-status", api.refreshStatus)
}

func (api *memberApi) create(ctx echo.Context) error {
	var data member.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}

	mbr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating member")
	}
	return ctx.JSON(http.StatusCreated, mbr)
}

func (api *memberApi) query(ctx echo.Context) error {
	filter := new(member.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []member.Member{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	members, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}
	if members == nil {
		members = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *memberApi) retrieve(ctx echo.Context) error {
	mbr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) update(ctx echo.Context) error {
	var data member.UpdateMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}

	mbr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if err = data.Validate(ctx.Request().Context(), mbr, api.svc); err != nil {
		return err
	}

	mbr, err = api.svc.Update(ctx.Request().Context(), mbr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating member")
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *memberApi) completeSession(ctx echo.Context) error {
	mbr, err := api.svc.CompleteSession(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) refreshStatus(ctx echo.Context) error {
	mbr, err := api.svc.RefreshStatus(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) expiring(ctx echo.Context) error {
	days := 30
	if v := ctx.QueryParam("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid days parameter")
		}
		days = parsed
	}

	members, err := api.svc.ExpiringWithin(ctx.Request().Context(), days)
	if err != nil {
		return errors.Wrap(err, "querying expiring members")
	}
	if members == nil {
		members = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *memberApi) deactivateExpired(ctx echo.Context) error {
	cnt, err := api.svc.DeactivateExpired(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "deactivating expired members")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"deactivated": cnt})
}
