package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/user"
)

type classApi struct {
	svc class.Service
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc class.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes", jwt)
	cg.POST("", api.create, adminMiddleware(user.RoleManager, user.RoleTrainer))
	cg.GET("", api.query)
	cg.GET("/upcoming", api.upcoming)
	cg.GET("/today", api.today)
	cg.GET("/available", api.available)
	cg.GET("/popular", api.popular)
	cg.GET("/low-enrollment", api.lowEnrollment, staffMiddleware())
	cg.GET("/stats", api.stats, staffMiddleware())

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware(user.RoleManager, user.RoleTrainer))
	dg.DELETE("", api.destroy, adminMiddleware(user.RoleManager))
	dg.PATCH("/status", api.updateStatus, adminMiddleware(user.RoleManager, user.RoleTrainer))
	dg.POST("/enroll", api.enroll)
	dg.POST("/unenroll", api.unenroll)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) query(ctx echo.Context) error {
	filter := new(class.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []class.Class{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	classes, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) update(ctx echo.Context) error {
	var data class.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err := data.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	cls, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) updateStatus(ctx echo.Context) error {
	var data UpdateClassStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClassStatusRequest")
	}

	cls, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) enroll(ctx echo.Context) error {
	cls, err := api.svc.Enroll(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) unenroll(ctx echo.Context) error {
	cls, err := api.svc.Unenroll(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) upcoming(ctx echo.Context) error {
	return api.respondList(ctx, api.svc.Upcoming)
}

func (api *classApi) today(ctx echo.Context) error {
	return api.respondList(ctx, api.svc.TodaysClasses)
}

func (api *classApi) available(ctx echo.Context) error {
	return api.respondList(ctx, api.svc.Available)
}

func (api *classApi) popular(ctx echo.Context) error {
	return api.respondList(ctx, api.svc.Popular)
}

func (api *classApi) lowEnrollment(ctx echo.Context) error {
	return api.respondList(ctx, api.svc.LowEnrollment)
}

func (api *classApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing class stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *classApi) respondList(ctx echo.Context, list func(c context.Context) ([]class.Class, error)) error {
	classes, err := list(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

type UpdateClassStatusRequest struct {
	Status string `json:"status"`
}
