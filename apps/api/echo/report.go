package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core/report"
	"github.com/sajidbaba1/fithub/core/user"
)

type reportApi struct {
	svc report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt, adminMiddleware(user.RoleManager))
	rg.GET("/:type", api.download)
}

// download streams the requested report as a file attachment. The format
// defaults to CSV.
func (api *reportApi) download(ctx echo.Context) error {
	typ, err := report.ParseType(ctx.Param("type"))
	if err != nil {
		return err
	}

	formatParam := ctx.QueryParam("format")
	if formatParam == "" {
		formatParam = "csv"
	}
	format, err := report.ParseFormat(formatParam)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = api.svc.Generate(ctx.Request().Context(), typ, format, &buf); err != nil {
		return errors.Wrap(err, "generating report")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", report.Filename(typ, format)))
	return ctx.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
