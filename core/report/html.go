package report

import (
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
)

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0; }
p.meta { color: #777; margin-top: .25rem; }
h2 { margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: .25rem; }
table { border-collapse: collapse; margin-top: .5rem; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; text-align: left; }
th { background: #f5f5f5; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated on {{.Date}}</p>
{{range .Sections}}
<h2>{{.Name}}</h2>
<table>
{{range $i, $row := .Rows}}{{if $row}}<tr>{{range $row}}{{if eq $i 0}}<th>{{.}}</th>{{else}}<td>{{.}}</td>{{end}}{{end}}</tr>
{{end}}{{end}}</table>
{{end}}
</body>
</html>
`))

type (
	htmlSection struct {
		Name string
		Rows [][]string
	}

	htmlReport struct {
		Title    string
		Date     string
		Sections []htmlSection
	}
)

func (svc *service) renderHTML(typ Type, snap *snapshot, w io.Writer) error {
	data := htmlReport{Date: core.Today().String()}

	switch typ {
	case TypeMembers:
		data.Title = "FitHub Members Report"
		data.Sections = []htmlSection{{Name: "Members", Rows: memberRows(snap.members)}}
	case TypeClasses:
		data.Title = "FitHub Classes Report"
		data.Sections = []htmlSection{{Name: "Classes", Rows: classRows(snap.classes)}}
	case TypeTrainers:
		data.Title = "FitHub Trainers Report"
		data.Sections = []htmlSection{{Name: "Trainers", Rows: trainerRows(snap.trainers)}}
	case TypeAnalytics:
		data.Title = "FitHub Analytics Report"
		data.Sections = []htmlSection{{Name: "Key Metrics", Rows: dashboardRows(snap.dashboard)}}
	case TypeFinancial:
		data.Title = "FitHub Financial Report"
		data.Sections = []htmlSection{{Name: "Financials", Rows: financialRows(snap.financial)}}
	case TypeComprehensive:
		data.Title = "FitHub Comprehensive Report"
		data.Sections = []htmlSection{
			{Name: "Key Metrics", Rows: dashboardRows(snap.dashboard)},
			{Name: "Members", Rows: memberRows(snap.members)},
			{Name: "Classes", Rows: classRows(snap.classes)},
			{Name: "Trainers", Rows: trainerRows(snap.trainers)},
			{Name: "Financials", Rows: financialRows(snap.financial)},
		}
	default:
		return ErrUnknownReport
	}

	return errors.Wrap(reportTmpl.Execute(w, data), "rendering html report")
}
