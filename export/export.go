// Package export renders the parameter table as a Markdown sheet and patches
// as C headers for embedding into other programs.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/bruv1700/fox3osc"
)

//go:embed templates/*
var templateFS embed.FS

type (
	Exporter struct {
		Template *template.Template
	}

	paramRow struct {
		ID       int
		Name     string
		Min, Max string
		Default  string
		Stepped  bool
	}

	paramValue struct {
		Name    string
		Macro   string
		Literal string
		Display string
	}
)

// New returns an exporter using the built-in templates.
func New() (*Exporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Exporter{Template: tmpl}, nil
}

// NewFromTemplates parses params.md and patch.h from templateDirectory.
func NewFromTemplates(templateDirectory string) (*Exporter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	return &Exporter{Template: tmpl}, nil
}

// Sheet renders the table of every parameter.
func (e *Exporter) Sheet() (string, error) {
	rows := make([]paramRow, 0, fox3osc.NumParams)
	for id := fox3osc.ParamID(0); id < fox3osc.NumParams; id++ {
		info, _ := id.Info()
		rows = append(rows, paramRow{
			ID:      int(id),
			Name:    info.Name,
			Min:     display(id, info.Min),
			Max:     display(id, info.Max),
			Default: display(id, info.Default),
			Stepped: info.Stepped,
		})
	}
	var waveforms, modulations []string
	for w := fox3osc.Sine; w <= fox3osc.Random; w++ {
		waveforms = append(waveforms, w.DisplayName())
	}
	for m := fox3osc.ModulationOff; m <= fox3osc.ModulationEvil; m++ {
		modulations = append(modulations, m.DisplayName())
	}
	data := struct {
		Params      []paramRow
		Waveforms   []string
		Modulations []string
		Divisions   []int
	}{rows, waveforms, modulations, fox3osc.SupportedDivisions[:]}
	return e.execute("params.md", &data)
}

// Patch renders p as a C header. name is used in the include guard and the
// array name.
func (e *Exporter) Patch(name string, p *fox3osc.Params) (string, error) {
	values := make([]paramValue, 0, fox3osc.NumParams)
	for id := fox3osc.ParamID(0); id < fox3osc.NumParams; id++ {
		v := p.Param(id)
		values = append(values, paramValue{Name: id.String(), Macro: strings.ToUpper(ident(id.String())), Literal: cFloat(v), Display: display(id, v)})
	}
	data := struct {
		Name   string
		Ident  string
		Values []paramValue
	}{name, ident(name), values}
	return e.execute("patch.h", &data)
}

func (e *Exporter) execute(templateName string, data any) (string, error) {
	result := bytes.NewBufferString("")
	if err := e.Template.ExecuteTemplate(result, templateName, data); err != nil {
		return "", fmt.Errorf(`could not execute template "%v": %v`, templateName, err)
	}
	return result.String(), nil
}

func display(id fox3osc.ParamID, v float64) string {
	value, unit := id.Display(v)
	if unit == "" {
		return value
	}
	return value + " " + unit
}

// ident turns s into a C identifier, replacing every run of other characters
// with a single underscore.
func ident(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case !underscore:
			b.WriteByte('_')
			underscore = true
		}
	}
	ret := strings.Trim(b.String(), "_")
	if ret == "" {
		return "patch"
	}
	if ret[0] >= '0' && ret[0] <= '9' {
		ret = "p" + ret
	}
	return ret
}

func cFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + "f"
}
