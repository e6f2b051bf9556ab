package main

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

var funcMap = template.FuncMap{
	"goName":    goName,
	"quote":     func(s string) string { return fmt.Sprintf("%q", s) },
	"quoteList": quoteList,
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(kindsTmpl))

// kindsData is the input of the kinds template.
type kindsData struct {
	Package string
	Classes []string
	Kinds   []RawKind
}

// GenerateKinds renders the Go source for the kind table.
func GenerateKinds(def *RawKinds, pkg string) (string, error) {
	var b strings.Builder
	data := kindsData{Package: pkg, Classes: def.Classes(), Kinds: def.Kinds}
	if err := templates.ExecuteTemplate(&b, "kinds", data); err != nil {
		return "", fmt.Errorf("template kinds: %w", err)
	}
	return b.String(), nil
}

// goName converts "Horizontal_Corrector" to "HorizontalCorrector" and
// "drift" to "Drift".
func goName(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

const kindsTmpl = `{{define "kinds"}}// Code generated by nala-kindgen. DO NOT EDIT.

package {{.Package}}

// Hardware classes.
const (
{{- range .Classes}}
	Class{{goName .}} = {{quote .}}
{{- end}}
)

// Hardware types.
const (
{{- range $i, $k := .Kinds}}
{{- if $i}}
{{end}}
{{- if $k.Description}}
	// Type{{goName $k.Type}}: {{$k.Description}}.
{{- end}}
	Type{{goName $k.Type}} = {{quote $k.Type}}
{{- end}}
)

var kindTable = []Kind{
{{- range .Kinds}}
	{
		Type:        Type{{goName .Type}},
		Class:       Class{{goName .Class}},
		Model:       {{quote .Model}},
{{- if .Aliases}}
		Aliases:     []string{ {{- quoteList .Aliases -}} },
{{- end}}
		Description: {{quote .Description}},
	},
{{- end}}
}
{{end}}`
