package hdl

import (
	"bytes"
	"fmt"
	"text/template"
)

// indented pairs an instance with the prefix its lines are written at.
type indented struct {
	Prefix string
	Instance
}

var moduleTmpl = template.Must(template.New("module").Funcs(template.FuncMap{
	"last":   func(i, n int) bool { return i == n-1 },
	"width":  Range,
	"indent": func(prefix string, in Instance) indented { return indented{Prefix: prefix, Instance: in} },
}).Parse(`
{{- define "instance"}}
{{- with .Comment}}
{{$.Prefix}}// {{.}}
{{- end}}
{{- if .Params}}
{{.Prefix}}{{.Primitive}} #(
{{- $np := len .Params}}
{{- range $i, $p := .Params}}
{{$.Prefix}}    .{{$p.Name}}({{$p.Value}}){{if not (last $i $np)}},{{end}}
{{- end}}
{{.Prefix}}) {{.Name}} (
{{- else}}
{{.Prefix}}{{.Primitive}} {{.Name}} (
{{- end}}
{{- $nc := len .Conns}}
{{- range $i, $c := .Conns}}
{{$.Prefix}}    .{{$c.Port}}({{$c.Expr}}){{if not (last $i $nc)}},{{end}}
{{- end}}
{{.Prefix}});
{{- end}}

{{- range .Header}}// {{.}}
{{end}}
module {{.Name}} (
{{- $n := len .Ports}}
{{- range $i, $p := .Ports}}
    {{$p.Decl}}{{if not (last $i $n)}},{{end}}{{with $p.Comment}} // {{.}}{{end}}
{{- end}}
);
{{- if .Localparams}}
{{range .Localparams}}
    localparam {{.Name}} = {{.Value}};
{{- end}}
{{- end}}
{{- if or .Wires .Regs}}
{{range .Wires}}
    wire {{with width .Width}}{{.}} {{end}}{{.Name}};{{with .Comment}} // {{.}}{{end}}
{{- end}}
{{- range .Regs}}
    reg  {{with width .Width}}{{.}} {{end}}{{.Name}};{{with .Comment}} // {{.}}{{end}}
{{- end}}
{{- end}}
{{- range .Instances}}
{{template "instance" (indent "    " .)}}
{{- end}}
{{- range .Loops}}

    genvar {{.Var}};
    generate
        for ({{.Var}} = 0; {{.Var}} < {{.Count}}; {{.Var}} = {{.Var}} + 1) begin : {{.Label}}
{{- template "instance" (indent "            " .Instance)}}
        end
    endgenerate
{{- end}}
{{- if .Assigns}}
{{range .Assigns}}
    assign {{.LHS}} = {{.RHS}};
{{- end}}
{{- end}}
{{- range .Blocks}}

{{.}}
{{- end}}

endmodule
`))

// Render validates the module and returns its Verilog source.
func Render(m *Module) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := moduleTmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render module %s: %w", m.Name, err)
	}
	return buf.String(), nil
}
