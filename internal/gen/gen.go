// Package gen renders forwarding types that implement interfaces
// by dispatching every method to a delegate.Proxy.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"sort"
	"strings"
	"text/template"
	"unicode"
)

const delegatePath = "github.com/miruken-go/delegate"

type (
	file struct {
		Package    string
		Imports    []string
		Forwarders []forwarder
	}

	forwarder struct {
		Iface   string
		Type    string
		Methods []method
	}

	method struct {
		Var     string
		Name    string
		Params  string
		Results string
		Body    string
	}

	generator struct {
		pkg     *types.Package
		imports map[string]string
	}
)

// Generate returns the formatted source of forwarding types for the
// interfaces named names declared in pkg.  Each forwarding type
// registers itself with delegate.Synthesize when the package loads.
func Generate(pkg *types.Package, names ...string) ([]byte, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("gen: no interfaces to generate")
	}
	g := &generator{pkg: pkg, imports: map[string]string{delegatePath: "delegate"}}
	f := file{Package: pkg.Name()}
	for _, name := range names {
		fwd, err := g.forwarder(name)
		if err != nil {
			return nil, err
		}
		f.Forwarders = append(f.Forwarders, fwd)
	}
	for path := range g.imports {
		f.Imports = append(f.Imports, path)
	}
	sort.Strings(f.Imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("gen: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: %w", err)
	}
	return src, nil
}

func (g *generator) forwarder(name string) (forwarder, error) {
	obj := g.pkg.Scope().Lookup(name)
	if obj == nil {
		return forwarder{}, fmt.Errorf("gen: %s not found in %s", name, g.pkg.Path())
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return forwarder{}, fmt.Errorf("gen: %s is not a type", name)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return forwarder{}, fmt.Errorf("gen: %s is not a named type", name)
	}
	if named.TypeParams().Len() > 0 {
		return forwarder{}, fmt.Errorf("gen: generic interface %s is not supported", name)
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return forwarder{}, fmt.Errorf("gen: %s is not an interface", name)
	}

	prefix := lowerFirst(name)
	fwd    := forwarder{Iface: name, Type: prefix + "Proxy"}
	for i := 0; i < iface.NumMethods(); i++ {
		fn := iface.Method(i)
		if !fn.Exported() {
			return forwarder{}, fmt.Errorf("gen: %s has unexported method %s", name, fn.Name())
		}
		fwd.Methods = append(fwd.Methods,
			g.method(prefix+fn.Name(), fn.Name(), fn.Type().(*types.Signature)))
	}
	return fwd, nil
}

func (g *generator) method(
	v    string,
	name string,
	sig  *types.Signature,
) method {
	params := sig.Params()
	decl   := make([]string, params.Len())
	args   := make([]string, params.Len())
	for i := range decl {
		arg := fmt.Sprintf("a%d", i)
		typ := params.At(i).Type()
		if sig.Variadic() && i == params.Len()-1 {
			decl[i] = arg + " ..." + g.typeString(typ.(*types.Slice).Elem())
		} else {
			decl[i] = arg + " " + g.typeString(typ)
		}
		args[i] = arg
	}

	call := "(d.Proxy, " + v
	if len(args) > 0 {
		call += ", " + strings.Join(args, ", ")
	}
	call += ")"

	res  := sig.Results()
	outs := make([]string, res.Len())
	for i := range outs {
		outs[i] = g.typeString(res.At(i).Type())
	}

	m := method{Var: v, Name: name, Params: strings.Join(decl, ", ")}
	switch {
	case len(outs) == 0:
		m.Body = "delegate.Call0" + call
	case len(outs) == 1 && isError(res.At(0).Type()):
		m.Body = "return delegate.CallErr" + call
	case len(outs) == 1:
		m.Body = fmt.Sprintf("return delegate.Call1[%s]%s", outs[0], call)
	case len(outs) == 2 && isError(res.At(1).Type()):
		m.Body = fmt.Sprintf("return delegate.Call1Err[%s]%s", outs[0], call)
	case len(outs) == 2:
		m.Body = fmt.Sprintf("return delegate.Call2[%s, %s]%s", outs[0], outs[1], call)
	default:
		rets := make([]string, len(outs))
		for i, out := range outs {
			rets[i] = fmt.Sprintf("delegate.Result[%s](out, %d)", out, i)
		}
		m.Body = "out := delegate.CallN" + call + "\n\treturn " + strings.Join(rets, ", ")
	}
	switch len(outs) {
	case 0:
	case 1:
		m.Results = outs[0]
	default:
		m.Results = "(" + strings.Join(outs, ", ") + ")"
	}
	return m
}

func (g *generator) typeString(typ types.Type) string {
	return types.TypeString(typ, g.qualify)
}

func (g *generator) qualify(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == g.pkg.Path() {
		return ""
	}
	g.imports[pkg.Path()] = pkg.Name()
	return pkg.Name()
}

func isError(typ types.Type) bool {
	return types.Identical(typ, types.Universe.Lookup("error").Type())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

var fileTemplate = template.Must(template.New("file").Parse(
`// Code generated by delegategen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{range $f := .Forwarders}}
// {{$f.Type}} forwards the methods of {{$f.Iface}} to a delegate chain.
type {{$f.Type}} struct {
	*delegate.Proxy
}

var (
{{- range $f.Methods}}
	{{.Var}} = delegate.MethodOf[{{$f.Iface}}]("{{.Name}}")
{{- end}}
)
{{range $f.Methods}}
func (d {{$f.Type}}) {{.Name}}({{.Params}}) {{.Results}} {
	{{.Body}}
}
{{end}}
func init() {
	delegate.Synthesize(func(p *delegate.Proxy) {{$f.Iface}} {
		return {{$f.Type}}{p}
	})
}
{{end}}`))
