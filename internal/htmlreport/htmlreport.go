// Package htmlreport renders the static HTML dependency report: one
// index.html listing every component alphabetically, and one
// <component>.html per component with its outgoing and incoming
// dependency sections. Rendered with the standard library's
// html/template rather than a third-party templating package -- no
// third-party HTML templating library fits this use case any better,
// and the standard package is what terragrunt uses for its own HTML
// reports.
package htmlreport

import (
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cppdep/cppdep/internal/depgraph"
	"github.com/cppdep/cppdep/internal/query"
)

const style = `
body {
	font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
	margin: 2em;
}
ul {
	font-family: monospace;
}
details {
	font-family: monospace;
	margin-bottom: 0.2em;
}
.dep-count {
	color: #aaa;
}
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>C/C++ Component Dependencies</title>
<style>{{.Style}}</style>
</head>
<body>
<h1>C/C++ Component Dependencies</h1>
<ul>
{{range .Components}}<li>{{.Name}} <a href="{{.File}}">[go]</a></li>
{{end}}</ul>
</body>
</html>
`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Name}}</title>
<style>{{.Style}}</style>
</head>
<body>
<h1>{{.Name}}</h1>
<h2>Outgoing Dependencies</h2>
{{template "deps" .Outgoing}}
<h2>Incoming Dependencies</h2>
{{template "deps" .Incoming}}
</body>
</html>
{{define "deps"}}
{{range .}}<details>
<summary>{{.Name}} <span class="dep-count">({{.Count}})</span> <a href="{{.File}}">[go]</a></summary>
<ul>
{{range .Edges}}<li>{{.From}} &#8594; {{.To}}</li>
{{end}}</ul>
</details>
{{end}}
{{end}}
`))

type componentLink struct {
	Name string
	File string
}

type edgeRow struct {
	From string
	To   string
}

type depGroup struct {
	Name  string
	File  string
	Count int
	Edges []edgeRow
}

// fileName sanitizes a component's nice name into a safe filename,
// replacing "/" with "__" (component names containing a path separator
// would otherwise collide with directory structure).
func fileName(niceName string) string {
	return strings.ReplaceAll(niceName, "/", "__") + ".html"
}

// Export writes index.html plus one <component>.html per component
// under dir, creating it if necessary.
func Export(q *query.Facade, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	comps := q.Components()
	order := sortedComponentRefs(comps)

	links := make([]componentLink, len(order))
	for i, ref := range order {
		links[i] = componentLink{Name: comps[ref].NiceName(), File: fileName(comps[ref].NiceName())}
	}

	indexFile, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return err
	}
	defer indexFile.Close()
	if err := indexTemplate.Execute(indexFile, struct {
		Style      template.CSS
		Components []componentLink
	}{template.CSS(style), links}); err != nil {
		return err
	}

	for _, ref := range order {
		if err := exportComponent(q, ref, dir); err != nil {
			return err
		}
	}
	return nil
}

func exportComponent(q *query.Facade, c depgraph.ComponentRef, dir string) error {
	comps := q.Components()
	name := comps[c].NiceName()

	incoming, outgoing := q.LinkedComponents(c, false)

	f, err := os.Create(filepath.Join(dir, fileName(name)))
	if err != nil {
		return err
	}
	defer f.Close()

	return pageTemplate.Execute(f, struct {
		Style    template.CSS
		Name     string
		Outgoing []depGroup
		Incoming []depGroup
	}{
		Style:    template.CSS(style),
		Name:     name,
		Outgoing: depGroups(q, outgoing),
		Incoming: depGroups(q, incoming),
	})
}

func depGroups(q *query.Facade, m map[depgraph.ComponentRef][]depgraph.Edge) []depGroup {
	comps := q.Components()
	files := q.Files()

	keys := make([]depgraph.ComponentRef, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return comps[keys[i]].Path < comps[keys[j]].Path })

	groups := make([]depGroup, len(keys))
	for i, k := range keys {
		edges := m[k]
		rows := make([]edgeRow, len(edges))
		for j, e := range edges {
			rows[j] = edgeRow{From: files[e.From].Path, To: files[e.To].Path}
		}
		groups[i] = depGroup{
			Name:  comps[k].NiceName(),
			File:  fileName(comps[k].NiceName()),
			Count: len(edges),
			Edges: rows,
		}
	}
	return groups
}

func sortedComponentRefs(comps []depgraph.Component) []depgraph.ComponentRef {
	refs := make([]depgraph.ComponentRef, len(comps))
	for i := range comps {
		refs[i] = depgraph.ComponentRef(i)
	}
	sort.Slice(refs, func(i, j int) bool { return comps[refs[i]].Path < comps[refs[j]].Path })
	return refs
}
