/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright Contributors to the pcresolve project. */

// Package browse implements the optional "pcresolve browse" subcommand: an
// interactive gocui terminal window listing every module on the search
// path, with a detail pane showing the resolved dependency closure and
// aggregated flags for whichever module is selected. It is an enrichment
// over the flag-emitting CLI queries (see SPEC_FULL.md §12.1): it adds no
// new semantics, only a different presentation of the same
// cmd/registry/cmd/resolver/cmd/aggregator calls, grounded on
// cmd/ui/eula.go's LicenseWindowType layout/key-binding pattern.
package browse

import (
	"fmt"
	"strings"

	"github.com/cbuildtools/pcresolve/cmd/aggregator"
	"github.com/cbuildtools/pcresolve/cmd/registry"
	"github.com/cbuildtools/pcresolve/cmd/requirement"
	"github.com/cbuildtools/pcresolve/cmd/resolver"
	"github.com/jroimartin/gocui"
	log "github.com/sirupsen/logrus"
)

const (
	listViewName   = "modules"
	detailViewName = "detail"
	marginSize     = 1
	listWidth      = 30
)

// window holds the state the gocui LayoutManager closure and key bindings
// share: the registry to query, the entries to list, and which one is
// currently selected.
type window struct {
	gui *gocui.Gui
	r   *registry.Registry

	entries  []registry.ListEntry
	selected int
}

// Run lists every module found by the registry's search path and opens an
// interactive browser over it. If preselect is non-empty, the browser
// opens with that module already selected and its detail pane populated.
func Run(r *registry.Registry, preselect string) error {
	entries, err := r.ListAll()
	if err != nil {
		return err
	}

	w := &window{r: r, entries: entries}
	if preselect != "" {
		for i, e := range entries {
			if e.Name == preselect {
				w.selected = i
				break
			}
		}
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Error("Cannot initialize UI: ", err)
		return err
	}
	defer g.Close()

	w.gui = g
	g.SetManagerFunc(w.layout)
	g.Cursor = false

	if err := w.bindKeys(); err != nil {
		return err
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// layout lays out two side-by-side views, matching eula.go's pattern of
// computing view rectangles from the terminal size on every redraw:
//
// +-modules---+-detail----------------+
// | foo       | Name: foo             |
// | *bar      | Version: 1.2          |
// | baz       | Requires: quux        |
// |           | Cflags: -I/usr/inc    |
// +-----------+------------------------+
func (w *window) layout(g *gocui.Gui) error {
	width, height := g.Size()

	if v, err := g.SetView(listViewName, 0, 0, listWidth, height-marginSize); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "modules"
		v.Highlight = true
		v.SelBgColor = gocui.ColorGreen
		v.SelFgColor = gocui.ColorBlack
	}

	if v, err := g.SetView(detailViewName, listWidth+marginSize, 0, width-marginSize, height-marginSize); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "detail"
		v.Wrap = true
	}

	w.renderList()
	w.renderDetail()

	_, err := g.SetCurrentView(listViewName)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	return nil
}

func (w *window) renderList() {
	v, err := w.gui.View(listViewName)
	if err != nil {
		return
	}
	v.Clear()
	for i, e := range w.entries {
		marker := " "
		if i == w.selected {
			marker = "*"
		}
		fmt.Fprintf(v, "%s%s\n", marker, e.Name)
	}
}

func (w *window) renderDetail() {
	v, err := w.gui.View(detailViewName)
	if err != nil || len(w.entries) == 0 {
		return
	}
	v.Clear()

	name := w.entries[w.selected].Name
	seed, err := requirement.Parse(name)
	if err != nil {
		fmt.Fprintf(v, "%s\n", err)
		return
	}

	res, err := resolver.Resolve(seed, w.r)
	if err != nil {
		fmt.Fprintf(v, "%s: %s\n", name, err)
		return
	}

	fmt.Fprintf(v, "Name: %s\n", name)
	if len(res.Packages) > 0 {
		fmt.Fprintf(v, "Version: %s\n", res.Packages[0].Version)
		fmt.Fprintf(v, "Description: %s\n\n", res.Packages[0].Description)
	}

	var deps []string
	for _, pkg := range res.Packages[1:] {
		deps = append(deps, pkg.Key)
	}
	fmt.Fprintf(v, "Requires (closure): %s\n\n", strings.Join(deps, ", "))

	fmt.Fprintf(v, "Cflags: %s\n", aggregator.Render(res, aggregator.KindCflags, aggregator.Options{}))
	fmt.Fprintf(v, "Libs: %s\n", aggregator.Render(res, aggregator.KindLibs, aggregator.Options{}))
}

func (w *window) moveSelection(delta int) error {
	if len(w.entries) == 0 {
		return nil
	}
	w.selected += delta
	if w.selected < 0 {
		w.selected = 0
	}
	if w.selected >= len(w.entries) {
		w.selected = len(w.entries) - 1
	}
	w.renderList()
	w.renderDetail()
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (w *window) bindKeys() error {
	bindings := []struct {
		key     interface{}
		handler func(g *gocui.Gui, v *gocui.View) error
	}{
		{gocui.KeyArrowDown, func(g *gocui.Gui, v *gocui.View) error { return w.moveSelection(1) }},
		{gocui.KeyArrowUp, func(g *gocui.Gui, v *gocui.View) error { return w.moveSelection(-1) }},
		{'j', func(g *gocui.Gui, v *gocui.View) error { return w.moveSelection(1) }},
		{'k', func(g *gocui.Gui, v *gocui.View) error { return w.moveSelection(-1) }},
		{'q', quit},
	}

	for _, b := range bindings {
		if err := w.gui.SetKeybinding(listViewName, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return w.gui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit)
}
