// Package app wires calendar loading, view assembly and rendering into
// the single "calendar in, document out" operation shared by the CLI,
// the preview server and watch mode.
package app

import (
	"context"
	"fmt"
	"time"

	"hellocal/internal/config"
	"hellocal/internal/ics"
	"hellocal/internal/itinerary"
	appLog "hellocal/internal/log"
	"hellocal/internal/model"
	"hellocal/internal/render"
)

// Generator produces the document for one calendar location.
type Generator struct {
	Calendar string
	cfg      *config.Config
	location *time.Location
}

// Result describes one generated document.
type Result struct {
	View         *model.CalendarView
	TemplatePath string
	OutputPath   string
	HTML         string
}

// NewGenerator resolves the floating timezone from cfg.
func NewGenerator(cfg *config.Config, calendar string) (*Generator, error) {
	if calendar == "" {
		return nil, fmt.Errorf("app: calendar location is empty")
	}
	g := &Generator{Calendar: calendar, cfg: cfg}
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("app: timezone %q: %w", cfg.Timezone, err)
		}
		g.location = loc
	}
	return g, nil
}

// Build loads the calendar and assembles its view.
func (g *Generator) Build(ctx context.Context) (*model.CalendarView, error) {
	appLog.Info("calendar", "source", g.Calendar)

	body, err := ics.Load(ctx, g.Calendar, g.cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	return itinerary.ParseBytes(body, itinerary.Options{
		Source:     g.Calendar,
		BracketTag: g.cfg.BracketTag,
		Location:   g.location,
	})
}

// Render builds the view and renders it without writing anything.
func (g *Generator) Render(ctx context.Context) (Result, error) {
	view, err := g.Build(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		View:         view,
		TemplatePath: render.TemplatePath(g.cfg.TemplateDir, view.Template, view.Lang),
		OutputPath:   render.OutputPath(g.cfg.OutputDir, ics.Name(g.Calendar)),
	}
	if res.HTML, err = render.Render(view, res.TemplatePath); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Generate renders the document and writes it to the output directory.
func (g *Generator) Generate(ctx context.Context, force bool) (Result, error) {
	res, err := g.Render(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := render.Write(res.OutputPath, res.HTML, force); err != nil {
		return Result{}, err
	}
	return res, nil
}
