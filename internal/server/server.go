// Package server serves report previews, printable PDFs and schedule
// workbooks for analysis tasks.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
	"github.com/alexiusacademia/gorcdraft/internal/client"
	"github.com/alexiusacademia/gorcdraft/internal/floor"
	"github.com/alexiusacademia/gorcdraft/internal/printout"
	"github.com/alexiusacademia/gorcdraft/internal/report"
	"github.com/alexiusacademia/gorcdraft/internal/schedule"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SnapshotLoader fetches a floor's stored analysis state.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, taskID string, id floor.ID) (*client.Snapshot, bs8110.Settings, error)
}

// Handlers holds the dependencies of the HTTP handlers.
type Handlers struct {
	Reports   report.Fetcher
	Snapshots SnapshotLoader
	Budget    float64 // page height budget, 0 = default
}

// New builds the fiber app with all routes registered.
func New(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "gorcdraft report preview",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/reports/:taskId", h.ReportHTML)
	app.Get("/reports/:taskId/pdf", h.ReportPDF)
	app.Get("/schedules/:taskId/:file", h.Schedule)

	return app
}

func (h *Handlers) generate(ctx context.Context, taskID string, m report.Measurer) (*report.Report, error) {
	gen := report.Generator{Fetcher: h.Reports, Measurer: m, Budget: h.Budget}
	return gen.Generate(ctx, taskID)
}

// ReportHTML renders the paginated report. ?band=1-80 or ?band=all picks
// the visible pages.
func (h *Handlers) ReportHTML(c fiber.Ctx) error {
	taskID := c.Params("taskId")
	rep, err := h.generate(c.Context(), taskID, nil)
	if err != nil {
		return fail(c, err)
	}

	sel := report.DefaultSelection(len(rep.Pages))
	if band := c.Query("band"); band != "" {
		if sel, err = report.ParseSelection(band); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	var buf bytes.Buffer
	if err := printout.WriteHTML(&buf, rep, sel); err != nil {
		log.Printf("[SERVE] render report %s: %v", taskID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// ReportPDF renders the report as an A4 PDF, paginated with the PDF fonts.
func (h *Handlers) ReportPDF(c fiber.Ctx) error {
	taskID := c.Params("taskId")
	rep, err := h.generate(c.Context(), taskID, printout.NewPDFMeasurer())
	if err != nil {
		return fail(c, err)
	}

	opts := printout.PDFOptions{}
	if band := c.Query("band"); band != "" {
		if opts.Selection, err = report.ParseSelection(band); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	var buf bytes.Buffer
	if err := printout.WritePDF(&buf, rep, opts); err != nil {
		log.Printf("[SERVE] render pdf %s: %v", taskID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`inline; filename="report-%s.pdf"`, taskID))
	return c.Send(buf.Bytes())
}

// Schedule returns a floor's beam and slab schedule: GF.xlsx as a workbook,
// plain GF as JSON.
func (h *Handlers) Schedule(c fiber.Ctx) error {
	taskID := c.Params("taskId")
	name, asXLSX := strings.CutSuffix(c.Params("file"), ".xlsx")
	id, err := floor.ParseID(name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	snap, _, err := h.Snapshots.LoadSnapshot(c.Context(), taskID, id)
	if err != nil {
		return fail(c, err)
	}
	s := schedule.Build(taskID, id, snap)
	if !asXLSX {
		return c.JSON(s)
	}

	var buf bytes.Buffer
	if err := schedule.WriteXLSX(&buf, s); err != nil {
		log.Printf("[SERVE] export schedule %s/%s: %v", taskID, id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", xlsxType)
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%s-%s.xlsx"`, taskID, id))
	return c.Send(buf.Bytes())
}

// fail maps upstream errors to a status: a missing task is 404, other
// analysis service failures are 502.
func fail(c fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	var se *client.StatusError
	switch {
	case errors.Is(err, report.ErrMissingTaskID):
		status = fiber.StatusBadRequest
	case errors.As(err, &se) && se.Code == fiber.StatusNotFound:
		status = fiber.StatusNotFound
	}
	log.Printf("[SERVE] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
