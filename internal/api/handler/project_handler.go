package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nhanstudio/portfolio-api/internal/api/metrics"
	"github.com/nhanstudio/portfolio-api/internal/core/authz"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns every project, newest first.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  Envelope{data=[]projectResponse}
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	views, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toProjectResponses(views))
}

// Get returns a single project.
//
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  Envelope{data=projectResponse}
// @Failure      404  {object}  Envelope
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	view, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toProjectResponse(view))
}

// Create adds a project owned by the caller.
//
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  Envelope{data=projectResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.projectService.Create(c.Request().Context(), p, req.toInput())
	metrics.ObserveAuthz(string(authz.ActionCreate), err)
	if err != nil {
		return err
	}

	metrics.ProjectMutationsTotal.WithLabelValues("create").Inc()
	return respond(c, http.StatusCreated, "Project created successfully", toProjectResponse(view))
}

// Update changes the fields present in the body.
//
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Project ID"
// @Param        body  body      projectRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{data=projectResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.projectService.Update(c.Request().Context(), p, c.Param("id"), req.toPatch())
	metrics.ObserveAuthz(string(authz.ActionUpdate), err)
	if err != nil {
		return err
	}

	metrics.ProjectMutationsTotal.WithLabelValues("update").Inc()
	return respond(c, http.StatusOK, "Project updated successfully", toProjectResponse(view))
}

// Delete removes a project.
//
// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	err = h.projectService.Delete(c.Request().Context(), p, c.Param("id"))
	metrics.ObserveAuthz(string(authz.ActionDelete), err)
	if err != nil {
		return err
	}

	metrics.ProjectMutationsTotal.WithLabelValues("delete").Inc()
	return respond(c, http.StatusOK, "Project deleted successfully", nil)
}
