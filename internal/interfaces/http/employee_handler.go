package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/application/usecase"
)

// EmployeeHandler empleados del actor (/users/employees) y plantilla en PDF.
type EmployeeHandler struct {
	uc     *usecase.EmployeeUseCase
	roster *usecase.RosterUseCase
}

// NewEmployeeHandler construye el handler de empleados.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, roster *usecase.RosterUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, roster: roster}
}

// List godoc
// @Summary      Listar empleados propios
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Alta de empleado
// @Description  El empleador es siempre la cuenta autenticada. Rol por defecto: worker.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateEmployeeRequest  true  "email, first_name, role"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", msgInvalidBody)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado propio
// @Tags         employees
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado propio (PUT completo, PATCH parcial)
// @Description  El rol es editable; los permisos se recalculan.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "campos del empleado"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/employees/{id} [put]
// @Router       /api/users/employees/{id} [patch]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", msgInvalidBody)
	}
	partial := c.Method() == fiber.MethodPatch
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in, partial)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado propio
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Plantilla de personal en PDF
// @Tags         employees
// @Produce      application/pdf
// @Security     Bearer
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/employees/report [get]
func (h *EmployeeHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.roster.Download(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
