package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/application/usecase"
)

// AccountHandler maneja registro, perfil y listado de cuentas (/users).
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar cuenta (dueño de granja)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password1, password2, first_name"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", msgInvalidBody)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Cuenta autenticada
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.AccountResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cuentas
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        page           query  int     false  "página (1..)"
// @Param        page_size      query  int     false  "tamaño de página (máx. 100)"
// @Param        is_active      query  bool    false  "filtrar por estado"
// @Param        is_farm_owner  query  bool    false  "filtrar dueños"
// @Param        role           query  string  false  "owner|manager|veterinarian|worker|accountant"
// @Param        search         query  string  false  "email, nombre, apellido o granja"
// @Param        ordering       query  string  false  "email|date_joined|last_name, prefijo - para descendente"
// @Success      200  {object}  dto.AccountListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", msgInvalidQuery)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta por ID
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar perfil (PUT) o actualizar parcialmente (PATCH)
// @Description  Solo la propia cuenta o staff. Rol y permisos son de solo lectura.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "campos del perfil"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
// @Router       /api/users/{id} [patch]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
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
// @Summary      Eliminar cuenta (y sus empleados)
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseListQuery lee paginación y filtros. Booleanos inválidos son error.
func parseListQuery(c *fiber.Ctx) (dto.AccountListQuery, error) {
	q := dto.AccountListQuery{
		PageRequest: dto.PageRequest{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", 10),
		},
		Role:     strings.TrimSpace(c.Query("role")),
		Search:   c.Query("search"),
		Ordering: strings.TrimSpace(c.Query("ordering")),
	}
	var err error
	if q.IsActive, err = queryBool(c, "is_active"); err != nil {
		return q, err
	}
	if q.IsFarmOwner, err = queryBool(c, "is_farm_owner"); err != nil {
		return q, err
	}
	return q, nil
}

// queryBool nil si el parámetro no viene.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return nil, err
	}
	return &b, nil
}
