package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farm-api/internal/domain/entity"
	apphttp "github.com/jhoicas/farm-api/internal/interfaces/http"
)

func registerBody(email string) map[string]any {
	return map[string]any{
		"email":      email,
		"password1":  testPassword,
		"password2":  testPassword,
		"first_name": "Amina",
		"farm_name":  "Green Acres",
		"farm_size":  "12.50",
	}
}

func TestRegister_CreaDuenoConPermisos(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})

	resp := doRequest(t, env.app, http.MethodPost, "/api/users", "", registerBody("New@Farm.test"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decode(t, resp)

	assert.Equal(t, "New@farm.test", body["email"], "solo el dominio se normaliza")
	assert.Equal(t, "owner", body["role"])
	assert.Equal(t, true, body["is_farm_owner"])
	assert.Equal(t, true, body["can_manage_employees"])
	assert.Equal(t, true, body["can_view_reports"])
	assert.Nil(t, body["employer"])
	assert.NotContains(t, body, "password1")
	assert.NotContains(t, body, "password_hash")
}

func TestRegister_TambienEnAuthRegister(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	resp := doRequest(t, env.app, http.MethodPost, "/api/auth/register", "", registerBody("alt@farm.test"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRegister_EmailDuplicadoSinDistinguirMayusculas(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	env.seed(t, "taken@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/users", "", registerBody("TAKEN@farm.test"))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].(map[string]any)
	assert.Equal(t, []any{"A user with that email already exists."}, fields["email"])
}

func TestRegister_PasswordsDistintos(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	body := registerBody("p@farm.test")
	body["password2"] = "otra-cosa-123"

	resp := doRequest(t, env.app, http.MethodPost, "/api/users", "", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].(map[string]any)
	assert.Equal(t, []any{"Passwords do not match."}, fields["password2"])
}

func TestRegister_CuerpoMalformado(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	resp := doRequest(t, env.app, http.MethodPost, "/api/users", "", "no-es-un-objeto")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode(t, resp)["code"])
}

func TestRegister_RateLimit429(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{Max: 1})

	first := doRequest(t, env.app, http.MethodPost, "/api/users", "", registerBody("one@farm.test"))
	assert.Equal(t, fiber.StatusCreated, first.StatusCode)

	second := doRequest(t, env.app, http.MethodPost, "/api/users", "", registerBody("two@farm.test"))
	assert.Equal(t, fiber.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "Request was throttled.", decode(t, second)["detail"])
}

func TestLogin_YRefresh(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	owner := env.seed(t, "owner@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "Owner@Farm.test", "password": testPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.NotEmpty(t, body["access"])
	require.NotEmpty(t, body["refresh"])
	assert.Equal(t, owner.ID, body["user"].(map[string]any)["id"])

	// el access token abre /users/me
	me := doRequest(t, env.app, http.MethodGet, "/api/users/me", "Bearer "+body["access"].(string), nil)
	require.Equal(t, fiber.StatusOK, me.StatusCode)
	assert.Equal(t, "owner@farm.test", decode(t, me)["email"])

	// el refresh rota el par
	ref := doRequest(t, env.app, http.MethodPost, "/api/auth/refresh", "", map[string]any{"refresh": body["refresh"]})
	require.Equal(t, fiber.StatusOK, ref.StatusCode)
	pair := decode(t, ref)
	assert.NotEmpty(t, pair["access"])
	assert.NotEmpty(t, pair["refresh"])

	// un access no sirve como refresh
	bad := doRequest(t, env.app, http.MethodPost, "/api/auth/refresh", "", map[string]any{"refresh": body["access"]})
	assert.Equal(t, fiber.StatusUnauthorized, bad.StatusCode)
}

func TestLogin_CredencialesInvalidas401(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	env.seed(t, "owner@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "owner@farm.test", "password": "incorrecta",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CuentaInactiva403(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	env.seed(t, "off@farm.test", entity.RoleOwner, nil, func(a *entity.Account) { a.IsActive = false })

	resp := doRequest(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "off@farm.test", "password": testPassword,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListUsers_FiltrosYPaginacion(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	owner := env.seed(t, "owner@farm.test", entity.RoleOwner, nil)
	env.seed(t, "w1@farm.test", entity.RoleWorker, owner)
	env.seed(t, "w2@farm.test", entity.RoleWorker, owner)
	env.seed(t, "vet@farm.test", entity.RoleVeterinarian, owner)

	resp := doRequest(t, env.app, http.MethodGet, "/api/users?role=worker&page_size=1", bearer(t, owner), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.EqualValues(t, 2, body["count"])
	assert.EqualValues(t, 1, body["page_size"])
	assert.Len(t, body["results"], 1)

	resp = doRequest(t, env.app, http.MethodGet, "/api/users?is_farm_owner=true", bearer(t, owner), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, resp)["count"])
}

func TestListUsers_BooleanoInvalido400(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	owner := env.seed(t, "owner@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodGet, "/api/users?is_active=quizas", bearer(t, owner), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", decode(t, resp)["code"])
}

func TestListUsers_SinToken401(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	resp := doRequest(t, env.app, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetUser_LecturaPermitidaAOtros(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	a := env.seed(t, "a@farm.test", entity.RoleOwner, nil)
	b := env.seed(t, "b@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodGet, "/api/users/"+b.ID, bearer(t, a), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "b@farm.test", decode(t, resp)["email"])

	missing := doRequest(t, env.app, http.MethodGet, "/api/users/no-es-uuid", bearer(t, a), nil)
	assert.Equal(t, fiber.StatusNotFound, missing.StatusCode)
}

func TestPatchUser_PropiaCuentaRecalculaSinTocarRol(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	a := env.seed(t, "a@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPatch, "/api/users/"+a.ID, bearer(t, a), map[string]any{
		"farm_location": "Multan", "role": "worker",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Multan", body["farm_location"])
	assert.Equal(t, "owner", body["role"])
	assert.Equal(t, true, body["can_manage_employees"])
}

func TestPatchUser_CuentaAjena403(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	a := env.seed(t, "a@farm.test", entity.RoleOwner, nil)
	b := env.seed(t, "b@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPatch, "/api/users/"+b.ID, bearer(t, a), map[string]any{"first_name": "X"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You do not have permission to perform this action.", decode(t, resp)["detail"])
}

func TestPatchUser_StaffEditaCuentaAjena(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	admin := env.seed(t, "admin@farm.test", entity.RoleOwner, nil, func(a *entity.Account) { a.IsStaff = true })
	b := env.seed(t, "b@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPatch, "/api/users/"+b.ID, bearer(t, admin), map[string]any{"first_name": "Bilal"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bilal", decode(t, resp)["first_name"])
}

func TestPutUser_RequiereEmailYNombre(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	a := env.seed(t, "a@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPut, "/api/users/"+a.ID, bearer(t, a), map[string]any{"farm_name": "X"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "first_name")
}

func TestPatchUser_DuenoNoPuedeTenerEmpleador(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	a := env.seed(t, "a@farm.test", entity.RoleOwner, nil)
	b := env.seed(t, "b@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodPatch, "/api/users/"+a.ID, bearer(t, a), map[string]any{"employer": b.ID})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].(map[string]any)
	assert.Equal(t, []any{"Farm owners cannot have employers."}, fields["employer"])
}

func TestDeleteUser_CascadaSobreEmpleados(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	owner := env.seed(t, "owner@farm.test", entity.RoleOwner, nil)
	w := env.seed(t, "w@farm.test", entity.RoleWorker, owner)
	other := env.seed(t, "other@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodDelete, "/api/users/"+owner.ID, bearer(t, owner), nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	got, err := env.repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "el empleado se elimina con su empleador")

	gone := doRequest(t, env.app, http.MethodGet, "/api/users/"+w.ID, bearer(t, other), nil)
	assert.Equal(t, fiber.StatusNotFound, gone.StatusCode)
}

func TestDeleteUser_CuentaAjena403(t *testing.T) {
	env := buildTestApp(t, apphttp.RateLimit{})
	a := env.seed(t, "a@farm.test", entity.RoleOwner, nil)
	b := env.seed(t, "b@farm.test", entity.RoleOwner, nil)

	resp := doRequest(t, env.app, http.MethodDelete, "/api/users/"+b.ID, bearer(t, a), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
