package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/checkin"
	"github.com/jhoicas/Taller-api/internal/application/quotations"
	"github.com/jhoicas/Taller-api/internal/application/tools"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
)

const (
	empleadoActivoID = "10000000-0000-0000-0000-000000000001"
	adminPassword    = "clave-segura-123"
)

type testEnv struct {
	app   *fiber.App
	files *apptest.Files
}

// newTestEnv arma el router completo sobre repositorios en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := apptest.NewUsers(
		&entity.User{ID: adminID, Nombre: "Ana Admin", Email: "admin@taller.co", PasswordHash: string(hash), Role: entity.RoleAdmin, Activo: true},
		&entity.User{ID: supervisorID, Nombre: "Sergio Supervisor", Email: "super@taller.co", PasswordHash: string(hash), Role: entity.RoleSupervisor, Activo: true},
		&entity.User{ID: empleadoID, Nombre: "Elena Empleada", Email: "elena@taller.co", PasswordHash: string(hash), Role: entity.RoleEmpleado, Activo: true},
		&entity.User{ID: inactiveID, Nombre: "Iván Inactivo", Email: "ivan@taller.co", PasswordHash: string(hash), Role: entity.RoleEmpleado, Activo: false},
	)
	employees := apptest.NewEmployees(&entity.Employee{ID: empleadoActivoID, Nombre: "Carlos Mecánico", Activo: true})
	products := apptest.NewProducts()
	vehicles := apptest.NewVehicles()
	toolRepo := apptest.NewTools()
	checkins := apptest.NewCheckins()
	quotes := apptest.NewQuotations()
	files := apptest.NewFiles()
	tx := &apptest.TxRunner{Repos: repository.Repos{
		Products: products, Employees: employees, Tools: toolRepo, Vehicles: vehicles,
		Ingresos: checkins.Ingresos(), Salidas: checkins.Salidas(), Quotations: quotes,
	}}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, bcrypt.MinCost, nil),
		UserUC:      usecase.NewUserUseCase(users),
		EmployeeUC:  usecase.NewEmployeeUseCase(employees, vehicles, tx),
		ProductUC:   usecase.NewProductUseCase(products, tx),
		VehicleUC:   usecase.NewVehicleUseCase(vehicles, employees, tx),
		BayUC:       usecase.NewBayUseCase(apptest.NewBays()),
		ProviderUC:  usecase.NewProviderUseCase(apptest.NewProviders()),
		ToolUC:      tools.NewUseCase(toolRepo, employees, nil, nil),
		CheckinUC:   checkin.NewUseCase(checkins.Ingresos(), checkins.Salidas(), tx, files, nil),
		QuotationUC: quotations.NewUseCase(quotes, tx, nil, nil, nil),
		Users:       users,
		JWTSecret:   testJWTSecret,
	})
	return &testEnv{app: app, files: files}
}

type envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields"`
	Pagination *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return e.send(t, req, userID)
}

func (e *testEnv) send(t *testing.T, req *http.Request, userID string) (int, envelope) {
	t.Helper()
	if userID != "" {
		req.Header.Set("Authorization", tokenFor(t, userID, ""))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestAuth_LoginYMe(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ADMIN@taller.co", "password": adminPassword,
	})
	require.Equal(t, http.StatusOK, status, body.Message)
	login := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}](t, body.Data)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, adminID, login.User.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	status, body = env.send(t, req, "")
	require.Equal(t, http.StatusOK, status)
	me := decode[map[string]interface{}](t, body.Data)
	assert.Equal(t, "admin@taller.co", me["email"])
	assert.NotContains(t, me, "password")
}

func TestAuth_LoginCredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)

	status, wrongPass := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@taller.co", "password": "otra-clave",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	_, unknown := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nadie@taller.co", "password": "otra-clave",
	})
	assert.Equal(t, "INVALID_CREDENTIALS", wrongPass.Error)
	assert.Equal(t, wrongPass, unknown, "email desconocido y password incorrecto responden igual")

	status, inactive := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ivan@taller.co", "password": adminPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "ACCOUNT_INACTIVE", inactive.Error)
}

func TestAuth_LoginValidaCampos(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Error)
	assert.Contains(t, body.Fields, "email")
	assert.Contains(t, body.Fields, "password")
}

func TestAuth_RegisterSoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	in := map[string]string{"nombre": "Nuevo", "email": "nuevo@taller.co", "password": "12345678", "role": "empleado"}

	status, body := env.do(t, http.MethodPost, "/api/auth/register", supervisorID, in)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Error)

	status, _ = env.do(t, http.MethodPost, "/api/auth/register", adminID, in)
	assert.Equal(t, http.StatusCreated, status)

	status, body = env.do(t, http.MethodPost, "/api/auth/register", adminID, in)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMAIL_EXISTS", body.Error)
}

func TestAuth_DeactivateAdminProhibido(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPut, "/api/auth/"+adminID+"/deactivate", adminID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Error)

	status, body = env.do(t, http.MethodPut, "/api/auth/"+empleadoID+"/deactivate", adminID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, decode[map[string]interface{}](t, body.Data)["activo"])

	// La desactivación aplica desde la siguiente petición del usuario.
	status, body = env.do(t, http.MethodGet, "/api/products", empleadoID, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "USER_INACTIVE", body.Error)
}

// ── Errores comunes ──────────────────────────────────────────────────────────

func TestRouter_IDMalformadoEs404(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/products/abc", "/api/tools/123", "/api/quotations/no-existe", "/api/ingresos/x"} {
		status, body := env.do(t, http.MethodGet, path, empleadoID, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NOT_FOUND", body.Error, path)
	}
}

func TestRouter_RutaInexistenteUsaElMismoSobre(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error)
}

func TestRouter_SinTokenEs401(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body.Error)
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestProducts_PoliticaDeRolesYFlujo(t *testing.T) {
	env := newTestEnv(t)
	in := map[string]interface{}{"nombre": "Filtro de aceite", "cantidad": 5, "precio_unitario": "25000", "categoria": "Repuesto"}

	status, _ := env.do(t, http.MethodPost, "/api/products", empleadoID, in)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, http.MethodPost, "/api/products", supervisorID, in)
	require.Equal(t, http.StatusCreated, status, body.Message)
	p := decode[struct {
		ID  string `json:"id"`
		SKU string `json:"sku"`
	}](t, body.Data)
	assert.Regexp(t, `^SKU-[A-Z0-9]{8}$`, p.SKU)

	status, _ = env.do(t, http.MethodPut, "/api/products/"+p.ID+"/cantidad", supervisorID, map[string]int{"cantidad": -1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPut, "/api/products/"+p.ID+"/cantidad", supervisorID, map[string]int{"cantidad": 9})
	assert.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/products/count", empleadoID, nil)
	require.Equal(t, http.StatusOK, status)
	count := decode[map[string]int](t, body.Data)
	assert.Equal(t, 1, count["count"])
	assert.Equal(t, 9, count["total_cantidad"])

	status, body = env.do(t, http.MethodGet, "/api/products/"+p.ID+"/history", empleadoID, nil)
	require.Equal(t, http.StatusOK, status)
	hist := decode[[]map[string]interface{}](t, body.Data)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.AccionAjuste, hist[0]["accion"], "el más reciente primero")

	status, _ = env.do(t, http.MethodDelete, "/api/products/"+p.ID, supervisorID, nil)
	assert.Equal(t, http.StatusForbidden, status, "eliminar es solo admin")
	status, _ = env.do(t, http.MethodDelete, "/api/products/"+p.ID, adminID, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProducts_AddToInventoryCreaOSuma(t *testing.T) {
	env := newTestEnv(t)
	in := map[string]interface{}{"sku": "FIL-001", "nombre": "Filtro", "cantidad": 3, "categoria": "Repuesto"}

	status, _ := env.do(t, http.MethodPost, "/api/products/add-to-inventory", supervisorID, in)
	assert.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodPost, "/api/products/add-to-inventory", supervisorID, in)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(6), decode[map[string]interface{}](t, body.Data)["cantidad"])
}

func TestProducts_ListaPaginada(t *testing.T) {
	env := newTestEnv(t)
	for _, n := range []string{"Aceite", "Bujía", "Correa"} {
		status, _ := env.do(t, http.MethodPost, "/api/products", adminID, map[string]interface{}{"nombre": n, "categoria": "Insumo"})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.do(t, http.MethodGet, "/api/products?page=2&limit=2", empleadoID, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 3, body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.TotalPages)
	assert.Len(t, decode[[]map[string]interface{}](t, body.Data), 1)
}

// ── Herramientas ─────────────────────────────────────────────────────────────

func TestTools_AsignarYDevolver(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPost, "/api/tools", empleadoID, map[string]string{"nombre": "Torquímetro"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, http.MethodPost, "/api/tools", supervisorID, map[string]string{"nombre": "Torquímetro"})
	require.Equal(t, http.StatusCreated, status, body.Message)
	tool := decode[struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
	}](t, body.Data)
	assert.Equal(t, entity.ToolStock, tool.Estado)

	assign := map[string]string{"employee_id": empleadoActivoID}
	status, body = env.do(t, http.MethodPut, "/api/tools/"+tool.ID+"/assign", empleadoID, assign)
	require.Equal(t, http.StatusOK, status, body.Message)
	assert.Equal(t, entity.ToolEnUso, decode[map[string]interface{}](t, body.Data)["estado"])

	status, body = env.do(t, http.MethodPut, "/api/tools/"+tool.ID+"/assign", empleadoID, assign)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "TOOL_NOT_AVAILABLE", body.Error)

	status, body = env.do(t, http.MethodGet, "/api/tools/assigned?employee_id="+empleadoActivoID, empleadoID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, body.Data), 1)

	status, _ = env.do(t, http.MethodPut, "/api/tools/"+tool.ID+"/return", empleadoID, map[string]string{})
	assert.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodPut, "/api/tools/"+tool.ID+"/return", empleadoID, map[string]string{})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "TOOL_NOT_IN_USE", body.Error)

	status, body = env.do(t, http.MethodGet, "/api/tools/"+tool.ID+"/history", empleadoID, nil)
	require.Equal(t, http.StatusOK, status)
	hist := decode[[]map[string]interface{}](t, body.Data)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.ToolAccionDevolucion, hist[0]["accion"])
	assert.Equal(t, entity.ToolAccionAsignacion, hist[1]["accion"])
}

func TestTools_EstadisticasValidanPeriodo(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/tools/stats/most-used?period=decada", supervisorID, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Fields, "period")

	status, _ = env.do(t, http.MethodGet, "/api/tools/stats/most-used?period=month", supervisorID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodGet, "/api/tools/stats/usage-duration", empleadoID, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

// ── Ingresos ─────────────────────────────────────────────────────────────────

func multipartRequest(t *testing.T, path string, fields map[string]string, files map[string][]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	png := []byte("\x89PNG\r\n\x1a\n0000")
	for field, names := range files {
		for _, name := range names {
			part, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write(png)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func ingresoFields() map[string]string {
	return map[string]string{
		"empresa":            "Transportes Andinos",
		"conductor_nombre":   "Luis Pérez",
		"conductor_telefono": "3001234567",
		"vehiculo_placa":     "abc-123",
		"vehiculo_tipo":      "Van",
		"reparaciones":       `[{"descripcion":"Cambio de frenos","prioridad":"alta"}]`,
	}
}

func TestIngresos_CreaConEvidenciaMultipart(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/api/ingresos", ingresoFields(), map[string][]string{
		"fotos[]":          {"frente.png", "lateral.png"},
		"firma_supervisor": {"sup.png"},
		"firma_conductor":  {"cond.png"},
	})
	status, body := env.send(t, req, empleadoID)
	require.Equal(t, http.StatusCreated, status, body.Message)

	ing := decode[struct {
		ID              string           `json:"id"`
		VehiculoPlaca   string           `json:"vehiculo_placa"`
		Fotos           []string         `json:"fotos"`
		FirmaSupervisor string           `json:"firma_supervisor"`
		Reparaciones    []map[string]any `json:"reparaciones"`
		Estado          string           `json:"estado"`
	}](t, body.Data)
	assert.Equal(t, "ABC-123", ing.VehiculoPlaca)
	assert.Len(t, ing.Fotos, 2)
	assert.NotEmpty(t, ing.FirmaSupervisor)
	require.Len(t, ing.Reparaciones, 1)
	assert.Equal(t, entity.IngresoIngresado, ing.Estado)
	assert.Len(t, env.files.Stored, 4)
}

func TestIngresos_SinFirmasNoGuardaArchivos(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/api/ingresos", ingresoFields(), map[string][]string{"fotos": {"frente.png"}})
	status, body := env.send(t, req, empleadoID)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Fields, "firma_supervisor")
	assert.Contains(t, body.Fields, "firma_conductor")
	assert.Empty(t, env.files.Stored)
}

func TestIngresos_ReparacionesJSONInvalido(t *testing.T) {
	env := newTestEnv(t)
	fields := ingresoFields()
	fields["reparaciones"] = "{no es json"

	req := multipartRequest(t, "/api/ingresos", fields, nil)
	status, body := env.send(t, req, empleadoID)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Fields, "reparaciones")
}

func TestSalidas_IngresoInexistenteEs400(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/api/salidas", map[string]string{"ingreso_id": missingID},
		map[string][]string{"firma_entrega": {"entrega.png"}})
	status, body := env.send(t, req, empleadoID)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Fields, "ingreso_id")
}

// ── Cotizaciones ─────────────────────────────────────────────────────────────

func TestQuotations_CreaConFolioYTotales(t *testing.T) {
	env := newTestEnv(t)
	in := map[string]interface{}{
		"placa":   "xyz-987",
		"empresa": "Logística Sur",
		"productos": []map[string]interface{}{
			{"nombre": "Pastillas de freno", "cantidad": 2, "precio_unitario": 100000, "total": 1},
		},
	}

	status, _ := env.do(t, http.MethodPost, "/api/quotations", empleadoID, in)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, http.MethodPost, "/api/quotations", supervisorID, in)
	require.Equal(t, http.StatusCreated, status, body.Message)
	q := decode[struct {
		ID        string          `json:"id"`
		Folio     string          `json:"folio"`
		Subtotal  decimal.Decimal `json:"subtotal"`
		IVA       decimal.Decimal `json:"iva"`
		Total     decimal.Decimal `json:"total"`
		Productos []struct {
			LineID int `json:"line_id"`
		} `json:"productos"`
	}](t, body.Data)
	assert.Equal(t, "COT-0001", q.Folio)
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(200000)), q.Subtotal.String())
	assert.True(t, q.IVA.Equal(decimal.NewFromInt(38000)), q.IVA.String())
	assert.True(t, q.Total.Equal(decimal.NewFromInt(238000)), q.Total.String())
	require.Len(t, q.Productos, 1)

	status, body = env.do(t, http.MethodPut, "/api/quotations/"+q.ID+"/products", supervisorID, map[string]interface{}{
		"productos": []map[string]interface{}{{"line_id": q.Productos[0].LineID + 100, "eliminado": true}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "LINE_NOT_FOUND", body.Error)

	status, body = env.do(t, http.MethodPut, "/api/quotations/"+q.ID+"/products", supervisorID, map[string]interface{}{
		"productos": []map[string]interface{}{{"index": 0, "aprobado": true}},
	})
	require.Equal(t, http.StatusOK, status, body.Message)
	porIndice := decode[struct {
		Productos []struct {
			Aprobado bool `json:"aprobado"`
		} `json:"productos"`
	}](t, body.Data)
	require.Len(t, porIndice.Productos, 1)
	assert.True(t, porIndice.Productos[0].Aprobado)

	status, _ = env.do(t, http.MethodPut, "/api/quotations/"+q.ID+"/products", supervisorID, map[string]interface{}{
		"productos": []map[string]interface{}{{"aprobado": true}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, http.MethodPost, "/api/quotations", adminID, in)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "COT-0002", decode[map[string]interface{}](t, body.Data)["folio"])
}

func TestQuotations_BatchIDMalformadoEs404(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPut, "/api/quotations/products/batch", supervisorID, map[string]interface{}{
		"updates": []map[string]interface{}{{"quotation_id": "abc", "line_id": 1, "aprobado": true}},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Error)
}

func TestRutasDeEscritura_IDDesconocidoEs404(t *testing.T) {
	const ghost = "99999999-9999-9999-9999-999999999999"
	nombre := map[string]interface{}{"nombre": "Cambio"}

	cases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPut, "/api/quotations/" + ghost, map[string]interface{}{"cliente": "Otro"}},
		{http.MethodPut, "/api/quotations/" + ghost + "/status", map[string]interface{}{"estado": "aprobada"}},
		{http.MethodPut, "/api/quotations/" + ghost + "/products", map[string]interface{}{
			"productos": []map[string]interface{}{{"line_id": 1, "aprobado": true}},
		}},
		{http.MethodPut, "/api/tools/" + ghost, nombre},
		{http.MethodPut, "/api/tools/" + ghost + "/assign", map[string]interface{}{"employee_id": empleadoActivoID}},
		{http.MethodPut, "/api/tools/" + ghost + "/return", map[string]interface{}{}},
		{http.MethodPost, "/api/tools/" + ghost + "/maintenance", map[string]interface{}{"descripcion": "Cambio de carbones"}},
		{http.MethodPut, "/api/tools/" + ghost + "/repair", map[string]interface{}{}},
		{http.MethodPut, "/api/vehiculos/" + ghost, map[string]interface{}{"compania": "Transportes Andinos"}},
		{http.MethodPut, "/api/vehiculos/" + ghost + "/asignar-employees", map[string]interface{}{"employee_id": empleadoActivoID}},
		{http.MethodPut, "/api/vehiculos/" + ghost + "/update-status", map[string]interface{}{"estado": "reparado"}},
		{http.MethodPost, "/api/vehiculos/" + ghost + "/asignar-productos", map[string]interface{}{"product_id": ghost, "cantidad": 1}},
		{http.MethodPut, "/api/products/" + ghost, nombre},
		{http.MethodPut, "/api/products/" + ghost + "/cantidad", map[string]interface{}{"cantidad": 3}},
		{http.MethodPut, "/api/products/return-to-inventory/" + ghost, map[string]interface{}{"cantidad": 1}},
		{http.MethodPut, "/api/ingresos/" + ghost, map[string]interface{}{"observaciones": "x"}},
		{http.MethodPut, "/api/bays/" + ghost, nombre},
		{http.MethodPut, "/api/proveedores/" + ghost, nombre},
		{http.MethodPut, "/api/employees/" + ghost, nombre},
		{http.MethodPost, "/api/employees/" + ghost + "/deliver-product", map[string]interface{}{"product_id": ghost, "cantidad": 1}},
		{http.MethodPut, "/api/employees/" + ghost + "/asignar-employee", map[string]interface{}{"vehiculo_id": ghost}},
	}

	env := newTestEnv(t)
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, body := env.do(t, tc.method, tc.path, adminID, tc.body)
			assert.Equal(t, http.StatusNotFound, status, body.Message)
			assert.Equal(t, "NOT_FOUND", body.Error)
		})
	}
}
