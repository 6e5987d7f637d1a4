package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romeroalan26/posfacturard-console/internal/dto"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
	"github.com/romeroalan26/posfacturard-console/internal/session"
)

func testClient(t *testing.T, handler http.Handler) (*gateway.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(session.Session{Token: "tok"}))
	return gateway.New(srv.URL, store, gateway.Options{Timeout: 5 * time.Second}), srv
}

func TestProductoListDecodesPageEnvelope(t *testing.T) {
	gw, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos", r.URL.Path)
		assert.Equal(t, "cafe", r.URL.Query().Get("busqueda"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{
			"data":[{"id":"p1","nombre":"Cafe","precio_venta":"125.50","stock":8,"con_impuesto":true}],
			"totalPages":7,"totalElements":130
		}`))
	}))

	client := NewProductoClient(gw)
	page, err := client.List(context.Background(), dto.ProductoFilter{
		Busqueda:   "cafe",
		PageFilter: dto.PageFilter{Page: 3, PerPage: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalPages)
	assert.Equal(t, int64(130), page.TotalElements)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Cafe", page.Data[0].Nombre)
	assert.True(t, page.Data[0].ConImpuesto)
	assert.Equal(t, "125.5", page.Data[0].PrecioVenta.String())
}

func TestVentaCreatePostsPayloadUnchanged(t *testing.T) {
	var got dto.CrearVentaRequest
	gw, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/ventas", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"v9"}`))
	}))

	client := NewVentaClient(gw)
	req := dto.CrearVentaRequest{
		ClienteRef: "ref-1",
		MetodoPago: "transferencia",
		Items:      []dto.VentaItemRequest{{ProductoID: "p1", Cantidad: 2}},
	}
	resp, err := client.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "v9", resp.ID)
	assert.Equal(t, "transferencia", got.MetodoPago)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Cantidad)
}

func TestUsuarioRoleAndPermissionRoutes(t *testing.T) {
	gw, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/usuarios/u7/role":
			_, _ = w.Write([]byte(`{"id":"u7","rol":"cajero"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/usuarios/u7/permissions":
			_, _ = w.Write([]byte(`{"usuario_id":"u7","rol":"cajero","permisos":["ventas:crear"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	client := NewUsuarioClient(gw)
	u, err := client.UpdateRole(context.Background(), "u7", "cajero")
	require.NoError(t, err)
	assert.Equal(t, "cajero", u.Rol)

	p, err := client.Permissions(context.Background(), "u7")
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas:crear"}, p.Permisos)
}

func TestImagenURL(t *testing.T) {
	assert.Equal(t, "/api/imagenes/productos/cafe.png", ImagenURL("cafe.png"))
	assert.Empty(t, ImagenURL(""))
}
