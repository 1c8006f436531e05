package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foro_backend/internal/feature/auth/domain/entity"
	platformhttp "foro_backend/internal/platform/http"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := Config{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}
	return NewClient(cfg, platformhttp.NewClient(cfg.Timeout), zerolog.Nop()), srv
}

func TestClient_ListUsers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/usuarios", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		_, _ = w.Write([]byte(`[
			{"id": 1, "nombre": "Admin", "correo": "admin@x.com", "clave": "$2a$hash",
			 "acepta_terminos": 1,
			 "rol": {"id_rol": 1, "nombre_rol": "Administrador", "descripcion_rol": "todo"}},
			{"id": 2, "nombre": "Pepe", "correo": "pepe@x.com", "clave": "$2a$hash2",
			 "acepta_terminos": 0,
			 "rol": {"id_rol": 3, "nombre_rol": "usuario", "descripcion_rol": ""}}
		]`))
	}))

	users, err := client.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uint(1), users[0].ID)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
	assert.True(t, users[0].AcceptedTerms)
	assert.Equal(t, entity.RoleUser, users[1].Role, "role names compare case-insensitively")
	assert.False(t, users[1].AcceptedTerms)
}

func TestClient_CreateUser(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/usuarios", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id", "create must not send an id")
		assert.Equal(t, "Ana", body["nombre"])
		assert.Equal(t, float64(1), body["acepta_terminos"])

		_, _ = w.Write([]byte(`{"id": 42, "nombre": "Ana", "correo": "ana@x.com",
			"clave": "$2a$hash", "acepta_terminos": 1,
			"rol": {"id_rol": 3, "nombre_rol": "Usuario", "descripcion_rol": ""}}`))
	}))

	created, err := client.CreateUser(context.Background(), entity.User{
		ID:            7, // local id, must not leak into the remote id space
		Name:          "Ana",
		Email:         "ana@x.com",
		PasswordHash:  "$2a$hash",
		AcceptedTerms: true,
		Role:          entity.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), created.ID, "remote id space wins")
}

func TestClient_PublicationsRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/publicaciones":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Hola", body["titulo"])
			assert.Equal(t, float64(5), body["autorId"])
			_, _ = w.Write([]byte(`{"id": 9, "titulo": "Hola", "contenido": "c",
				"autor": {"id": 5, "nombre": "Ana", "correo": "a@x.com", "clave": "h",
				          "acepta_terminos": 1,
				          "rol": {"id_rol": 3, "nombre_rol": "Usuario", "descripcion_rol": ""}},
				"fecha_creacion": 1000}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/publicaciones/9/comentarios":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))

	p, err := client.CreatePublication(context.Background(), "Hola", "c", 5)
	require.NoError(t, err)
	assert.Equal(t, uint(9), p.ID)
	assert.Equal(t, uint(5), p.AuthorID)
	assert.Equal(t, int64(1000), p.CreatedAt)
	assert.Equal(t, int64(1000), p.ModifiedAt, "missing fecha_modificacion falls back to creation")

	comments, err := client.ListComments(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestClient_ErrorsAreGeneric(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		_, err := client.ListUsers(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http 500")
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		_, err := client.ListUsers(context.Background())
		assert.Error(t, err)
	})

	t.Run("server gone", func(t *testing.T) {
		client, srv := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()
		_, err := client.ListUsers(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_DeleteComment(t *testing.T) {
	var deleted string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.DeleteComment(context.Background(), 31))
	assert.Equal(t, "/api/comentarios/31", deleted)
}
