package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "foro_backend/internal/feature/auth/adapters"
	pubadapters "foro_backend/internal/feature/publications/adapters"
	jwtmw "foro_backend/internal/platform/jwt"
)

const testSecret = "test-secret"

// setupRouter builds the full router over an in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authadapters.UserModel{},
		&pubadapters.PublicationModel{},
		&pubadapters.CommentModel{},
	))

	log := zerolog.Nop()
	users := authadapters.NewUserRepository(db)
	pubs := pubadapters.NewPublicationRepository(db)
	gen := jwtmw.NewGenerator(testSecret, time.Hour)

	return NewRouter(
		NewAuthHandler(users, gen, log),
		NewUserHandler(users, log),
		NewPublicationHandler(pubs, users, log),
		testSecret,
		NewLimiter(100, time.Minute),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// registerUser posts an account and returns its id.
func registerUser(t *testing.T, r *gin.Engine, name, email, password, role string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/usuarios", "", gin.H{
		"nombre":          name,
		"correo":          email,
		"clave":           hash(t, password),
		"acepta_terminos": 1,
		"rol":             gin.H{"nombre_rol": role},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	return created.ID
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"correo": email, "clave": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestUsersEndpoints(t *testing.T) {
	t.Run("register then fetch", func(t *testing.T) {
		r := setupRouter(t)
		id := registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")

		w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/usuarios/%d", id), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var user map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "Ana", user["nombre"])
		assert.Equal(t, "ana@x.com", user["correo"])
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		r := setupRouter(t)
		registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")

		w := doJSON(t, r, http.MethodPost, "/api/usuarios", "", gin.H{
			"nombre":          "Otra",
			"correo":          "ana@x.com",
			"clave":           hash(t, "secret2"),
			"acepta_terminos": 1,
			"rol":             gin.H{"nombre_rol": "Usuario"},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		r := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/usuarios", "", gin.H{
			"nombre": "A", "correo": "not-an-email", "clave": "",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("account management requires administrator", func(t *testing.T) {
		r := setupRouter(t)
		id := registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")
		token := login(t, r, "ana@x.com", "secret1")

		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", id), token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("administrator can delete accounts", func(t *testing.T) {
		r := setupRouter(t)
		registerUser(t, r, "Root", "root@x.com", "secret1", "Administrador")
		id := registerUser(t, r, "Ana", "ana@x.com", "secret2", "Usuario")
		token := login(t, r, "root@x.com", "secret1")

		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d", id), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/usuarios/%d", id), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("wrong password is a generic 401", func(t *testing.T) {
		r := setupRouter(t)
		registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")

		w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
			"correo": "ana@x.com", "clave": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "credenciales incorrectas")
	})

	t.Run("unknown email is the same 401", func(t *testing.T) {
		r := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
			"correo": "nadie@x.com", "clave": "whatever",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "credenciales incorrectas")
	})
}

func TestPublicationsEndpoints(t *testing.T) {
	t.Run("write requires a token", func(t *testing.T) {
		r := setupRouter(t)
		w := doJSON(t, r, http.MethodPost, "/api/publicaciones", "", gin.H{
			"titulo": "Hola", "contenido": "Primer post", "autorId": 1,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create embeds the author", func(t *testing.T) {
		r := setupRouter(t)
		id := registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")
		token := login(t, r, "ana@x.com", "secret1")

		w := doJSON(t, r, http.MethodPost, "/api/publicaciones", token, gin.H{
			"titulo": "Hola", "contenido": "Primer post", "autorId": id,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var pub struct {
			ID        uint   `json:"id"`
			Title     string `json:"titulo"`
			CreatedAt int64  `json:"fecha_creacion"`
			Author    struct {
				Email string `json:"correo"`
			} `json:"autor"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pub))
		assert.Equal(t, "Hola", pub.Title)
		assert.Equal(t, "ana@x.com", pub.Author.Email)
		assert.NotZero(t, pub.CreatedAt)
	})

	t.Run("update preserves creation time", func(t *testing.T) {
		r := setupRouter(t)
		id := registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")
		token := login(t, r, "ana@x.com", "secret1")

		w := doJSON(t, r, http.MethodPost, "/api/publicaciones", token, gin.H{
			"titulo": "Hola", "contenido": "v1", "autorId": id,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var created struct {
			ID        uint  `json:"id"`
			CreatedAt int64 `json:"fecha_creacion"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/publicaciones/%d", created.ID), token, gin.H{
			"titulo": "Hola", "contenido": "v2", "autorId": id,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated struct {
			Content    string `json:"contenido"`
			CreatedAt  int64  `json:"fecha_creacion"`
			ModifiedAt int64  `json:"fecha_modificacion"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "v2", updated.Content)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.GreaterOrEqual(t, updated.ModifiedAt, updated.CreatedAt)
	})

	t.Run("comment flow with embedded publication", func(t *testing.T) {
		r := setupRouter(t)
		id := registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")
		token := login(t, r, "ana@x.com", "secret1")

		w := doJSON(t, r, http.MethodPost, "/api/publicaciones", token, gin.H{
			"titulo": "Hola", "contenido": "post", "autorId": id,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var pub struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pub))

		w = doJSON(t, r, http.MethodPost, "/api/comentarios", token, gin.H{
			"publicacionId": pub.ID, "autorId": id, "texto": "buen post", "estrellas": 5,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/publicaciones/%d/comentarios", pub.ID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var comments []struct {
			Text        string `json:"texto"`
			Stars       int    `json:"estrellas"`
			Publication struct {
				ID uint `json:"id"`
			} `json:"publicacion"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
		require.Len(t, comments, 1)
		assert.Equal(t, "buen post", comments[0].Text)
		assert.Equal(t, 5, comments[0].Stars)
		assert.Equal(t, pub.ID, comments[0].Publication.ID)
	})

	t.Run("out of range stars rejected", func(t *testing.T) {
		r := setupRouter(t)
		id := registerUser(t, r, "Ana", "ana@x.com", "secret1", "Usuario")
		token := login(t, r, "ana@x.com", "secret1")

		w := doJSON(t, r, http.MethodPost, "/api/comentarios", token, gin.H{
			"publicacionId": 1, "autorId": id, "texto": "x", "estrellas": 9,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authadapters.UserModel{}, &pubadapters.PublicationModel{}, &pubadapters.CommentModel{}))

	log := zerolog.Nop()
	users := authadapters.NewUserRepository(db)
	pubs := pubadapters.NewPublicationRepository(db)
	r := NewRouter(
		NewAuthHandler(users, jwtmw.NewGenerator(testSecret, time.Hour), log),
		NewUserHandler(users, log),
		NewPublicationHandler(pubs, users, log),
		testSecret,
		NewLimiter(2, time.Minute),
	)

	body := gin.H{"correo": "nadie@x.com", "clave": "whatever"}
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestLimiterWindowReset(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b")) // independent keys

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.True(t, l.Allow("a"))
}
