package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	jwtmw "foro_backend/internal/platform/jwt"
)

// NewRouter wires the REST contract. Reads are public; writes require a
// bearer token and account management additionally requires the
// administrator role. Login is throttled per client IP.
func NewRouter(auth *AuthHandler, users *UserHandler, pubs *PublicationHandler,
	jwtSecret string, loginLimiter *Limiter) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/login", RateLimit(loginLimiter), auth.Login)
	// Registration posts an account without a token.
	api.POST("/usuarios", users.Create)

	api.GET("/usuarios", users.List)
	api.GET("/usuarios/:id", users.Get)
	api.GET("/publicaciones", pubs.List)
	api.GET("/publicaciones/:id", pubs.Get)
	api.GET("/publicaciones/:id/comentarios", pubs.ListComments)

	authed := api.Group("")
	authed.Use(jwtmw.AuthRequired(jwtSecret))
	{
		authed.POST("/publicaciones", pubs.Create)
		authed.PUT("/publicaciones/:id", pubs.Update)
		authed.DELETE("/publicaciones/:id", pubs.Delete)
		authed.POST("/comentarios", pubs.CreateComment)
		authed.PUT("/comentarios/:id", pubs.UpdateComment)
		authed.DELETE("/comentarios/:id", pubs.DeleteComment)
	}

	admin := authed.Group("")
	admin.Use(jwtmw.AdminRequired())
	{
		admin.PUT("/usuarios/:id", users.Update)
		admin.DELETE("/usuarios/:id", users.Delete)
	}

	return r
}
