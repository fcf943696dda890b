package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
)

// AuthConfig contém a configuração do middleware de autenticação.
// Quando TokenAPIHash está preenchido ele tem precedência sobre TokenAPI.
type AuthConfig struct {
	TokenAPI     string
	TokenAPIHash string
}

// HashToken gera o hash bcrypt de um token (usado por cmd/hashtoken)
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckToken compara o token recebido com a configuração
func CheckToken(cfg AuthConfig, token string) bool {
	if token == "" {
		return false
	}
	if cfg.TokenAPIHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.TokenAPIHash), []byte(token)) == nil
	}
	if cfg.TokenAPI == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(cfg.TokenAPI)) == 1
}

// BearerAuth retorna um middleware que valida o token Bearer
func BearerAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			deny(c, "header Authorization ausente")
			return
		}

		// Extrai o token do formato "Bearer {token}"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			deny(c, "formato inválido, esperado: Bearer {token}")
			return
		}

		if !CheckToken(cfg, strings.TrimSpace(parts[1])) {
			deny(c, "token inválido")
			return
		}

		c.Next()
	}
}

func deny(c *gin.Context, reason string) {
	metrics.Get().IncrementAuthFailure()
	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:   logger.AuditActionAuthFailed,
		Resource: "api",
		Path:     c.Request.URL.Path,
		Method:   c.Request.Method,
		ClientIP: c.ClientIP(),
		Success:  false,
		Error:    reason,
	})
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
		Success: false,
		Error:   reason,
	})
}
