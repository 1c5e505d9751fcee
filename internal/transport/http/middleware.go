package rest

import (
	"context"
	"strings"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// principalKey — имя пользователя из сессии в gin.Context.
const principalKey = "principal"

// withTimeout — ограничивает время обработки запроса.
func (h *Handler) withTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requireSession — Authorization: Bearer <token> → имя пользователя через SessionService.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.fail(c, "auth", domain.ErrUnauthorized)
			return
		}
		principal, err := h.svc.Sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			h.fail(c, "auth", err)
			return
		}
		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(ctxmeta.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

type authorizeFunc func(ctx context.Context, id, principal string) (bool, error)

// ownerOnly — пропускает только владельца ресурса :id.
func (h *Handler) ownerOnly(authorize authorizeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := authorize(c.Request.Context(), c.Param("id"), c.GetString(principalKey))
		if err != nil {
			h.fail(c, "authorize", err)
			return
		}
		if !ok {
			h.fail(c, "authorize", domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func (h *Handler) authorizeAdvert(ctx context.Context, id, principal string) (bool, error) {
	return h.svc.Adverts.Authorize(ctx, id, principal)
}

func (h *Handler) authorizeOffer(ctx context.Context, id, principal string) (bool, error) {
	return h.svc.Offers.Authorize(ctx, id, principal)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
