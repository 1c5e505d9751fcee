package httpx

import (
	"strconv"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/gin-gonic/gin"
)

// ClampInt — v в пределах [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ParseLimitOffset — limit и offset из query для постраничных списков.
// Отсутствующий limit → defaultLimit, выход за границы прижимается к [1, maxLimit].
// Нечисловое значение или отрицательный offset → domain.ErrInvalidArgument (400).
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int, err error) {
	limit = defaultLimit
	if raw, ok := c.GetQuery("limit"); ok {
		if limit, err = strconv.Atoi(raw); err != nil {
			return 0, 0, domain.InvalidArgument("limit", raw)
		}
	}
	if raw, ok := c.GetQuery("offset"); ok {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, domain.InvalidArgument("offset", raw)
		}
	}
	return ClampInt(limit, 1, maxLimit), offset, nil
}
