package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
)

// listNotices returns notices with a sequence number above ?after=, oldest first.
func (h *handlers) listNotices(c *gin.Context) {
	var after int64
	if raw := c.Query("after"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid after")
			return
		}
		after = n
	}
	notices := []domain.Notice{}
	if h.deps.Notices != nil {
		notices = h.deps.Notices.Since(after)
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices})
}
