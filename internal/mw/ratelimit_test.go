package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiterThrottlesAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimiter(rate.Limit(1), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	// Burst of two passes, the third request inside the same second is
	// rejected.
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	limiters := newIPLimiters(rate.Limit(1), 1)

	assert.True(t, limiters.get("10.0.0.1").Allow())
	assert.False(t, limiters.get("10.0.0.1").Allow())
	assert.True(t, limiters.get("10.0.0.2").Allow())
}
