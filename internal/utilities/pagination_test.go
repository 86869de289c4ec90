package utilities

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		page  float64
		limit float64
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&limit=25", 3, 25},
		{"non numeric", "?page=abc&limit=x", 1, 10},
		{"zero", "?page=0&limit=0", 1, 10},
		{"negative", "?page=-2&limit=-5", 1, 10},
		{"capped", "?page=2&limit=1000", 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(c *gin.Context) {
				p := ParsePagination(c)
				c.JSON(http.StatusOK, gin.H{"page": p.Page, "limit": p.Limit, "offset": p.Offset()})
			}
			rec, resp, err := SimulateAPICall(handler, "/api/jobs"+tt.query, http.MethodGet, nil)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.page, resp["page"])
			assert.Equal(t, tt.limit, resp["limit"])
			assert.Equal(t, (tt.page-1)*tt.limit, resp["offset"])
		})
	}
}

func TestParsePaginationHugePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, query := range []string{"?page=9223372036854775807", "?page=9223372036854775807&limit=100", "?page=922337203685477581&limit=10"} {
		t.Run(query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/jobs"+query, nil)

			p := ParsePagination(c)
			assert.Greater(t, p.Offset(), 0)
			assert.LessOrEqual(t, p.Page, math.MaxInt/p.Limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	for total := int64(0); total <= 57; total++ {
		for _, limit := range []int{1, 3, 10, 25, 100} {
			want := int(math.Ceil(float64(total) / float64(limit)))
			assert.Equal(t, want, TotalPages(total, limit), "total=%d limit=%d", total, limit)
		}
	}
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestMeta(t *testing.T) {
	m := Pagination{Page: 2, Limit: 10}.Meta(21)
	assert.Equal(t, 2, m.Page)
	assert.Equal(t, 10, m.Limit)
	assert.Equal(t, int64(21), m.Total)
	assert.Equal(t, 3, m.TotalPages)
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hashed)
	assert.True(t, VerifyPassword(hashed, "correct horse"))
	assert.False(t, VerifyPassword(hashed, "battery staple"))
}

func TestDummyHash(t *testing.T) {
	hashed := DummyHash()
	assert.Equal(t, hashed, DummyHash())

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	assert.False(t, VerifyPassword(hashed, ""))
	assert.False(t, VerifyPassword(hashed, "Password123"))
}

func TestMergeNonEmpty(t *testing.T) {
	type profile struct {
		FullName string
		Email    string
	}
	dst := profile{FullName: "Old Name", Email: "old@example.com"}
	MergeNonEmpty(&dst, &profile{Email: "new@example.com"})
	assert.Equal(t, profile{FullName: "Old Name", Email: "new@example.com"}, dst)
}
