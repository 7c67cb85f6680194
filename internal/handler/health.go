package handler

import (
	"net/http"

	"autopartes/internal/infra"

	"github.com/gin-gonic/gin"
)

// Health reports whether the store can be opened. Acquiring and releasing a
// handle exercises the same path every operation takes.
func Health(db *infra.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		estado := "connected"
		status := http.StatusOK

		h, err := db.Acquire()
		if err != nil {
			estado = "error"
			status = http.StatusServiceUnavailable
		} else {
			db.Release(h)
		}

		c.JSON(status, gin.H{
			"ok": status == http.StatusOK,
			"db": estado,
		})
	}
}
