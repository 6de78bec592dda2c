package handler

import (
	"net/http"

	"github.com/Adrixx117/Investments/internal/models"

	"github.com/gin-gonic/gin"
)

// Index renders the form page; the tables are filled by the page script.
func Index(c *gin.Context) {
	active, ok := typeParam(c, models.TypeETF)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":  "Investment Tracker",
		"types":  models.Types,
		"active": active,
	})
}
