package handler

import "github.com/gin-gonic/gin"

const flashCookie = "flash"

// setFlash stores a short-lived one-shot message for the next page render.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 5, "/", "", false, false)
}

// popFlash reads and clears the pending flash message.
func popFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, false)
	return message
}
