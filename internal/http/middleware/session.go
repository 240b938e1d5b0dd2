package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCfg holds configuration for session middleware.
type SessionCfg struct {
	DB         *gorm.DB
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session is a database-backed session model. Login and registration live in
// a separate service; this app only resolves an existing session to a user.
type Session struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	UserID     string    `gorm:"type:char(36);not null;index:ix_sessions_user_id"`
	ExpiresAt  time.Time `gorm:"type:datetime(3);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	LastSeenAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

// SessionMiddleware loads a session from the database and sets user info in context.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		var sess Session
		if err := cfg.DB.Where("id = ? AND expires_at > ?", sessionID, time.Now()).First(&sess).Error; err != nil {
			// Invalid or expired session, clear cookie
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			c.Next()
			return
		}

		c.Set("session", &sess)
		c.Set("user_id", sess.UserID)

		// Name and email feed the payment gateway's billing details
		var userName, userEmail string
		row := cfg.DB.Table("users").Select("name", "email").Where("id = ?", sess.UserID).Row()
		if err := row.Scan(&userName, &userEmail); err == nil {
			c.Set("user_name", userName)
			c.Set("user_email", userEmail)
		}

		c.Next()
	}
}

// ContextUser represents the authenticated user stored in request context.
type ContextUser struct {
	ID    string
	Name  string
	Email string
}

// CurrentUser retrieves the authenticated user from the gin context.
// Returns the user and true if authenticated, or zero value and false otherwise.
func CurrentUser(c *gin.Context) (ContextUser, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return ContextUser{}, false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return ContextUser{}, false
	}

	var nameStr, emailStr string
	if name, ok := c.Get("user_name"); ok && name != nil {
		nameStr, _ = name.(string)
	}
	if email, ok := c.Get("user_email"); ok && email != nil {
		emailStr, _ = email.(string)
	}

	return ContextUser{ID: userID, Name: nameStr, Email: emailStr}, true
}
