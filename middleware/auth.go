package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/PolarBear1017/FoodSheep/config"
	"github.com/PolarBear1017/FoodSheep/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const callerKey = "caller"

// Claims is the payload signed into each token.
type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller as handlers see it. UserID and
// Role come straight from the token; the VIP flag is resolved against
// the database on first use, so an expired membership stops granting
// perks mid-session instead of riding out the token lifetime.
type Identity struct {
	UserID uint
	Email  string
	Role   models.UserRole

	vip       bool
	vipLoaded bool
}

// VIPActive reports whether the caller holds a live VIP membership.
// The lookup hits the database once per request and is cached on the
// identity afterwards.
func (id *Identity) VIPActive(db *gorm.DB) bool {
	if !id.vipLoaded {
		var user models.User
		if err := db.First(&user, id.UserID).Error; err == nil {
			id.vip = user.VIPActive(time.Now())
		}
		id.vipLoaded = true
	}
	return id.vip
}

// Caller returns the identity attached by AuthRequired, or nil when
// the request never passed through it.
func Caller(c *gin.Context) *Identity {
	val, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	id, _ := val.(*Identity)
	return id
}

// GenerateToken signs a 24h token for the user.
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// AuthRequired validates the bearer token and attaches the caller's
// Identity to the request context for Caller to pick up.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}
		claims, err := parseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(callerKey, &Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// RoleRequired lets only the listed roles past. Must be mounted after
// AuthRequired.
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := Caller(c)
		if caller == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Authentication context missing"})
			return
		}
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + strings.Join(names, ", "),
		})
	}
}
