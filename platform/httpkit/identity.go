// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity represents the authenticated session.
// Handlers read the account from it without depending on JWT parsing details.
type Identity interface {
	// AccountID returns the credits account owned by the session.
	AccountID() string
	// Roles returns the session's assigned roles.
	Roles() []string
	// HasRole checks if the session has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the session is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	accountID     string
	roles         []string
	authenticated bool
}

func (i *identity) AccountID() string {
	return i.accountID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if account info is not present.
func GetIdentity(c *gin.Context) Identity {
	accountID := c.GetString(ContextAccountIDKey)
	if accountID == "" {
		return &identity{authenticated: false}
	}

	var roleList []string
	if roles, ok := c.Get(ContextRolesKey); ok {
		roleList, _ = roles.([]string)
	}

	return &identity{
		accountID:     accountID,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the session is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
