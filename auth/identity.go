// Package auth issues and resolves session tokens and decides who may write.
package auth

import (
	"errors"

	"github.com/kevinaaaquil/portfolio/backend/models"
)

// ErrForbidden is returned by Authorize for every identity that is not the admin.
var ErrForbidden = errors.New("forbidden: admin only")

// Identity is the resolved principal behind a request. Anonymous identities have no e-mail.
type Identity struct {
	UID       string `json:"uid"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"anonymous"`
	Role      string `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

// Authorize is the single write gate for content and CV mutations.
func Authorize(who *Identity) error {
	if !who.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
