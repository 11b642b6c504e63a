package user

import (
	domain "user-directory-api/internal/domain/user"
)

// per-iteration SCAN hint, not a result limit
const scanCount = 100

func (r *Repository) key(uuid domain.UUID) string {
	return r.prefix + ":" + uuid.String()
}

func (r *Repository) keyPattern() string {
	return r.prefix + ":*"
}
