package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"user-directory-api/internal/domain/user"
)

// Repository keeps one JSON record per uuid under "<prefix>:<uuid>".
// There are no secondary indexes: FindByID is the only point lookup,
// every filtered operation walks the full key space with SCAN.
type Repository struct {
	db     *redis.Client
	prefix string
}

func NewRepository(db *redis.Client, prefix string) user.Repository {
	return &Repository{db: db, prefix: prefix}
}

func (r *Repository) Save(ctx context.Context, req user.User) (*user.User, error) {
	model := toDBModel(req)
	b, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("marshal user record: %w", err)
	}

	if err = r.db.Set(ctx, r.key(req.UUID), b, 0).Err(); err != nil {
		return nil, fmt.Errorf("store user record: %w", err)
	}

	return fromDBModel(model), nil
}

func (r *Repository) FindByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	b, err := r.db.Get(ctx, r.key(uuid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user record: %w", err)
	}

	u := new(User)
	if err = json.Unmarshal(b, u); err != nil {
		return nil, fmt.Errorf("unmarshal user record: %w", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) FindAll(ctx context.Context) (user.Users, error) {
	models, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	us := make(user.Users, len(models))
	for idx, m := range models {
		us[idx] = fromDBModel(m)
	}

	return us, nil
}

func (r *Repository) Delete(ctx context.Context, uuid user.UUID) error {
	if err := r.db.Del(ctx, r.key(uuid)).Err(); err != nil {
		return fmt.Errorf("delete user record: %w", err)
	}

	return nil
}

func (r *Repository) FindByDepartment(ctx context.Context, department string) (user.Users, error) {
	return r.findAllMatching(ctx, func(m *User) bool {
		return m.Department == department
	})
}

func (r *Repository) FindByRole(ctx context.Context, role string) (user.Users, error) {
	return r.findAllMatching(ctx, func(m *User) bool {
		return m.Role == role
	})
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	models, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range models {
		if m.Email == email {
			return fromDBModel(m), nil
		}
	}

	return nil, nil
}

func (r *Repository) FindByNameContaining(ctx context.Context, name string) (user.Users, error) {
	needle := strings.ToLower(name)
	return r.findAllMatching(ctx, func(m *User) bool {
		return strings.Contains(strings.ToLower(m.Name), needle)
	})
}

func (r *Repository) ExistsByID(ctx context.Context, uuid user.UUID) (bool, error) {
	n, err := r.db.Exists(ctx, r.key(uuid)).Result()
	if err != nil {
		return false, fmt.Errorf("check user record: %w", err)
	}

	return n > 0, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return 0, err
	}

	return int64(len(keys)), nil
}

func (r *Repository) findAllMatching(ctx context.Context, match func(*User) bool) (user.Users, error) {
	models, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	var us user.Users
	for _, m := range models {
		if match(m) {
			us = append(us, fromDBModel(m))
		}
	}

	return us, nil
}

func (r *Repository) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.db.Scan(ctx, 0, r.keyPattern(), scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan user records: %w", err)
	}

	return keys, nil
}

func (r *Repository) scanAll(ctx context.Context) (Users, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := r.db.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch user records: %w", err)
	}

	var models Users
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// key expired between SCAN and MGET
			continue
		}
		m := new(User)
		if err = json.Unmarshal([]byte(s), m); err != nil {
			return nil, fmt.Errorf("unmarshal user record: %w", err)
		}
		models = append(models, m)
	}

	return models, nil
}
