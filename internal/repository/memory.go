package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/internal/models"
)

// In-memory implementations of the repositories. They mirror the Mongo
// semantics (unique email, single admin, compare-and-delete token removal,
// ownership-scoped product queries) and back the test suites.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserRepo() UserRepository {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrDuplicateUser
		}
	}
	if u.Role == models.RoleAdmin {
		for _, existing := range r.users {
			if existing.Role == models.RoleAdmin {
				return ErrAdminExists
			}
		}
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.RefreshTokens == nil {
		u.RefreshTokens = []models.RefreshToken{}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepo) FindAdmin(_ context.Context) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == models.RoleAdmin {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryUserRepo) AddRefreshToken(_ context.Context, id primitive.ObjectID, tok string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.RefreshTokens = append(u.RefreshTokens, models.RefreshToken{Token: tok, CreatedAt: time.Now().UTC()})
	return nil
}

func (r *memoryUserRepo) RemoveRefreshToken(_ context.Context, id primitive.ObjectID, tok string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	for i, rt := range u.RefreshTokens {
		if rt.Token == tok {
			u.RefreshTokens = append(u.RefreshTokens[:i], u.RefreshTokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memoryProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func NewMemoryProductRepo() ProductRepository {
	return &memoryProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (r *memoryProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memoryProductRepo) FindByVendor(_ context.Context, vendorID primitive.ObjectID) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.Vendor == vendorID }), nil
}

func (r *memoryProductRepo) FindActive(_ context.Context) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.Status == models.ProductActive }), nil
}

func (r *memoryProductRepo) filter(keep func(*models.Product) bool) []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryProductRepo) UpdateOwned(_ context.Context, id, vendorID primitive.ObjectID, upd ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Vendor != vendorID {
		return nil, ErrProductNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (r *memoryProductRepo) DeleteOwned(_ context.Context, id, vendorID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Vendor != vendorID {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryProductRepo) FindActiveByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Status != models.ProductActive {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}
