package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yourrobotics/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStore is an in-memory stand-in for store.DB implementing the handler
// interfaces. Lookups return copies so handlers never alias stored state.
type fakeStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	products map[primitive.ObjectID]models.Product
	orders   []models.Order
	content  map[primitive.ObjectID]models.WebsiteContent
	settings map[primitive.ObjectID]models.UserSettings
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[primitive.ObjectID]models.User),
		products: make(map[primitive.ObjectID]models.Product),
		content:  make(map[primitive.ObjectID]models.WebsiteContent),
		settings: make(map[primitive.ObjectID]models.UserSettings),
	}
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	f.users[id] = stored
	return id, nil
}

func (f *fakeStore) CreateProduct(_ context.Context, product *models.Product) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *product
	stored.ID = id
	f.products[id] = stored
	return id, nil
}

func (f *fakeStore) ListProducts(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) ProductByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, id primitive.ObjectID, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return mongo.ErrNoDocuments
	}
	stored := *product
	stored.ID = id
	f.products[id] = stored
	return nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) ProductStats(_ context.Context) (*models.ProductStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &models.ProductStats{RecentProducts: []models.Product{}}
	for _, p := range f.products {
		stats.TotalProducts++
		if !p.IsInStock {
			stats.OutOfStockProducts++
		}
		if p.Discount.Type != models.DiscountNone {
			stats.DiscountedProducts++
		}
		if len(stats.RecentProducts) < 5 {
			stats.RecentProducts = append(stats.RecentProducts, p)
		}
	}
	return stats, nil
}

func (f *fakeStore) ProductsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	seen := make(map[primitive.ObjectID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ProductsMatchingKeywords(_ context.Context, keywords []string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		name := strings.ToLower(p.Name)
		for _, k := range keywords {
			if strings.Contains(name, strings.ToLower(k)) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *order
	stored.ID = id
	f.orders = append(f.orders, stored)
	return id, nil
}

func (f *fakeStore) OrdersByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateContent(_ context.Context, content *models.WebsiteContent) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *content
	stored.ID = id
	f.content[id] = stored
	return id, nil
}

func (f *fakeStore) AllContent(_ context.Context) ([]models.WebsiteContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WebsiteContent, 0, len(f.content))
	for _, c := range f.content {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) ContentBySection(_ context.Context, section string) ([]models.WebsiteContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WebsiteContent
	for _, c := range f.content {
		if c.Section == section {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ContentByID(_ context.Context, id primitive.ObjectID) (*models.WebsiteContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.content[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &c, nil
}

func (f *fakeStore) UpdateContent(_ context.Context, id primitive.ObjectID, content *models.WebsiteContent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.content[id]; !ok {
		return mongo.ErrNoDocuments
	}
	stored := *content
	stored.ID = id
	f.content[id] = stored
	return nil
}

func (f *fakeStore) DeleteContent(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.content[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.content, id)
	return nil
}

func (f *fakeStore) SettingsByUser(_ context.Context, userID primitive.ObjectID) (*models.UserSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.settings {
		if s.UserID == userID {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateSettings(_ context.Context, settings *models.UserSettings) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *settings
	stored.ID = id
	f.settings[id] = stored
	return id, nil
}

func (f *fakeStore) UpdateSettings(_ context.Context, id primitive.ObjectID, settings *models.UserSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.settings[id]; !ok {
		return mongo.ErrNoDocuments
	}
	stored := *settings
	stored.ID = id
	f.settings[id] = stored
	return nil
}

// testUser seeds a user directly into the fake store.
func (f *fakeStore) testUser(name, email, role string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	u := models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  "$2a$10$notarealhash",
		Role:      role,
		CreatedAt: time.Now(),
	}
	f.users[id] = u
	return &u
}
