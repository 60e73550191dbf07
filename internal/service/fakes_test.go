package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

// fakeStore is an in-memory stand-in for the postgres schema, including the
// unique keys and ON DELETE CASCADE foreign keys.
type fakeStore struct {
	mu           sync.Mutex
	clock        time.Time
	destinations map[uuid.UUID]*domain.Destination
	ratings      map[uuid.UUID]*domain.Rating
	saved        map[uuid.UUID]*domain.SavedDestination
	users        map[uuid.UUID]*domain.User
	vehicles     map[uuid.UUID]*domain.Vehicle
	admins       map[uuid.UUID]*domain.AdminUser
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		destinations: map[uuid.UUID]*domain.Destination{},
		ratings:      map[uuid.UUID]*domain.Rating{},
		saved:        map[uuid.UUID]*domain.SavedDestination{},
		users:        map[uuid.UUID]*domain.User{},
		vehicles:     map[uuid.UUID]*domain.Vehicle{},
		admins:       map[uuid.UUID]*domain.AdminUser{},
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) addDestination(name string) *domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	d := &domain.Destination{
		ID:        uuid.New(),
		Name:      name,
		PhotoMain: "https://cdn.example/" + name + ".jpg",
		Category:  domain.CategoryNature,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.destinations[d.ID] = d
	return d
}

func (s *fakeStore) addUser(name string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	u := &domain.User{
		ID:            uuid.New(),
		Name:          name,
		Email:         strings.ToLower(name) + "@example.com",
		Location:      domain.DefaultUserLocation,
		TotalDistance: domain.DefaultTotalDistance,
		Status:        domain.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) average(id uuid.UUID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.destinations[id]; ok {
		return d.AverageRating
	}
	return -1
}

func (s *fakeStore) ratingCount(destinationID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.ratings {
		if r.DestinationID == destinationID {
			n++
		}
	}
	return n
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// destinations

type fakeDestinationRepo struct {
	store     *fakeStore
	setAvgErr error
	setCalls  int
}

func (r *fakeDestinationRepo) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *d
	cp.ID = uuid.New()
	cp.AverageRating = 0
	cp.CreatedAt = r.store.tick()
	cp.UpdatedAt = cp.CreatedAt
	r.store.destinations[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeDestinationRepo) Update(ctx context.Context, id uuid.UUID, in domain.DestinationInput) (*domain.Destination, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.destinations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Category != nil {
		d.Category = domain.DestinationCategory(*in.Category)
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Tags != nil {
		d.Tags = *in.Tags
	}
	d.UpdatedAt = r.store.tick()
	out := *d
	return &out, nil
}

func (r *fakeDestinationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.destinations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *d
	return &out, nil
}

func (r *fakeDestinationRepo) List(ctx context.Context, filter domain.DestinationListFilter) ([]domain.Destination, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []domain.Destination
	for _, d := range r.store.destinations {
		if filter.Category != "" && string(d.Category) != filter.Category {
			continue
		}
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	return paginate(all, filter.Limit, filter.Offset), total, nil
}

func (r *fakeDestinationRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(r.store.destinations))
	for id := range r.store.destinations {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeDestinationRepo) SetAverageRating(ctx context.Context, id uuid.UUID, average float64) error {
	r.setCalls++
	if r.setAvgErr != nil {
		return r.setAvgErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.destinations[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.AverageRating = average
	return nil
}

func (r *fakeDestinationRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.destinations[id]; !ok {
		return sql.ErrNoRows
	}
	for rid, rating := range r.store.ratings {
		if rating.DestinationID == id {
			delete(r.store.ratings, rid)
		}
	}
	for sid, saved := range r.store.saved {
		if saved.DestinationID == id {
			delete(r.store.saved, sid)
		}
	}
	delete(r.store.destinations, id)
	return nil
}

// ratings

type fakeRatingRepo struct {
	store     *fakeStore
	upsertErr error
}

func (r *fakeRatingRepo) Upsert(ctx context.Context, rating *domain.Rating, replaceMedia bool) (*domain.RatingUpsert, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.destinations[rating.DestinationID]; !ok {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	for _, existing := range r.store.ratings {
		if existing.UserID == rating.UserID && existing.DestinationID == rating.DestinationID {
			existing.Rating = rating.Rating
			existing.Comment = rating.Comment
			if replaceMedia {
				existing.Media = rating.Media
			}
			existing.UpdatedAt = r.store.tick()
			out := *existing
			return &domain.RatingUpsert{Rating: &out, Created: false}, nil
		}
	}
	cp := *rating
	cp.ID = uuid.New()
	cp.CreatedAt = r.store.tick()
	cp.UpdatedAt = cp.CreatedAt
	r.store.ratings[cp.ID] = &cp
	out := cp
	return &domain.RatingUpsert{Rating: &out, Created: true}, nil
}

func (r *fakeRatingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rating, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rating, ok := r.store.ratings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *rating
	return &out, nil
}

func (r *fakeRatingRepo) Update(ctx context.Context, id uuid.UUID, value *int, comment *string) (*domain.Rating, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rating, ok := r.store.ratings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if value != nil {
		rating.Rating = *value
	}
	if comment != nil {
		rating.Comment = *comment
	}
	rating.UpdatedAt = r.store.tick()
	out := *rating
	return &out, nil
}

func (r *fakeRatingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.ratings[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.store.ratings, id)
	return nil
}

func (r *fakeRatingRepo) List(ctx context.Context, filter domain.RatingFilter) ([]domain.Rating, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.Rating
	for _, rating := range r.store.ratings {
		if filter.DestinationID != nil && rating.DestinationID != *filter.DestinationID {
			continue
		}
		if filter.UserID != nil && rating.UserID != *filter.UserID {
			continue
		}
		if filter.Min != nil && rating.Rating < *filter.Min {
			continue
		}
		if filter.Max != nil && rating.Rating > *filter.Max {
			continue
		}
		out = append(out, *rating)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return paginate(out, filter.Limit, filter.Offset), total, nil
}

func (r *fakeRatingRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Rating, error) {
	out, _, err := r.List(ctx, domain.RatingFilter{DestinationID: &destinationID})
	return out, err
}

func (r *fakeRatingRepo) TotalsByDestination(ctx context.Context, destinationID uuid.UUID) (domain.RatingTotals, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	totals := domain.RatingTotals{}
	for _, rating := range r.store.ratings {
		if rating.DestinationID == destinationID {
			totals.Sum += int64(rating.Rating)
			totals.Count++
		}
	}
	return totals, nil
}

func (r *fakeRatingRepo) DestinationIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := map[uuid.UUID]struct{}{}
	var ids []uuid.UUID
	for _, rating := range r.store.ratings {
		if rating.UserID != userID {
			continue
		}
		if _, ok := seen[rating.DestinationID]; ok {
			continue
		}
		seen[rating.DestinationID] = struct{}{}
		ids = append(ids, rating.DestinationID)
	}
	return ids, nil
}

// saved destinations

type fakeSavedRepo struct {
	store *fakeStore
}

func (r *fakeSavedRepo) Toggle(ctx context.Context, userID, destinationID uuid.UUID) (*domain.SavedToggle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, saved := range r.store.saved {
		if saved.UserID == userID && saved.DestinationID == destinationID {
			delete(r.store.saved, id)
			return &domain.SavedToggle{IsSaved: false}, nil
		}
	}
	if _, ok := r.store.destinations[destinationID]; !ok {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	saved := &domain.SavedDestination{ID: uuid.New(), UserID: userID, DestinationID: destinationID, CreatedAt: r.store.tick()}
	r.store.saved[saved.ID] = saved
	out := *saved
	return &domain.SavedToggle{IsSaved: true, Saved: &out}, nil
}

func (r *fakeSavedRepo) Exists(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, saved := range r.store.saved {
		if saved.UserID == userID && saved.DestinationID == destinationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSavedRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SavedDestinationItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []domain.SavedDestinationItem
	for _, saved := range r.store.saved {
		if saved.UserID != userID {
			continue
		}
		item := domain.SavedDestinationItem{SavedDestination: *saved}
		if d, ok := r.store.destinations[saved.DestinationID]; ok {
			item.DestinationName = d.Name
			item.DestinationRating = d.AverageRating
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return paginate(items, limit, offset), nil
}

func (r *fakeSavedRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, saved := range r.store.saved {
		if saved.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSavedRepo) CountByDestination(ctx context.Context, destinationID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, saved := range r.store.saved {
		if saved.DestinationID == destinationID {
			n++
		}
	}
	return n, nil
}

// users

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) CreateEmailUser(ctx context.Context, name, email string, hash, salt []byte) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return nil, uniqueViolation()
		}
	}
	now := r.store.tick()
	u := &domain.User{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		PasswordSalt:  salt,
		Location:      domain.DefaultUserLocation,
		TotalDistance: domain.DefaultTotalDistance,
		Status:        domain.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.store.users[u.ID] = u
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) UpsertGoogleUser(ctx context.Context, email, name string, imageURL *string) (*domain.User, error) {
	r.store.mu.Lock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			u.IsVerified = true
			out := *u
			r.store.mu.Unlock()
			return &out, nil
		}
	}
	r.store.mu.Unlock()
	u, err := r.CreateEmailUser(ctx, name, email, nil, nil)
	if err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := r.store.users[u.ID]
	stored.IsVerified = true
	if imageURL != nil {
		stored.ProfileImage = *imageURL
	}
	out := *stored
	return &out, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Location != nil {
		u.Location = *update.Location
	}
	if update.ProfileImage != nil {
		u.ProfileImage = *update.ProfileImage
	}
	if update.TripsCompleted != nil {
		u.TripsCompleted = *update.TripsCompleted
	}
	if update.FavoriteDestinations != nil {
		u.FavoriteDestinations = *update.FavoriteDestinations
	}
	if update.TotalDistance != nil {
		u.TotalDistance = *update.TotalDistance
	}
	if update.IsVerified != nil {
		u.IsVerified = *update.IsVerified
	}
	u.UpdatedAt = r.store.tick()
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for otherID, u := range r.store.users {
		if otherID != id && strings.EqualFold(u.Email, email) {
			return nil, uniqueViolation()
		}
	}
	u, ok := r.store.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.Email = email
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.Status = status
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.User
	for _, u := range r.store.users {
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		if filter.Verified != nil && u.IsVerified != *filter.Verified {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return paginate(out, filter.Limit, filter.Offset), total, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.store.users, id)
	for rid, rating := range r.store.ratings {
		if rating.UserID == id {
			delete(r.store.ratings, rid)
		}
	}
	for sid, saved := range r.store.saved {
		if saved.UserID == id {
			delete(r.store.saved, sid)
		}
	}
	for vid, v := range r.store.vehicles {
		if v.UserID == id {
			delete(r.store.vehicles, vid)
		}
	}
	return nil
}

// vehicles

type fakeVehicleRepo struct {
	store *fakeStore
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *v
	cp.ID = uuid.New()
	cp.IsActive = true
	cp.CreatedAt = r.store.tick()
	cp.UpdatedAt = cp.CreatedAt
	r.store.vehicles[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeVehicleRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.Vehicle
	for _, v := range r.store.vehicles {
		if v.UserID == userID && v.IsActive {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) find(id, userID uuid.UUID) (*domain.Vehicle, error) {
	v, ok := r.store.vehicles[id]
	if !ok || v.UserID != userID || !v.IsActive {
		return nil, sql.ErrNoRows
	}
	return v, nil
}

func (r *fakeVehicleRepo) FindActive(ctx context.Context, id, userID uuid.UUID) (*domain.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, err := r.find(id, userID)
	if err != nil {
		return nil, err
	}
	out := *v
	return &out, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id, userID uuid.UUID, in domain.VehicleInput) (*domain.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, err := r.find(id, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Brand != nil {
		v.Brand = *in.Brand
	}
	if in.Type != nil {
		v.Type = domain.VehicleType(*in.Type)
	}
	if in.Year != nil {
		year := *in.Year
		v.Year = &year
	}
	out := *v
	return &out, nil
}

func (r *fakeVehicleRepo) Deactivate(ctx context.Context, id, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, err := r.find(id, userID)
	if err != nil {
		return err
	}
	v.IsActive = false
	return nil
}

func (r *fakeVehicleRepo) SetImage(ctx context.Context, id, userID uuid.UUID, imageURL string) (*domain.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, err := r.find(id, userID)
	if err != nil {
		return nil, err
	}
	v.Image = imageURL
	out := *v
	return &out, nil
}

// admins

type fakeAdminRepo struct {
	store *fakeStore
}

func (r *fakeAdminRepo) Create(ctx context.Context, username, hash string, role domain.AdminRole) (*domain.AdminUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.admins {
		if strings.EqualFold(a.Username, username) {
			return nil, uniqueViolation()
		}
	}
	now := r.store.tick()
	a := &domain.AdminUser{ID: uuid.New(), Username: username, PasswordHash: hash, Role: role, CreatedAt: now, UpdatedAt: now}
	r.store.admins[a.ID] = a
	out := *a
	return &out, nil
}

func (r *fakeAdminRepo) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.admins {
		if strings.EqualFold(a.Username, username) {
			out := *a
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.admins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *a
	return &out, nil
}

// object storage

type storedObject struct {
	bucket      string
	key         string
	contentType string
	data        []byte
}

type fakeStorage struct {
	mu      sync.Mutex
	objects []storedObject
	removed []string
	err     error
}

func (s *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, storedObject{bucket: bucket, key: objectName, contentType: contentType, data: buf.Bytes()})
	return "https://media.example/" + bucket + "/" + objectName, nil
}

func (s *fakeStorage) Remove(ctx context.Context, bucket, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, bucket+"/"+objectName)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
