package usecases

import (
	"cat-server/entities"
	"cat-server/repositories"

	"gorm.io/gorm"
)

type mockUserRepo struct {
	users      map[string]*entities.User
	createErr  error
	byUserName map[string]*entities.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[string]*entities.User),
		byUserName: make(map[string]*entities.User),
	}
}

func (m *mockUserRepo) Create(user *entities.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = "user-" + user.UserName
	}
	m.users[user.ID] = user
	m.byUserName[user.UserName] = user
	return nil
}

func (m *mockUserRepo) GetByID(id string) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByUserName(userName string) (*entities.User, error) {
	user, ok := m.byUserName[userName]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetAll() ([]entities.User, error) {
	out := make([]entities.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(user *entities.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(id string) error {
	user, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byUserName, user.UserName)
	delete(m.users, id)
	return nil
}

type mockCatRepo struct {
	cats map[string]*entities.Cat
}

func newMockCatRepo() *mockCatRepo {
	return &mockCatRepo{cats: make(map[string]*entities.Cat)}
}

func (m *mockCatRepo) Create(cat *entities.Cat) error {
	if cat.ID == "" {
		cat.ID = "cat-" + cat.CatName
	}
	m.cats[cat.ID] = cat
	return nil
}

func (m *mockCatRepo) GetByID(id string) (*entities.Cat, error) {
	cat, ok := m.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cat, nil
}

func (m *mockCatRepo) GetAll() ([]entities.Cat, error) {
	out := make([]entities.Cat, 0, len(m.cats))
	for _, c := range m.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCatRepo) GetByOwner(ownerID string) ([]entities.Cat, error) {
	var out []entities.Cat
	for _, c := range m.cats {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCatRepo) GetWithinBounds(box repositories.BoundingBox) ([]entities.Cat, error) {
	var out []entities.Cat
	for _, c := range m.cats {
		if c.Latitude >= box.MinLat && c.Latitude <= box.MaxLat &&
			c.Longitude >= box.MinLng && c.Longitude <= box.MaxLng {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCatRepo) GetOwned(id, ownerID string) (*entities.Cat, error) {
	cat, ok := m.cats[id]
	if !ok || cat.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return cat, nil
}

func (m *mockCatRepo) Update(cat *entities.Cat) error {
	if _, ok := m.cats[cat.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.cats[cat.ID] = cat
	return nil
}

func (m *mockCatRepo) Delete(id string) error {
	if _, ok := m.cats[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.cats, id)
	return nil
}

type recordedEvent struct {
	actorID    string
	action     string
	resource   string
	resourceID string
}

type mockSink struct {
	events []recordedEvent
}

func (m *mockSink) Record(actorID, action, resource, resourceID string) {
	m.events = append(m.events, recordedEvent{actorID, action, resource, resourceID})
}
