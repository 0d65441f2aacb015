package httpHandler

import (
	"testing"
	"time"

	"cat-server/entities"
	"cat-server/middleware"
	"cat-server/repositories"
	"cat-server/usecases"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type memUserRepo struct {
	users map[string]*entities.User
}

func (m *memUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.UserName
	}
	for _, u := range m.users {
		if u.UserName == user.UserName {
			return &repositories.DuplicateError{Field: "user_name"}
		}
		if u.Email == user.Email {
			return &repositories.DuplicateError{Field: "email"}
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByUserName(userName string) (*entities.User, error) {
	for _, u := range m.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) GetAll() ([]entities.User, error) {
	out := make([]entities.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Update(user *entities.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) Delete(id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

type memCatRepo struct {
	cats map[string]*entities.Cat
}

func (m *memCatRepo) Create(cat *entities.Cat) error {
	if cat.ID == "" {
		cat.ID = "cat-" + cat.CatName
	}
	m.cats[cat.ID] = cat
	return nil
}

func (m *memCatRepo) GetByID(id string) (*entities.Cat, error) {
	cat, ok := m.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cat, nil
}

func (m *memCatRepo) GetAll() ([]entities.Cat, error) {
	out := make([]entities.Cat, 0, len(m.cats))
	for _, c := range m.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCatRepo) GetByOwner(ownerID string) ([]entities.Cat, error) {
	var out []entities.Cat
	for _, c := range m.cats {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCatRepo) GetWithinBounds(box repositories.BoundingBox) ([]entities.Cat, error) {
	var out []entities.Cat
	for _, c := range m.cats {
		if c.Latitude >= box.MinLat && c.Latitude <= box.MaxLat &&
			c.Longitude >= box.MinLng && c.Longitude <= box.MaxLng {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCatRepo) GetOwned(id, ownerID string) (*entities.Cat, error) {
	cat, ok := m.cats[id]
	if !ok || cat.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return cat, nil
}

func (m *memCatRepo) Update(cat *entities.Cat) error {
	m.cats[cat.ID] = cat
	return nil
}

func (m *memCatRepo) Delete(id string) error {
	delete(m.cats, id)
	return nil
}

type testEnv struct {
	router   *gin.Engine
	userRepo *memUserRepo
	catRepo  *memCatRepo
}

// newTestEnv wires the full route tree the way server.Start does, over
// in-memory repositories.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := &memUserRepo{users: make(map[string]*entities.User)}
	catRepo := &memCatRepo{cats: make(map[string]*entities.Cat)}

	userUseCase := usecases.NewUserUseCase(userRepo, nil, bcrypt.MinCost, "")
	catUseCase := usecases.NewCatUseCase(catRepo, userRepo, nil)

	userHandler := NewUserHandler(userUseCase)
	catHandler := NewCatHandler(catUseCase)
	loginHandler := NewLoginHandler(userUseCase, testSecret, time.Hour)

	authed := middleware.Authenticate(testSecret)
	adminOnly := middleware.RequireRole("admin")

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api/v1")
	{
		cats := api.Group("/cats")
		{
			cats.GET("", catHandler.GetAllCats)
			cats.GET("/area", catHandler.GetCatsInArea)
			cats.GET("/my", authed, catHandler.GetCatsByOwner)
			cats.GET("/:id", catHandler.GetCat)
			cats.POST("", authed, middleware.Upload(t.TempDir()), catHandler.CreateCat)
			cats.PUT("/:id", authed, catHandler.UpdateCat)
			cats.DELETE("/:id", authed, catHandler.DeleteCat)
			cats.PUT("/:id/owner", authed, adminOnly, catHandler.UpdateCatOwnerAdmin)
			cats.DELETE("/:id/admin", authed, adminOnly, catHandler.DeleteCatAdmin)
		}
		users := api.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
			users.GET("/token", authed, userHandler.CheckToken)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("", authed, userHandler.UpdateCurrentUser)
			users.DELETE("", authed, userHandler.DeleteCurrentUser)
		}
		api.POST("/auth/login", loginHandler.Login)
	}

	return &testEnv{router: router, userRepo: userRepo, catRepo: catRepo}
}

// seedUser inserts a user directly and returns a valid session token.
func (e *testEnv) seedUser(t *testing.T, id, name, email, role string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &entities.User{ID: id, UserName: name, Email: email, Password: string(hash), Role: role}
	e.userRepo.users[id] = user

	token, err := middleware.GenerateToken(testSecret, time.Hour, user)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}
