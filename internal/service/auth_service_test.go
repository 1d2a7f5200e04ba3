package service

import (
	"errors"
	"testing"

	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID uint
	// blindLookup makes FindByUsername miss, simulating the window where a
	// concurrent insert is not yet visible to the pre-check.
	blindLookup bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if _, exists := r.users[user.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	user.ID = r.nextID
	r.nextID++
	copy := *user
	r.users[user.Username] = &copy
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copy := *user
			return &copy, nil
		}
	}
	return &model.User{}, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	if r.blindLookup {
		return &model.User{}, gorm.ErrRecordNotFound
	}
	user, exists := r.users[username]
	if !exists {
		return &model.User{}, gorm.ErrRecordNotFound
	}
	copy := *user
	return &copy, nil
}

func registerRequest(username string) dto.RegisterRequest {
	return dto.RegisterRequest{Username: username, Password: "secret123", Name: "Test User"}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo)

	user, err := auth.Register(registerRequest("alice"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "alice" || user.Role != "user" {
		t.Errorf("unexpected user response: %+v", user)
	}

	stored := repo.users["alice"]
	if stored.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
		t.Errorf("stored password is not a valid bcrypt hash of the input: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo)

	if _, err := auth.Register(registerRequest("alice")); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := auth.Register(registerRequest("alice")); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("second Register err = %v, want ErrUsernameTaken", err)
	}

	// The first registration survives the rejected duplicate.
	if _, err := repo.FindByUsername("alice"); err != nil {
		t.Errorf("first user no longer retrievable: %v", err)
	}
}

func TestRegisterDuplicateRaceSurfacedByStore(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo)

	if _, err := auth.Register(registerRequest("bob")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// The pre-check misses the concurrent insert; the store's unique index
	// reports the duplicate instead.
	repo.blindLookup = true
	if _, err := auth.Register(registerRequest("bob")); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo)

	if _, err := auth.Register(registerRequest("alice")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := auth.Login("alice", "secret123")
	if err != nil {
		t.Fatalf("Login with correct password: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}

	if _, err := auth.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}
