package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
	utils "github.com/phillip/venturelink/utils"
)

type Users struct {
	store *store.Store
	log   *zap.Logger
	cost  int
	now   func() time.Time
}

func NewUsers(st *store.Store, log *zap.Logger) *Users {
	return &Users{store: st, log: log.Named("users"), cost: bcrypt.DefaultCost, now: time.Now}
}

type Registration struct {
	Name     string
	Email    string
	Password string
	Role     string
	Company  string
	Bio      string
}

// Register creates an account. E-mail addresses are compared case-insensitively.
func (u *Users) Register(ctx context.Context, in Registration) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return models.User{}, err
	}

	u.store.Lock()
	defer u.store.Unlock()

	users := u.store.Users.All(ctx)
	for _, existing := range users {
		if existing.Email == email {
			return models.User{}, fail(ErrConflict, "User with this email already exists")
		}
	}

	user := models.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Role:         in.Role,
		Company:      in.Company,
		Bio:          in.Bio,
		PasswordHash: string(hash),
		CreatedAt:    u.now().UTC(),
	}
	u.store.Users.Save(ctx, append(users, user))

	u.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Authenticate checks an e-mail and password pair.
func (u *Users) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, ok := u.store.Users.Find(ctx, func(x models.User) bool { return x.Email == email })
	if !ok {
		return models.User{}, fail(ErrInvalidCredentials, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fail(ErrInvalidCredentials, "Invalid email or password")
	}
	return user, nil
}

func (u *Users) Get(ctx context.Context, id string) (models.User, bool) {
	return u.store.Users.Find(ctx, func(x models.User) bool { return x.ID == id })
}
