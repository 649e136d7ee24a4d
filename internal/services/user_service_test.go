package services

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/repository"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Prompt{}, &models.User{})
	err = db.AutoMigrate(&models.User{}, &models.Prompt{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func TestCreateUserUniqueness(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice",
		Email:    "a@x.com",
		Password: "longpassword",
	})
	assert.NoError(t, err)
	assert.True(t, alice.IsActive)

	// Same username
	_, err = CreateUser(repository.CreateUserParams{
		Username: "alice",
		Email:    "other@x.com",
		Password: "longpassword",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Same email
	_, err = CreateUser(repository.CreateUserParams{
		Username: "alice2",
		Email:    "a@x.com",
		Password: "longpassword",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// A distinct user still goes through
	bob, err := CreateUser(repository.CreateUserParams{
		Username: "bob",
		Email:    "b@x.com",
		Password: "longpassword",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID)

	// And the conflict still holds afterwards
	_, err = CreateUser(repository.CreateUserParams{
		Username: "alice",
		Email:    "c@x.com",
		Password: "longpassword",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// A duplicate that lands between the pre-checks and the insert is
// rejected by the unique index, not the pre-checks. The driver error
// must come back translated so the service can map it to a conflict.
func TestCreateUserDuplicateCaughtByIndex(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	_, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	repo := repository.NewUserRepository(database.DB)

	// Straight through the repository, skipping the pre-checks the way
	// a racing request would
	dupUsername := repository.CreateUserParams{
		Username: "alice", Email: "other@x.com", Password: "longpassword",
	}
	_, err = repo.Create(dupUsername)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, classifyDuplicate(repo, dupUsername), ErrUsernameTaken)

	dupEmail := repository.CreateUserParams{
		Username: "someone-else", Email: "a@x.com", Password: "longpassword",
	}
	_, err = repo.Create(dupEmail)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, classifyDuplicate(repo, dupEmail), ErrEmailTaken)
}

func TestUpdateUserConflictsAndNotFound(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	_, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)
	bob, err := CreateUser(repository.CreateUserParams{
		Username: "bob", Email: "b@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	taken := "alice"
	_, err = UpdateUser(bob.ID, repository.UpdateUserParams{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	takenEmail := "a@x.com"
	_, err = UpdateUser(bob.ID, repository.UpdateUserParams{Email: &takenEmail})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting your own current username is not a conflict
	same := "bob"
	updated, err := UpdateUser(bob.ID, repository.UpdateUserParams{Username: &same})
	assert.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)

	_, err = UpdateUser(9999, repository.UpdateUserParams{Username: &taken})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)
	bob, err := CreateUser(repository.CreateUserParams{
		Username: "bob", Email: "b@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	var aliceIDs []uint
	for i := 0; i < 3; i++ {
		p, err := CreatePrompt("alice asks something", alice.ID)
		assert.NoError(t, err)
		aliceIDs = append(aliceIDs, p.ID)
	}
	bobPrompt, err := CreatePrompt("bob asks something", bob.ID)
	assert.NoError(t, err)

	assert.NoError(t, DeleteUser(alice.ID))

	// No orphan prompts survive the owner
	for _, id := range aliceIDs {
		p, err := FindPromptByID(id)
		assert.NoError(t, err)
		assert.Nil(t, p)
	}

	// Other owners are untouched
	p, err := FindPromptByID(bobPrompt.ID)
	assert.NoError(t, err)
	assert.NotNil(t, p)

	assert.ErrorIs(t, DeleteUser(alice.ID), ErrUserNotFound)
}

func TestFindUserByIDCaching(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis(t)
	defer mr.Close()

	alice, err := CreateUser(repository.CreateUserParams{
		Username: "alice", Email: "a@x.com", Password: "longpassword",
	})
	assert.NoError(t, err)

	got, err := FindUserByID(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// The read populated the cache
	assert.True(t, mr.Exists(userCacheKey(alice.ID)))

	// An update drops the stale entry
	email := "new@x.com"
	_, err = UpdateUser(alice.ID, repository.UpdateUserParams{Email: &email})
	assert.NoError(t, err)
	assert.False(t, mr.Exists(userCacheKey(alice.ID)))

	got, err = FindUserByID(alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, "new@x.com", got.Email)

	_, err = FindUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUsersPagination(t *testing.T) {
	setupTestDB()
	database.RedisClient = nil

	usernames := []string{"alice", "bob", "carol"}
	for i, name := range usernames {
		_, err := CreateUser(repository.CreateUserParams{
			Username: name,
			Email:    name + "@x.com",
			Password: "longpassword",
		})
		assert.NoError(t, err, "user %d", i)
	}

	page, err := FindUsers(0, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = FindUsers(3, 2)
	assert.NoError(t, err)
	assert.Empty(t, page)
}
