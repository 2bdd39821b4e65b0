package service

import (
	"errors"
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	req := &dto.RegisterRequest{
		Email:     "chef@example.com",
		Username:  "chef",
		FirstName: "Ann",
		LastName:  "Cook",
		Password:  "secret123",
	}

	info, err := svc.Register(req)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if info.Email != "chef@example.com" || info.Username != "chef" {
		t.Errorf("unexpected user info: %+v", info)
	}

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := *req
		dup.Username = "other"
		if _, err := svc.Register(&dup); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup := *req
		dup.Email = "other@example.com"
		if _, err := svc.Register(&dup); !errors.Is(err, ErrUsernameExists) {
			t.Errorf("expected ErrUsernameExists, got %v", err)
		}
	})

	t.Run("PasswordIsHashed", func(t *testing.T) {
		userRepo := repository.NewUserRepository(db)
		user, err := userRepo.GetByEmail("chef@example.com")
		if err != nil {
			t.Fatalf("get user failed: %v", err)
		}
		if user.Password == "secret123" {
			t.Error("password stored in plain text")
		}
	})
}

func TestGetCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	user := seedUser(t, db, "chef")

	info, err := svc.GetCurrentUser(user.ID)
	if err != nil {
		t.Fatalf("get current user failed: %v", err)
	}
	if info.ID != user.ID || info.Username != "chef" {
		t.Errorf("unexpected user info: %+v", info)
	}

	if _, err := svc.GetCurrentUser(404); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
