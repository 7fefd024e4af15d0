package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

func TestUserService_Create_DefaultsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "driver1",
		Email:    "driver1@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Role != domain.RoleUser {
		t.Errorf("role = %q, want default %q", created.Role, domain.RoleUser)
	}
	if created.PasswordHash == "secret123" {
		t.Errorf("password stored in the clear")
	}
	if created.ID == "" {
		t.Errorf("expected a store-assigned id")
	}
}

func TestUserService_Create_ItemizesMissingFields(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{Email: "x@example.com"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	msg := verr.Error()
	for _, field := range []string{"username", "password"} {
		if !strings.Contains(msg, field) {
			t.Errorf("validation message %q missing field %q", msg, field)
		}
	}
	if strings.Contains(msg, "email") {
		t.Errorf("validation message %q should not flag email", msg)
	}
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "driver1",
		Email:    "driver1@example.com",
		Password: "secret123",
		Role:     "root",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	if !strings.Contains(verr.Error(), "role") {
		t.Errorf("validation message %q should flag role", verr.Error())
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	in := ports.CreateUserInput{Username: "driver1", Email: "a@example.com", Password: "pw123456"}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("second Create() error = %v, want ErrUserExists", err)
	}
}

func TestUserService_Update_BlankPasswordPreservesHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "driver1",
		Email:    "driver1@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	before, _ := repo.FindByID(context.Background(), created.ID)

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Username: "driver1",
		Email:    "new@example.com",
		Role:     domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Email != "new@example.com" || updated.Role != domain.RoleManager {
		t.Errorf("update not applied: %+v", updated)
	}

	after, _ := repo.FindByID(context.Background(), created.ID)
	if after.PasswordHash != before.PasswordHash {
		t.Errorf("blank password must preserve the stored hash")
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "driver1",
		Email:    "driver1@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrUserNotFound", err)
	}
}
