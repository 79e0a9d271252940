package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"finledger/internal/core"
)

func TestUserServiceCreate(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.repo)
	ctx := context.Background()

	user, err := svc.Create(ctx, "  carol  ")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Name != "carol" {
		t.Fatalf("name not trimmed: %q", user.Name)
	}

	if _, err := svc.Create(ctx, "   "); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("blank name: got %v, want %v", err, core.ErrEmptyName)
	}
	if _, err := svc.Create(ctx, strings.Repeat("x", 256)); !errors.Is(err, core.ErrNameTooLong) {
		t.Fatalf("long name: got %v, want %v", err, core.ErrNameTooLong)
	}
}

func TestUserServiceCreateLogsOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.repo)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	if _, err := svc.Create(context.Background(), "dave"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if n := strings.Count(buf.String(), "User created"); n != 1 {
		t.Fatalf("expected one creation log line, got %d:\n%s", n, buf.String())
	}
}
