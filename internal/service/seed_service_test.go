package service

import (
	"testing"
)

func TestSeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	seed := NewSeedService(env.users, env.teachers)

	for i := 0; i < 2; i++ {
		if err := seed.Seed("yoga@studio.com", "test!1234"); err != nil {
			t.Fatalf("Seed() run %d error = %v", i+1, err)
		}
	}

	teachers, err := env.teachers.GetAllTeachers()
	if err != nil {
		t.Fatal(err)
	}
	if len(teachers) != len(defaultTeachers) {
		t.Errorf("teachers = %d, want %d", len(teachers), len(defaultTeachers))
	}

	admins, err := env.users.CountAdmins()
	if err != nil {
		t.Fatal(err)
	}
	if admins != 1 {
		t.Errorf("admins = %d, want 1", admins)
	}

	auth := NewAuthService(env.users, env.tokens, nil)
	info, err := auth.Login("yoga@studio.com", "test!1234")
	if err != nil {
		t.Fatalf("seeded admin cannot log in: %v", err)
	}
	if !info.Admin {
		t.Error("seeded account is not an admin")
	}
}
