package service

import (
	"fmt"
	"log"

	"yogastudio/internal/repository"
	"yogastudio/internal/security"
)

var defaultTeachers = [][2]string{
	{"Margot", "DELAHAYE"},
	{"Hélène", "THIERCELIN"},
}

// SeedService fills an empty database with the studio's starting data
type SeedService struct {
	userRepo    *repository.UserRepository
	teacherRepo *repository.TeacherRepository
}

// NewSeedService creates a new seed service
func NewSeedService(userRepo *repository.UserRepository, teacherRepo *repository.TeacherRepository) *SeedService {
	return &SeedService{userRepo: userRepo, teacherRepo: teacherRepo}
}

// Seed creates the default teachers when there are none and the admin
// account when its email is unused. It is safe to call on every start.
func (s *SeedService) Seed(adminEmail, adminPassword string) error {
	count, err := s.teacherRepo.CountTeachers()
	if err != nil {
		return err
	}
	if count == 0 {
		for _, name := range defaultTeachers {
			if _, err := s.teacherRepo.CreateTeacher(name[0], name[1]); err != nil {
				return fmt.Errorf("failed to seed teacher: %w", err)
			}
		}
		log.Printf("Seeded %d teachers", len(defaultTeachers))
	}

	if adminEmail == "" {
		return nil
	}

	admin, err := s.userRepo.GetUserByEmail(adminEmail)
	if err != nil {
		return err
	}
	if admin != nil {
		return nil
	}

	hash, err := security.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.CreateUser(adminEmail, hash, "Admin", "Admin", true); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	log.Printf("Seeded admin account %s", adminEmail)
	return nil
}
