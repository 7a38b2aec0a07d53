package main

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentory/internal/domain/entity"
	"rentory/internal/usecase"
	"rentory/pkg/logger"
)

type seedAccount struct {
	account entity.Account
	pin     string
}

func seedAccounts(now time.Time) []entity.Account {
	staff := func(id, name, email string, position entity.StaffPosition, pin string) seedAccount {
		return seedAccount{account: entity.Account{ID: id, Name: name, Email: email, Role: entity.RoleStaff, Position: position}, pin: pin}
	}
	member := func(id, name, email string, role entity.Role, pin string) seedAccount {
		return seedAccount{account: entity.Account{ID: id, Name: name, Email: email, Role: role}, pin: pin}
	}

	seeds := []seedAccount{
		member("u1", "Demo Tenant", "tenant@rentory.com", entity.RoleTenant, "1111"),
		member("u2", "Demo Landlord", "landlord@rentory.com", entity.RoleLandlord, "5555"),
		member("u3", "Super Admin", "admin@rentory.com", entity.RoleAdmin, "1414"),
		member("u4", "Tour Guide", "guide@rentory.com", entity.RoleTourGuide, "0000"),
		staff("s1", "Sarah Ahmed", "sarah@rentory.com", entity.PositionComplianceOfficer, "1010"),
		staff("s2", "John Okoro", "john@rentory.com", entity.PositionOperationsManager, "2020"),
		member("g1", "Musa Abubakar", "musa@rentory.com", entity.RoleTourGuide, "0001"),
		member("g2", "Emeka Nwosu", "emeka@rentory.com", entity.RoleTourGuide, "0002"),
		member("g3", "Tamuno Briggs", "tamuno@rentory.com", entity.RoleTourGuide, "0003"),
		member("g4", "Sani Bello", "sani@rentory.com", entity.RoleTourGuide, "0004"),
	}

	accounts := make([]entity.Account, 0, len(seeds))
	for _, s := range seeds {
		hash, err := usecase.HashPIN(s.pin, bcrypt.DefaultCost)
		if err != nil {
			logger.Fatal("Failed to hash seed PIN for %s: %v", s.account.ID, err)
		}
		a := s.account
		a.PinHash = hash
		a.Status = entity.AccountStatusActive
		a.JoinedAt = now
		accounts = append(accounts, a)
	}
	return accounts
}

func seedListings() []entity.Listing {
	return []entity.Listing{
		{
			ID:              "p1",
			OwnerID:         "u2",
			Title:           "Luxury VI Executive Loft",
			Description:     "A masterpiece in Victoria Island. High-end finishes with expansive views of the Atlantic.",
			Category:        "RESIDENTIAL",
			Address:         "Adetokunbo Ademola, Victoria Island, Lagos",
			Price:           450000,
			Features:        []string{"Smart Lock", "24/7 Power", "Gym", "Staff Quarters"},
			Status:          "ACTIVE",
			AssignedAgentID: "g2",
			IsVerified:      true,
		},
		{
			ID:          "p2",
			OwnerID:     "u2",
			Title:       "Maitama Diplomatic Villa",
			Description: "4-Bedroom detached villa with pool on Gana Street.",
			Category:    "RESIDENTIAL",
			Address:     "Gana Street, Maitama, Abuja",
			Price:       850000,
			Features:    []string{"Pool", "Security Hub", "Borehole", "Study"},
			Status:      "ACTIVE",
			IsVerified:  true,
		},
		{
			ID:              "p3",
			OwnerID:         "u4",
			Title:           "PH GRA Tech Studio",
			Description:     "Optimized for digital nomads. High-speed fiber internet and silent inverter system.",
			Category:        "RESIDENTIAL",
			Address:         "GRA Phase 2, Port Harcourt, Rivers",
			Price:           120000,
			Features:        []string{"Fiber Internet", "Inverter System", "Security Post"},
			Status:          "ACTIVE",
			AssignedAgentID: "g3",
			IsVerified:      true,
		},
	}
}

func seedConversations(now time.Time) []entity.ConversationSession {
	return []entity.ConversationSession{
		{
			ID:              "chat_p1_u1",
			ListingID:       "p1",
			ListingTitle:    "Luxury VI Executive Loft",
			RenterID:        "u1",
			OwnerID:         "u2",
			AssignedAgentID: "g2",
			Messages: []entity.Message{
				{
					ID:        "m1",
					SenderID:  "g2",
					Text:      "Hello! I'm Emeka, your Guide for the VI Loft. Would you like to schedule a tour?",
					Timestamp: now,
					Read:      true,
				},
			},
			LastUpdated: now,
		},
	}
}
