package usecase

import (
	"sync"
	"time"

	"rentory/internal/adapter/repository"
	"rentory/internal/domain/entity"
	domainrepo "rentory/internal/domain/repository"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testAccounts() []entity.Account {
	active := func(id, name string, role entity.Role) entity.Account {
		return entity.Account{ID: id, Name: name, Role: role, Status: entity.AccountStatusActive}
	}
	compliance := active("s1", "Sarah Ahmed", entity.RoleStaff)
	compliance.Position = entity.PositionComplianceOfficer
	operations := active("s2", "John Okoro", entity.RoleStaff)
	operations.Position = entity.PositionOperationsManager
	suspended := active("u9", "Dormant Renter", entity.RoleTenant)
	suspended.Status = entity.AccountStatusSuspended

	return []entity.Account{
		active("u1", "Tunde Bakare", entity.RoleTenant),
		active("u5", "Ada Obi", entity.RoleTenant),
		active("u2", "Chief Okonkwo", entity.RoleLandlord),
		active("u3", "Platform Admin", entity.RoleAdmin),
		active("g2", "Musa Bello", entity.RoleTourGuide),
		compliance,
		operations,
		suspended,
	}
}

func testListings() []entity.Listing {
	return []entity.Listing{
		{ID: "p1", OwnerID: "u2", Title: "Luxury VI Executive Loft", Status: "ACTIVE", AssignedAgentID: "g2"},
		{ID: "p2", OwnerID: "u2", Title: "Lekki Garden Duplex", Status: "ACTIVE"},
		{ID: "p3", OwnerID: "u7", Title: "Ikeja Event Hall", Status: "ACTIVE"},
	}
}

type recordedMessage struct {
	session entity.ConversationSession
	msg     entity.Message
	created bool
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []recordedMessage
	leases   []entity.Lease
}

func (n *recordingNotifier) MessageAppended(session entity.ConversationSession, msg entity.Message, created bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, recordedMessage{session: session, msg: msg, created: created})
}

func (n *recordingNotifier) LeaseUpdated(lease entity.Lease) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leases = append(n.leases, lease)
}

type stubLimiter struct {
	deny map[string]bool
}

func (l stubLimiter) Allow(key, action string) (bool, time.Duration) {
	if l.deny[action] {
		return false, 5 * time.Second
	}
	return true, 0
}

type testStores struct {
	accounts      domainrepo.AccountRepository
	listings      domainrepo.ListingRepository
	leases        domainrepo.LeaseRepository
	conversations domainrepo.ConversationRepository
}

func newTestStores(seed ...entity.ConversationSession) testStores {
	return testStores{
		accounts:      repository.NewMemoryAccountRepository(testAccounts()),
		listings:      repository.NewMemoryListingRepository(testListings()),
		leases:        repository.NewMemoryLeaseRepository(),
		conversations: repository.NewMemoryConversationRepository(seed...),
	}
}
