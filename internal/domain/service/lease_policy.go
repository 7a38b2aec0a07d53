package service

import (
	"time"

	"rentory/internal/domain/entity"
)

// SignatureDecision is the outcome of a signature attempt. Lease is the
// value to store: the advanced lease when Allowed, the untouched input
// otherwise.
type SignatureDecision struct {
	Allowed bool
	Lease   entity.Lease
	Reason  string
}

// AuthorizeSignature holds the whole signing guard table. The lease's own
// tenant moves a landlord-signed lease to PENDING_ADMIN; an administrator or a compliance
// officer moves a PENDING_ADMIN lease to FULLY_SIGNED. Every other pairing
// of actor and status leaves the lease as it is.
func AuthorizeSignature(actor entity.Actor, lease entity.Lease, now time.Time) SignatureDecision {
	deny := func(reason string) SignatureDecision {
		return SignatureDecision{Lease: lease, Reason: reason}
	}

	switch a := actor.(type) {
	case entity.Renter:
		if lease.Tenant.ID != a.PartyID() {
			return deny("renter is not the tenant on this lease")
		}
		if lease.Status != entity.LeaseSignedByLandlord {
			return deny("lease is not awaiting a tenant signature")
		}
		next := lease.Clone()
		next.Status = entity.LeasePendingAdmin
		signedAt := now
		next.TenantSignedAt = &signedAt
		return SignatureDecision{Allowed: true, Lease: next, Reason: "tenant signature recorded"}

	case entity.Administrator:
		return countersign(lease, a.DisplayName(), now, deny)

	case entity.Staff:
		if a.Position != entity.PositionComplianceOfficer {
			return deny("staff position may not countersign leases")
		}
		return countersign(lease, a.DisplayName(), now, deny)

	case nil:
		return deny("no acting party")
	}

	return deny("role may not sign leases")
}

func countersign(lease entity.Lease, signature string, now time.Time, deny func(string) SignatureDecision) SignatureDecision {
	if lease.Status != entity.LeasePendingAdmin {
		return deny("lease is not awaiting administrative signature")
	}
	next := lease.Clone()
	next.Status = entity.LeaseFullySigned
	next.AdminSignature = signature
	signedAt := now
	next.AdminSignedAt = &signedAt
	return SignatureDecision{Allowed: true, Lease: next, Reason: "administrative signature recorded"}
}

// AwaitsSignatureFrom reports whether actor's signature is the next step
// for lease.
func AwaitsSignatureFrom(actor entity.Actor, lease entity.Lease) bool {
	return AuthorizeSignature(actor, lease, time.Time{}).Allowed
}

// CanCreateLease reports whether actor may issue a lease on listing. Only
// the listing's owner can.
func CanCreateLease(actor entity.Actor, listing *entity.Listing) bool {
	owner, ok := actor.(entity.Owner)
	return ok && listing != nil && listing.OwnerID == owner.PartyID()
}

// CanViewLease decides which leases show up in an actor's lease list.
func CanViewLease(actor entity.Actor, lease entity.Lease) bool {
	switch a := actor.(type) {
	case entity.Renter:
		return lease.Tenant.ID == a.PartyID()
	case entity.Owner:
		return lease.Landlord.ID == a.PartyID()
	case entity.Administrator:
		return true
	case entity.Staff:
		return a.Position == entity.PositionComplianceOfficer
	}
	return false
}
