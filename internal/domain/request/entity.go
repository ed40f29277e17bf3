package request

import (
	"time"
)

type RequestType string

const (
	RequestTypeCorrection RequestType = "Correction"
	RequestTypeOvertime   RequestType = "Overtime"
)

// IsValid reports whether t is a known request type.
func (t RequestType) IsValid() bool {
	return t == RequestTypeCorrection || t == RequestTypeOvertime
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// IsResolution reports whether s is a terminal status a pending request can
// move to.
func (s RequestStatus) IsResolution() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request is an employee-initiated correction or overtime request. Status
// starts at Pending and changes exactly once, together with ApproverID.
type Request struct {
	ID            string
	UserID        string
	UserName      string // denormalized at creation
	Type          RequestType
	Date          string // YYYY-MM-DD
	RequestedTime string // raw value, see Detail
	Reason        string
	Status        RequestStatus
	ApproverID    *string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPending reports whether the request still awaits a decision.
func (r Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// Detail parses RequestedTime according to Type.
func (r Request) Detail() (RequestDetail, error) {
	return ParseDetail(r.Type, r.RequestedTime)
}
