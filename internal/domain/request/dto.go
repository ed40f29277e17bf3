package request

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

// MaxReasonLength is counted in characters.
const MaxReasonLength = 1000

type CreateRequestRequest struct {
	UserID        string `json:"-"`
	Type          string `json:"type"`
	Date          string `json:"date"`
	RequestedTime string `json:"requested_time"`
	Reason        string `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !RequestType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: Correction, Overtime",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.RequestedTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_time",
			Message: "requested_time is required",
		})
	} else if RequestType(r.Type).IsValid() {
		if _, err := ParseDetail(RequestType(r.Type), r.RequestedTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_time",
				Message: err.Error(),
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if utf8.RuneCountInString(r.Reason) > MaxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: fmt.Sprintf("reason must not exceed %d characters", MaxReasonLength),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DetailResponse struct {
	Kind            string  `json:"kind"`
	Time            *string `json:"time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Until           *string `json:"until,omitempty"`
}

type RequestResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	RequestedTime string          `json:"requested_time"`
	Detail        *DetailResponse `json:"detail,omitempty"`
	Reason        string          `json:"reason"`
	Status        string          `json:"status"`
	ApproverID    *string         `json:"approver_id,omitempty"`
	ResolvedAt    *string         `json:"resolved_at,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func toDetailResponse(d RequestDetail) *DetailResponse {
	switch v := d.(type) {
	case CorrectionDetail:
		s := v.Time.String()
		return &DetailResponse{Kind: strings.ToLower(string(v.Type())), Time: &s}
	case OvertimeDetail:
		resp := &DetailResponse{Kind: strings.ToLower(string(v.Type()))}
		if v.Until != nil {
			s := v.Until.String()
			resp.Until = &s
		} else {
			minutes := int(v.Duration / time.Minute)
			resp.DurationMinutes = &minutes
		}
		return resp
	}
	return nil
}

func ToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		Type:          string(r.Type),
		Date:          r.Date,
		RequestedTime: r.RequestedTime,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if d, err := r.Detail(); err == nil {
		resp.Detail = toDetailResponse(d)
	}
	if r.ResolvedAt != nil {
		s := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &s
	}
	return resp
}

func ToResponses(requests []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToResponse(r))
	}
	return out
}

// SortNewestFirst orders requests by CreatedAt descending, ties by ID.
func SortNewestFirst(requests []Request) {
	sort.SliceStable(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID < requests[j].ID
	})
}
