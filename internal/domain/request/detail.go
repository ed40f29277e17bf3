package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

// MaxOvertime bounds an overtime duration.
const MaxOvertime = 24 * time.Hour

// RequestDetail is the typed form of Request.RequestedTime. It is either a
// CorrectionDetail or an OvertimeDetail.
type RequestDetail interface {
	Type() RequestType
}

// CorrectionDetail carries the corrected clock time.
type CorrectionDetail struct {
	Time TimeOfDay
}

func (CorrectionDetail) Type() RequestType { return RequestTypeCorrection }

// OvertimeDetail carries either a duration ("2h") or the clock time the
// overtime runs until ("19:30"). Exactly one is set.
type OvertimeDetail struct {
	Duration time.Duration
	Until    *TimeOfDay
}

func (OvertimeDetail) Type() RequestType { return RequestTypeOvertime }

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (t TimeOfDay) String() string {
	if t.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS, 24-hour clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if !validator.IsValidClockTime(s) {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}

	values := make([]int, 3)
	for i, p := range strings.Split(s, ":") {
		values[i], _ = strconv.Atoi(p)
	}

	return TimeOfDay{Hour: values[0], Minute: values[1], Second: values[2]}, nil
}

// ParseDetail interprets requestedTime for the given request type.
func ParseDetail(t RequestType, requestedTime string) (RequestDetail, error) {
	value := strings.TrimSpace(requestedTime)

	switch t {
	case RequestTypeCorrection:
		tod, err := ParseTimeOfDay(value)
		if err != nil {
			return nil, fmt.Errorf("correction requires a clock time such as 09:00: %w", err)
		}
		return CorrectionDetail{Time: tod}, nil

	case RequestTypeOvertime:
		if d, err := time.ParseDuration(value); err == nil {
			if d <= 0 || d > MaxOvertime {
				return nil, fmt.Errorf("overtime duration must be between 0 and %s", MaxOvertime)
			}
			return OvertimeDetail{Duration: d}, nil
		}
		tod, err := ParseTimeOfDay(value)
		if err != nil {
			return nil, fmt.Errorf("overtime requires a duration such as 2h or an end time such as 19:30")
		}
		return OvertimeDetail{Until: &tod}, nil
	}

	return nil, fmt.Errorf("unknown request type %q", t)
}
