package domain

// ApplicationStatus is the admin-driven lifecycle of an application.
//
// The intended flow is Submitted → Reviewed → Scheduled → Approved, with
// Rejected reachable from any stage. Any valid status may be assigned from
// any other; nothing here blocks a transition.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "Submitted"
	StatusReviewed  ApplicationStatus = "Reviewed"
	StatusScheduled ApplicationStatus = "Scheduled"
	StatusApproved  ApplicationStatus = "Approved"
	StatusRejected  ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every selectable application status in flow order.
var ApplicationStatuses = []ApplicationStatus{
	StatusSubmitted, StatusReviewed, StatusScheduled, StatusApproved, StatusRejected,
}

// Valid reports whether s is one of the five known statuses.
func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanonicalNext returns the next status on the linear happy path and false
// once the flow has ended (Approved or Rejected).
func (s ApplicationStatus) CanonicalNext() (ApplicationStatus, bool) {
	switch s {
	case StatusSubmitted:
		return StatusReviewed, true
	case StatusReviewed:
		return StatusScheduled, true
	case StatusScheduled:
		return StatusApproved, true
	}
	return "", false
}

// IsTerminal reports whether s ends the canonical flow.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// InspectionStatus is the lifecycle of an inspection request:
// Pending → Confirmed → Completed, or Cancelled at any point.
type InspectionStatus string

const (
	InspectionPending   InspectionStatus = "Pending"
	InspectionConfirmed InspectionStatus = "Confirmed"
	InspectionCompleted InspectionStatus = "Completed"
	InspectionCancelled InspectionStatus = "Cancelled"
)

// InspectionStatuses lists every selectable inspection status in flow order.
var InspectionStatuses = []InspectionStatus{
	InspectionPending, InspectionConfirmed, InspectionCompleted, InspectionCancelled,
}

// Valid reports whether s is one of the four known statuses.
func (s InspectionStatus) Valid() bool {
	for _, v := range InspectionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanonicalNext returns the next status on the linear happy path.
func (s InspectionStatus) CanonicalNext() (InspectionStatus, bool) {
	switch s {
	case InspectionPending:
		return InspectionConfirmed, true
	case InspectionConfirmed:
		return InspectionCompleted, true
	}
	return "", false
}

// IsTerminal reports whether s ends the canonical flow.
func (s InspectionStatus) IsTerminal() bool {
	return s == InspectionCompleted || s == InspectionCancelled
}
