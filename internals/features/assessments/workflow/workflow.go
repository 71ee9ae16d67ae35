// file: internals/features/assessments/workflow/workflow.go
//
// The assessment lifecycle state machine. The transition table is pure and
// fully testable; the service half applies a validated transition to the
// database with an optimistic-concurrency guard.
package workflow

import (
	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/helpers/errs"
)

/* ========================================================
   Statuses (persisted as strings)
======================================================== */

type Status string

const (
	StatusDraft              Status = "draft"
	StatusSubmitted          Status = "submitted"
	StatusApprovedProvincial Status = "approved_provincial"
	StatusApprovedRegional   Status = "approved_regional"
	StatusReturned           Status = "returned"
	StatusCompleted          Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSubmitted, StatusApprovedProvincial,
		StatusApprovedRegional, StatusReturned, StatusCompleted:
		return Status(s), nil
	}
	return "", errs.Validationf("unknown status %q", s)
}

// ApprovedStatuses are the only statuses that count as "approved" for
// aggregate reporting. Draft/submitted/returned never enter official
// statistics.
func ApprovedStatuses() []string {
	return []string{string(StatusApprovedProvincial), string(StatusApprovedRegional)}
}

// Editable reports whether items and impact scores may still be mutated.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusReturned
}

/* ========================================================
   Actions and the transition table
======================================================== */

type Action string

const (
	ActionSubmit            Action = "submit"
	ActionApproveProvincial Action = "approve_provincial"
	ActionReturnProvincial  Action = "return_provincial"
	ActionApproveRegional   Action = "approve_regional"
	ActionReturnRegional    Action = "return_regional"
)

type edge struct {
	from  []Status
	to    Status
	guard func(access.Role) bool
}

func isUnitActor(r access.Role) bool  { return r.IsUnitRole() }
func isProvincial(r access.Role) bool { return r == access.RoleProvincialApprover }
func isRegional(r access.Role) bool   { return r == access.RoleRegionalApprover }

var transitions = map[Action]edge{
	ActionSubmit: {
		from:  []Status{StatusDraft, StatusReturned},
		to:    StatusSubmitted,
		guard: isUnitActor,
	},
	ActionApproveProvincial: {
		from:  []Status{StatusSubmitted},
		to:    StatusApprovedProvincial,
		guard: isProvincial,
	},
	ActionReturnProvincial: {
		from:  []Status{StatusSubmitted},
		to:    StatusReturned,
		guard: isProvincial,
	},
	ActionApproveRegional: {
		from:  []Status{StatusApprovedProvincial},
		to:    StatusApprovedRegional,
		guard: isRegional,
	},
	ActionReturnRegional: {
		from:  []Status{StatusApprovedProvincial},
		to:    StatusReturned,
		guard: isRegional,
	},
}

// Options tunes table resolution for deployments without a national review
// tier, where regional approval closes the cycle outright.
type Options struct {
	RegionalApproveCompletes bool
}

// Resolve validates one (role, from, action) triple against the table and
// returns the to-state. Permission errors mean the role never owns that
// edge; conflict errors mean the edge exists but the current status does
// not admit it (the stale-read guard).
func Resolve(role access.Role, from Status, action Action, opts Options) (Status, error) {
	e, ok := transitions[action]
	if !ok {
		return "", errs.Validationf("unknown action %q", action)
	}
	if !e.guard(role) {
		return "", errs.Permissionf("role %s may not perform %s", role, action)
	}
	admitted := false
	for _, f := range e.from {
		if f == from {
			admitted = true
			break
		}
	}
	if !admitted {
		return "", errs.Conflictf("action %s is not valid from status %s", action, from)
	}
	to := e.to
	if action == ActionApproveRegional && opts.RegionalApproveCompletes {
		to = StatusCompleted
	}
	return to, nil
}

// Actions returns every action the table knows, in a stable order.
func Actions() []Action {
	return []Action{
		ActionSubmit,
		ActionApproveProvincial,
		ActionReturnProvincial,
		ActionApproveRegional,
		ActionReturnRegional,
	}
}

// Statuses returns every status, in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusDraft,
		StatusSubmitted,
		StatusApprovedProvincial,
		StatusApprovedRegional,
		StatusReturned,
		StatusCompleted,
	}
}
