package domain_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func rolePtr(r domain.Role) *domain.Role { return &r }

func roles(rs ...domain.Role) map[domain.Role]bool {
	m := make(map[domain.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

var (
	owner   = domain.RoleOwner
	manager = domain.RoleManager
	coach   = domain.RoleCoach
	member  = domain.RoleMember
	anyRole = roles(owner, manager, coach, member)
	nobody  = roles()
)

func TestAllowed_Matrix(t *testing.T) {
	manageTargets := map[domain.Role]map[domain.Role]bool{
		owner:   anyRole,
		manager: roles(coach, member),
		coach:   roles(member),
		member:  nobody,
	}
	unconstrained := func(actors ...domain.Role) map[domain.Role]map[domain.Role]bool {
		out := map[domain.Role]map[domain.Role]bool{owner: nobody, manager: nobody, coach: nobody, member: nobody}
		for _, a := range actors {
			out[a] = anyRole
		}
		return out
	}

	matrix := map[domain.Operation]map[domain.Role]map[domain.Role]bool{
		domain.OpCreateAccount:      manageTargets,
		domain.OpRemoveAccount:      manageTargets,
		domain.OpUpdateAccount:      manageTargets,
		domain.OpListAccountsByRole: manageTargets,
		domain.OpMarkAttendanceForOther: {
			owner:   anyRole,
			manager: anyRole,
			coach:   roles(member),
			member:  nobody,
		},
		domain.OpAssignPlan:      unconstrained(owner, manager, coach),
		domain.OpViewAllInvoices: unconstrained(owner, manager),
		domain.OpSearchAccounts:  unconstrained(owner, manager),
	}

	for op, byActor := range matrix {
		for _, actor := range domain.AllRoles {
			for _, target := range domain.AllRoles {
				want := byActor[actor][target]
				t.Run(fmt.Sprintf("%s/%s->%s", op, actor, target), func(t *testing.T) {
					assert.Equal(t, want, domain.Allowed(actor, op, rolePtr(target)))
				})
			}
		}
	}
}

func TestAllowed_NoTarget(t *testing.T) {
	tests := []struct {
		actor domain.Role
		op    domain.Operation
		want  bool
	}{
		{owner, domain.OpManagePlans, true},
		{manager, domain.OpManagePlans, true},
		{coach, domain.OpManagePlans, false},
		{member, domain.OpManagePlans, false},
		{manager, domain.OpManageExpenses, true},
		{coach, domain.OpManageExpenses, false},
		{coach, domain.OpViewReports, true},
		{member, domain.OpViewReports, false},
		{coach, domain.OpViewFinance, false},
		{owner, domain.OpViewFinance, true},
		{coach, domain.OpAssignCoach, false},
		{coach, domain.OpListAccountsByRole, true},
		{member, domain.OpCreateAccount, false},
		{domain.Role("ADMIN"), domain.OpCreateAccount, false},
		{owner, domain.Operation("DROP_TABLES"), false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.actor, tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Allowed(tt.actor, tt.op, nil))
		})
	}
}

func TestPrincipal_CanActOn_CoachDelegate(t *testing.T) {
	c := domain.Principal{AccountID: "coach-1", Role: coach}
	mine := domain.Account{AccountID: "m-1", Role: member, CoachID: "coach-1"}
	theirs := domain.Account{AccountID: "m-2", Role: member, CoachID: "coach-2"}
	unassigned := domain.Account{AccountID: "m-3", Role: member}
	mgr := domain.Account{AccountID: "mgr-1", Role: manager}

	assert.True(t, c.CanActOn(domain.OpRemoveAccount, mine))
	assert.False(t, c.CanActOn(domain.OpRemoveAccount, theirs))
	assert.False(t, c.CanActOn(domain.OpRemoveAccount, unassigned))
	assert.False(t, c.CanActOn(domain.OpRemoveAccount, mgr))

	assert.True(t, c.CanActOn(domain.OpMarkAttendanceForOther, mine))
	assert.False(t, c.CanActOn(domain.OpMarkAttendanceForOther, theirs))

	// Plan assignment has no delegate constraint.
	assert.True(t, c.CanActOn(domain.OpAssignPlan, theirs))

	m := domain.Principal{AccountID: "mgr-1", Role: manager}
	assert.True(t, m.CanActOn(domain.OpRemoveAccount, theirs))
	assert.False(t, m.CanActOn(domain.OpRemoveAccount, domain.Account{Role: owner}))
}

func TestRole_Parse(t *testing.T) {
	r, err := domain.ParseRole(" coach ")
	assert.NoError(t, err)
	assert.Equal(t, coach, r)

	_, err = domain.ParseRole("trainer")
	assert.Error(t, err)

	r, err = domain.RoleFromLegacyCode(4)
	assert.NoError(t, err)
	assert.Equal(t, member, r)

	_, err = domain.RoleFromLegacyCode(0)
	assert.Error(t, err)

	assert.Greater(t, owner.Rank(), manager.Rank())
	assert.Greater(t, manager.Rank(), coach.Rank())
	assert.Greater(t, coach.Rank(), member.Rank())
}
