package domain

// Operation identifies an action subject to role-based access control.
type Operation string

const (
	OpCreateAccount          Operation = "CREATE_ACCOUNT"
	OpRemoveAccount          Operation = "REMOVE_ACCOUNT"
	OpUpdateAccount          Operation = "UPDATE_ACCOUNT"
	OpListAccountsByRole     Operation = "LIST_ACCOUNTS_BY_ROLE"
	OpMarkAttendanceForOther Operation = "MARK_ATTENDANCE_FOR_OTHER"
	OpAssignPlan             Operation = "ASSIGN_PLAN"
	OpViewAllInvoices        Operation = "VIEW_ALL_INVOICES"
	OpSearchAccounts         Operation = "SEARCH_ACCOUNTS"

	OpManagePlans            Operation = "MANAGE_PLANS"
	OpManageExpenses         Operation = "MANAGE_EXPENSES"
	OpAssignCoach            Operation = "ASSIGN_COACH"
	OpViewInvoices           Operation = "VIEW_INVOICES"
	OpManageInvoices         Operation = "MANAGE_INVOICES"
	OpViewReports            Operation = "VIEW_REPORTS"
	OpViewFinance            Operation = "VIEW_FINANCE"
	OpViewAttendanceForOther Operation = "VIEW_ATTENDANCE_FOR_OTHER"
)

// Allowed decides whether actor may perform op, optionally against an account
// holding role target. A nil target checks the actor role alone.
// Unknown roles and operations are denied.
func Allowed(actor Role, op Operation, target *Role) bool {
	switch op {
	case OpCreateAccount, OpRemoveAccount, OpUpdateAccount, OpListAccountsByRole:
		return canManageRole(actor, target)
	case OpMarkAttendanceForOther, OpViewAttendanceForOther:
		switch actor {
		case RoleOwner, RoleManager:
			return true
		case RoleCoach:
			return target == nil || *target == RoleMember
		default:
			return false
		}
	case OpAssignPlan, OpViewInvoices, OpManageInvoices, OpViewReports:
		return actor == RoleOwner || actor == RoleManager || actor == RoleCoach
	case OpViewAllInvoices, OpSearchAccounts, OpManagePlans, OpManageExpenses, OpAssignCoach, OpViewFinance:
		return actor == RoleOwner || actor == RoleManager
	default:
		return false
	}
}

// canManageRole: Owner any; Manager Coach or Member; Coach Member only.
func canManageRole(actor Role, target *Role) bool {
	switch actor {
	case RoleOwner:
		return target == nil || target.IsValid()
	case RoleManager:
		return target == nil || *target == RoleCoach || *target == RoleMember
	case RoleCoach:
		return target == nil || *target == RoleMember
	case RoleMember:
		return false
	default:
		return false
	}
}

// delegateScoped lists operations where a coach may only touch members they coach.
func delegateScoped(op Operation) bool {
	switch op {
	case OpRemoveAccount, OpUpdateAccount, OpListAccountsByRole, OpMarkAttendanceForOther, OpViewAttendanceForOther:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	AccountID string `json:"accountID"`
	Role      Role   `json:"role"`
}

// Can checks the matrix for op without a target account.
func (p Principal) Can(op Operation) bool {
	return Allowed(p.Role, op, nil)
}

// CanActOn checks the matrix for op against target, including the coach delegate rule.
func (p Principal) CanActOn(op Operation, target Account) bool {
	role := target.Role
	if !Allowed(p.Role, op, &role) {
		return false
	}
	if p.Role == RoleCoach && delegateScoped(op) {
		return target.IsCoachedBy(p.AccountID)
	}
	return true
}

// IsSelf reports whether accountID names the principal itself.
func (p Principal) IsSelf(accountID string) bool {
	return accountID == "" || accountID == p.AccountID
}
