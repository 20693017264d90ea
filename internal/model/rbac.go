package model

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleHRManager  Role = "HR_MANAGER"
	RoleLeader     Role = "LEADER"
	RoleTimekeeper Role = "TIMEKEEPER"
	RoleStaff      Role = "STAFF"
)

type Capability string

const (
	CapView          Capability = "view"
	CapEdit          Capability = "edit"
	CapDelete        Capability = "delete"
	CapLock          Capability = "lock"
	CapEvaluate      Capability = "evaluate"
	CapExport        Capability = "export"
	CapManageCatalog Capability = "manage_catalog"
	CapManageUsers   Capability = "manage_users"
	// CapBypassLock lets a role keep writing into a locked period.
	CapBypassLock Capability = "bypass_lock"
	// CapAllDepartments lifts the managed-department restriction.
	CapAllDepartments Capability = "all_departments"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapView, CapEdit, CapDelete, CapLock, CapEvaluate, CapExport,
		CapManageCatalog, CapManageUsers, CapBypassLock, CapAllDepartments,
	},
	RoleHRManager: {
		CapView, CapEdit, CapDelete, CapLock, CapEvaluate, CapExport,
		CapManageCatalog, CapBypassLock, CapAllDepartments,
	},
	RoleLeader:     {CapView, CapEdit, CapEvaluate, CapExport, CapBypassLock, CapAllDepartments},
	RoleTimekeeper: {CapView, CapEdit, CapExport},
	RoleStaff:      {CapView, CapEdit},
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

func (r Role) Capabilities() []Capability {
	return append([]Capability(nil), roleCapabilities[r]...)
}

// Actor is the authenticated caller, rebuilt from the JWT on every request.
type Actor struct {
	UserID         uint
	Username       string
	Role           Role
	ManagedDeptIDs []uint
}

func (a *Actor) Can(c Capability) bool {
	return a != nil && a.Role.Can(c)
}

func (a *Actor) CanAccessDepartment(departmentID uint) bool {
	if a == nil {
		return false
	}
	if a.Can(CapAllDepartments) {
		return true
	}
	for _, id := range a.ManagedDeptIDs {
		if id == departmentID {
			return true
		}
	}
	return false
}
