package models

type AccountStatus string
type ContactStatus string
type ManagerRole string

const (
	// Pending is the state before signup OTP verification completes.
	// Suspended is applied administratively; there is no transition back
	// to Active in this service.
	AccountStatusPending   AccountStatus = "Pending"
	AccountStatusActive    AccountStatus = "Active"
	AccountStatusSuspended AccountStatus = "Suspended"

	ContactStatusPending  ContactStatus = "Pending"
	ContactStatusResolved ContactStatus = "Resolved"

	ManagerRoleSuperAdmin   ManagerRole = "SUPERADMIN"
	ManagerRoleAdminstrator ManagerRole = "ADMINSTRATOR"
	ManagerRoleAccountant   ManagerRole = "ACCOUNTANT"
)
