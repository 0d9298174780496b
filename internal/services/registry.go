package services

// ServiceContainer holds all application services.
type ServiceContainer struct {
	TokenService      TokenService
	VendorAuthService VendorAuthService
	UserAuthService   UserAuthService
	ManagerService    ManagerService
}
