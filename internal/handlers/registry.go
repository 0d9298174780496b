package handlers

// AppHandlers holds all HTTP handlers of the application.
type AppHandlers struct {
	VendorAuth *VendorAuthHandler
	UserAuth   *UserAuthHandler
	Manager    *ManagerHandler
}
