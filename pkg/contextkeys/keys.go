package contextkeys

type contextKey string

const (
	BusinessIDKey   contextKey = "BusinessID"
	UserIDKey       contextKey = "UserID"
	DriverIDKey     contextKey = "DriverID"
	RoleKey         contextKey = "Role"
	IsSuperAdminKey contextKey = "IsSuperAdmin"
)
