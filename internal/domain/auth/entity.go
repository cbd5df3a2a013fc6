package auth

// Role distinguishes the two principals the mobile app knows about.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// AdminUserID is the fixed principal ID for the HR admin account. Notification
// rows addressed to it are visible to the admin dashboard.
const AdminUserID = "admin"
