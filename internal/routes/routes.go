package routes

const (
	// Health
	Health = "/health"

	// Auth endpoints
	AuthSignup = "/api/v1/auth/signup"
	AuthLogin  = "/api/v1/auth/login"
	AuthMe     = "/api/v1/auth/me"

	// Complaint workflow
	ComplaintsSubmit   = "/api/v1/complaints/submit"
	ComplaintsAccept   = "/api/v1/complaints/{id}/accept"
	ComplaintsReject   = "/api/v1/complaints/{id}/reject"
	ComplaintsResolve  = "/api/v1/complaints/{id}/resolve"
	ComplaintsEscalate = "/api/v1/complaints/{id}/escalate"
	ComplaintsStatus   = "/api/v1/complaints/{id}/status"
	ComplaintsBackfill = "/api/v1/complaints/backfill"

	// Listings
	ComplaintsMy       = "/api/v1/complaints/my"
	ComplaintsAssigned = "/api/v1/complaints/assigned"
	ComplaintsAll      = "/api/v1/complaints/all"
	ComplaintsLogsAll  = "/api/v1/complaints/logs/all"
	ComplaintsLogs     = "/api/v1/complaints/{id}/logs"
)
