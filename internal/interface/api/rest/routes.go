package rest

// Paths relative to the configurable context root (SERVICE_CONTEXT_ROOT).
const (
	RouteRoot       = ""
	RouteByUUID     = "/:uuid"
	RouteAll        = "/all"
	RouteDepartment = "/department/:department"
	RouteRole       = "/role/:role"
	RouteActive     = "/active"
	RouteSearch     = "/search"
	RouteCount      = "/count"
	RouteActivate   = "/:uuid/activate"
	RouteDeactivate = "/:uuid/deactivate"

	// ops
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
