package server

const (
	RouteRegister = "/auth/register"
	RouteLogin    = "/auth/login"
	RouteLogout   = "/auth/logout"
	RouteRefresh  = "/auth/refresh"
)
