package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// contacts, relative to RouteContacts
	RouteContacts        = RouteApiV1 + "/contacts"
	RouteContact         = "/:contact_id"
	RouteSearchFirstName = "/search/name"
	RouteSearchLastName  = "/search/surname"
	RouteSearchEmail     = "/search/email"
	RouteSearchBirthdays = "/search/birthdays"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
