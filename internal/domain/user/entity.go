package user

// ID identifies the authenticated owner of a request. Users themselves are
// managed by the auth subsystem; this service only ever reads the id.
type ID int64
