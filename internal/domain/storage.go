package domain

// KeyPrefix namespaces all store keys and index names. Assigned once from
// config at startup, before any repository is constructed.
var KeyPrefix = "catalog:"
