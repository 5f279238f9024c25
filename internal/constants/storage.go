package constants

// JSONSchemaVersion is the layout version written to and accepted from the
// JSON store's file. Files carrying a newer version belong to a newer build
// and are refused on load.
const JSONSchemaVersion = 1
