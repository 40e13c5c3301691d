package config

// Version is the application version. Addons declare the minimum version
// they require and are rejected at registration when it is newer.
const Version = "1.0.0"
