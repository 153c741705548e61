package config

// AppName names this program in logs, panic dumps, and temp file prefixes.
const AppName = "unpdf"
