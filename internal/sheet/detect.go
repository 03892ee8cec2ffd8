package sheet

import "strings"

// Type identifies which entity a sheet holds.
type Type string

const (
	TypeUnknown Type = "unknown"
	TypeClients Type = "clients"
	TypeTasks   Type = "tasks"
	TypeWorkers Type = "workers"
)

// DetectType recognizes the entity type from a file name. Recognition is by
// substring so "clients.csv", "my_clients.xlsx" and "client_list.csv" all
// resolve to the client sheet.
func DetectType(filename string) Type {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "client"):
		return TypeClients
	case strings.Contains(lower, "worker"):
		return TypeWorkers
	case strings.Contains(lower, "task"):
		return TypeTasks
	default:
		return TypeUnknown
	}
}
