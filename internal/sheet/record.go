package sheet

// Field names for the client sheet.
const (
	FieldClientID         = "ClientID"
	FieldClientName       = "ClientName"
	FieldPriorityLevel    = "PriorityLevel"
	FieldRequestedTaskIDs = "RequestedTaskIDs"
	FieldGroupTag         = "GroupTag"
	FieldAttributesJSON   = "AttributesJSON"
)

// Field names for the task sheet.
const (
	FieldTaskID         = "TaskID"
	FieldDuration       = "Duration"
	FieldRequiredSkills = "RequiredSkills"
)

// Field names for the worker sheet.
const (
	FieldWorkerID       = "WorkerID"
	FieldSkills         = "Skills"
	FieldAvailableSlots = "AvailableSlots"
)

// PriorityLevel bounds (inclusive).
const (
	MinPriority = 1
	MaxPriority = 5
)

// Fields returns the canonical column order for a sheet type, used when
// writing cleaned data back out. Unknown types have no canonical order.
func Fields(t Type) []string {
	switch t {
	case TypeClients:
		return []string{
			FieldClientID, FieldClientName, FieldPriorityLevel,
			FieldRequestedTaskIDs, FieldGroupTag, FieldAttributesJSON,
		}
	case TypeTasks:
		return []string{FieldTaskID, FieldDuration, FieldRequiredSkills}
	case TypeWorkers:
		return []string{FieldWorkerID, FieldSkills, FieldAvailableSlots}
	default:
		return nil
	}
}
