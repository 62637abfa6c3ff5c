package gateway

// Table identifies the table a change event belongs to
type Table string

const (
	TableProfiles Table = "profiles"
	TableMessages Table = "messages"
	TableTasks    Table = "tasks"
	TableLogs     Table = "logs"
	TableButtons  Table = "custom_buttons"
)

// ChangeKind is the kind of row change an event describes
type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// ChangeEvent is a row-level change notification. For inserts and
// updates exactly one row pointer matching Table is set. For deletes
// only OldID carries the removed row's identifier.
type ChangeEvent struct {
	Table    Table
	Kind     ChangeKind
	FamilyID string

	Profile *ProfileRow
	Message *MessageRow
	Task    *TaskRow
	Log     *LogRow
	Button  *ButtonRow

	OldID string
}
