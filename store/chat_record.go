package store

// Role tags who produced a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatRecord is the durable record of one conversation session. The session
// id is client-supplied and opaque; the consultant id is the persona the
// session is currently bound to.
type ChatRecord struct {
	ID           int32
	SessionID    string
	ConsultantID string
	CreatedTs    int64
	UpdatedTs    int64
}

// ChatTurn is a single role-tagged turn within a record. Turns are
// append-only; insertion order is conversation order.
type ChatTurn struct {
	ID        int32
	RecordID  int32
	Role      Role
	Text      string
	CreatedTs int64
}

// FindChatRecord filters for GetChatRecord / ListChatRecords.
type FindChatRecord struct {
	ID        *int32
	SessionID *string
}

// UpdateChatRecord carries fields accepted by UpdateChatRecord. The record's
// updated_ts is always bumped.
type UpdateChatRecord struct {
	SessionID    string
	ConsultantID *string
}

// CreateChatTurn is the payload for CreateChatTurn.
type CreateChatTurn struct {
	RecordID int32
	Role     Role
	Text     string
}

// CreateChatExchange is the payload for CreateChatExchange: one completed
// user/model pair plus the record's consultant re-bind. The whole exchange
// commits in a single transaction so a write failure can never leave a user
// turn without its model pair.
type CreateChatExchange struct {
	RecordID     int32
	SessionID    string
	ConsultantID *string
	UserText     string
	ModelText    string
}

// FindChatTurn filters for ListChatTurns.
type FindChatTurn struct {
	RecordID int32
	Role     *Role
	Limit    *int
}
