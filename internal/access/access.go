package access

// Permission names used throughout the service. Roles bundle these and
// grants attach roles to documents; the names themselves are rows in the
// permissions table, seeded at install time.
const (
	PermissionReadDocument  = "read_document"
	PermissionWriteDocument = "write_document"
	PermissionShareDocument = "share_document"
	PermissionAdmin         = "admin"
)

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
