package httpx

type ctxKey string

const (
	// CtxKeyAdminID carries the subject of a verified admin token.
	CtxKeyAdminID ctxKey = "admin_id"
	// CtxKeyAdminRole carries the role claim of a verified admin token.
	CtxKeyAdminRole ctxKey = "admin_role"
)
