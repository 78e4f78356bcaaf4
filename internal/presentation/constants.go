package presentation

const (
	AuthKey = "Authorization"
	TypeKey = "Content-Type"

	// UID is the echo context key carrying the authenticated user id.
	UID = "uid"

	PhotoIDParam = "photoID"
	PostIDParam  = "postID"
)
