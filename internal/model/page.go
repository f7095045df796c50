package model

// Page is a node in the user's document forest. ParentID nil means root.
// Content is an opaque blob owned by the editor; the server never parses it
// except when exporting.
type Page struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Icon     *string `json:"icon"`
	ParentID *string `json:"parent_id"`
	Archived int     `json:"archived"`
	Ctime    int64   `json:"ctime"`
	Mtime    int64   `json:"mtime"`
}
