package model

// Label is a global label managed by administrators.
type Label struct {
	ID              int64  `json:"-"`
	UID             string `json:"uid"`
	Name            string `json:"name"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	Timestamps
}

// GroupLabel is a label scoped to a single group.
type GroupLabel struct {
	ID              int64  `json:"-"`
	UID             string `json:"uid"`
	Name            string `json:"name"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	GroupID         int64  `json:"-"`
	Timestamps
}
