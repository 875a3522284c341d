package entity

type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ConvenerID  string `json:"convener_id,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
}

// Programme is a structured curriculum unit within a community.
type Programme struct {
	ID          string `json:"id"`
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Module struct {
	ID          string `json:"id"`
	ProgrammeID string `json:"programme_id"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
}

type Lesson struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}
