package board

import "github.com/google/uuid"

// NodeType discriminates the node variants on the canvas.
type NodeType string

const (
	NodeNote   NodeType = "note"
	NodeImage  NodeType = "image"
	NodeColumn NodeType = "column"
	NodePrompt NodeType = "prompt"
	NodeVideo  NodeType = "video"
)

// Default geometry for newly created nodes. Factories center these on
// the requested point.
const (
	NoteWidth    = 200.0
	NoteHeight   = 120.0
	ImageWidth   = 240.0
	PromptWidth  = 220.0
	PromptHeight = 140.0
	VideoWidth   = 240.0
	VideoHeight  = 160.0
	ColumnWidth  = 240.0
	ColumnHeight = 116.0 // header plus minimum body; rendered height is derived
)

// Node is one element on the canvas. X and Y are world coordinates and
// are only meaningful for free nodes; a column child's rendered position
// is derived entirely from its column's layout. Exactly one of the
// variant payloads is non-nil, matching Type.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	ZIndex   int      `json:"zIndex"`
	ParentID string   `json:"parentId,omitempty"` // owning column, empty for free nodes

	Note   *NoteData   `json:"note,omitempty"`
	Image  *ImageData  `json:"image,omitempty"`
	Column *ColumnData `json:"column,omitempty"`
	Prompt *PromptData `json:"prompt,omitempty"`
	Video  *VideoData  `json:"video,omitempty"`
}

// NoteData is the payload of a note node.
type NoteData struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// ImageData is the payload of an image node. NaturalWidth and
// NaturalHeight preserve the source aspect ratio when the image is laid
// out inside a column.
type ImageData struct {
	Src           string  `json:"src"`
	StoragePath   string  `json:"storagePath"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
}

// ColumnData is the payload of a column node. ChildOrder is a
// permutation of the ids of nodes whose ParentID is this column.
type ColumnData struct {
	Title      string   `json:"title,omitempty"`
	Collapsed  bool     `json:"collapsed,omitempty"`
	ChildOrder []string `json:"childOrder,omitempty"`
}

// PromptData is the payload of a prompt node.
type PromptData struct {
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	PromptType string `json:"promptType,omitempty"`
	Origin     string `json:"origin,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// VideoData is the payload of a video node.
type VideoData struct {
	Src         string  `json:"src"`
	StoragePath string  `json:"storagePath"`
	Filename    string  `json:"filename"`
	MimeType    string  `json:"mimeType"`
	Size        int64   `json:"size,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
}

// NewNote creates a note node centered on (x, y).
func NewNote(x, y float64) *Node {
	return &Node{
		ID:     uuid.NewString(),
		Type:   NodeNote,
		X:      x - NoteWidth/2,
		Y:      y - NoteHeight/2,
		Width:  NoteWidth,
		Height: NoteHeight,
		Note:   &NoteData{},
	}
}

// NewImage creates an image node centered on (x, y), sized to the
// source aspect ratio at the default width.
func NewImage(x, y float64, meta ImageData) *Node {
	h := ImageWidth * 3 / 4
	if meta.NaturalWidth > 0 && meta.NaturalHeight > 0 {
		h = ImageWidth * meta.NaturalHeight / meta.NaturalWidth
	}
	data := meta
	return &Node{
		ID:     uuid.NewString(),
		Type:   NodeImage,
		X:      x - ImageWidth/2,
		Y:      y - h/2,
		Width:  ImageWidth,
		Height: h,
		Image:  &data,
	}
}

// NewColumn creates an empty expanded column centered on (x, y). The
// stored height is a placeholder; the rendered height is always derived
// from content.
func NewColumn(x, y float64) *Node {
	return &Node{
		ID:     uuid.NewString(),
		Type:   NodeColumn,
		X:      x - ColumnWidth/2,
		Y:      y - ColumnHeight/2,
		Width:  ColumnWidth,
		Height: ColumnHeight,
		Column: &ColumnData{},
	}
}

// NewPrompt creates a prompt node centered on (x, y).
func NewPrompt(x, y float64) *Node {
	return &Node{
		ID:     uuid.NewString(),
		Type:   NodePrompt,
		X:      x - PromptWidth/2,
		Y:      y - PromptHeight/2,
		Width:  PromptWidth,
		Height: PromptHeight,
		Prompt: &PromptData{},
	}
}

// NewVideo creates a video node centered on (x, y).
func NewVideo(x, y float64, meta VideoData) *Node {
	data := meta
	return &Node{
		ID:     uuid.NewString(),
		Type:   NodeVideo,
		X:      x - VideoWidth/2,
		Y:      y - VideoHeight/2,
		Width:  VideoWidth,
		Height: VideoHeight,
		Video:  &data,
	}
}

// IsColumn reports whether the node is a column container.
func (n *Node) IsColumn() bool {
	return n.Type == NodeColumn
}

// Collapsed reports whether the node is a collapsed column.
func (n *Node) Collapsed() bool {
	return n.Type == NodeColumn && n.Column != nil && n.Column.Collapsed
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Note != nil {
		d := *n.Note
		c.Note = &d
	}
	if n.Image != nil {
		d := *n.Image
		c.Image = &d
	}
	if n.Column != nil {
		d := *n.Column
		d.ChildOrder = append([]string(nil), n.Column.ChildOrder...)
		c.Column = &d
	}
	if n.Prompt != nil {
		d := *n.Prompt
		c.Prompt = &d
	}
	if n.Video != nil {
		d := *n.Video
		c.Video = &d
	}
	return &c
}
