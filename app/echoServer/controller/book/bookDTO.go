package book

type CreateBookReq struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Category    string `json:"category" validate:"required"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Year        int    `json:"year" validate:"required,gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// UpdateBookReq is a partial edit; absent fields stay untouched. Lowering
// stock below the lent count is refused by the catalog.
type UpdateBookReq struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Category    *string `json:"category,omitempty"`
	ISBN        *string `json:"isbn,omitempty"`
	Description *string `json:"description,omitempty"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,gt=0"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
