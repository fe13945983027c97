package borrowing

type CreateBorrowingReq struct {
	BookID string `json:"book_id" validate:"required"`
}
