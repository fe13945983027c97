package borrowing

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nurkholifah99/campus-library-hub/app/echoServer/jwtx"
	"github.com/nurkholifah99/campus-library-hub/model"
	bs "github.com/nurkholifah99/campus-library-hub/service/borrowing"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/borrowings  (student)
func (h *Controller) Request(c echo.Context) error {
	var req CreateBorrowingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	sid := jwtx.StudentID(c)
	if sid == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "no student profile"})
	}

	rec, err := h.Svc.Request(c.Request().Context(), sid, req.BookID)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrBookUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book unavailable"})
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		default:
			h.Log.Error("borrow request", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"borrowing_id": rec.ID,
		"status":       rec.Status,
		"due_date":     rec.DueDate,
	})
}

// GET /v1/borrowings/my  (student)
func (h *Controller) MyHistory(c echo.Context) error {
	sid := jwtx.StudentID(c)
	if sid == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "no student profile"})
	}
	rows, err := h.Svc.MyHistory(c.Request().Context(), sid)
	if err != nil {
		h.Log.Error("history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/borrowings?status=  (admin)
func (h *Controller) List(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	status := model.BorrowingStatus(strings.ToUpper(c.QueryParam("status")))
	rows, err := h.Svc.ListBorrowings(c.Request().Context(), status)
	if err != nil {
		if bs.Code(err) == bs.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown status"})
		}
		h.Log.Error("borrowings list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/borrowings/:id/approve  (admin)
func (h *Controller) Approve(c echo.Context) error {
	return h.transition(c, "approved", h.Svc.Approve)
}

// POST /v1/borrowings/:id/reject  (admin)
func (h *Controller) Reject(c echo.Context) error {
	return h.transition(c, "rejected", h.Svc.Reject)
}

// POST /v1/borrowings/:id/return  (admin)
func (h *Controller) Return(c echo.Context) error {
	return h.transition(c, "returned", h.Svc.Return)
}

// GET /v1/admin/stats  (admin)
func (h *Controller) Stats(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	stats, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		h.Log.Error("stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Controller) transition(c echo.Context, verb string, op func(ctx context.Context, id string) error) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := op(c.Request().Context(), id); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrowing not found"})
		case bs.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "invalid status transition"})
		case bs.ErrBookUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book unavailable"})
		default:
			h.Log.Error("borrowing "+verb, "err", err, "id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": verb})
}
