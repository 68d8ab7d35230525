package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"coachslot/internal/auth"
	"coachslot/internal/email"
	"coachslot/internal/logger"
	"coachslot/internal/metrics"
	"coachslot/internal/trainer"
	"coachslot/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service     Service
	trainerRepo trainer.Repository
	wallets     wallet.Service
	mailer      *email.Service
}

func NewHandler(db *sqlx.DB, wallets wallet.Service, mailer *email.Service) *Handler {
	trainerRepo := trainer.NewRepository(db)
	return &Handler{
		service:     NewService(NewRepository(db), trainerRepo),
		trainerRepo: trainerRepo,
		wallets:     wallets,
		mailer:      mailer,
	}
}

// Reserve godoc
// @Summary      Reserve a session
// @Description  Books a session with the trainer at the given date and start time.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        trainerID  path      int             true  "Trainer ID"
// @Param        request    body      ReserveRequest  true  "Session details"
// @Success      201        {object}  Booking
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /trainers/{trainerID}/bookings [post]
func (h *Handler) Reserve(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Reserve(c.Request.Context(), clientID, trainerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			metrics.RecordReservation("error")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrSlotInPast):
			metrics.RecordReservation("error")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot book a session in the past"})
		case errors.Is(err, trainer.ErrTrainerNotFound):
			metrics.RecordReservation("error")
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
		case errors.Is(err, ErrOutsideWorkingHours):
			metrics.RecordReservation("outside_hours")
			c.JSON(http.StatusConflict, gin.H{"error": "Session start is outside the trainer's working hours"})
		case errors.Is(err, ErrSlotUnavailable):
			metrics.RecordReservation("slot_unavailable")
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is already booked"})
		default:
			metrics.RecordReservation("error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	metrics.RecordReservation("created")
	h.settleAndNotify(c, b)

	c.JSON(http.StatusCreated, b)
}

// settleAndNotify charges the wallet and queues the confirmation mail.
// Neither failure unwinds the reservation: an unpaid booking stays
// payment_status=pending and the client settles it later.
func (h *Handler) settleAndNotify(c *gin.Context, b *Booking) {
	ctx := c.Request.Context()

	details, err := h.service.GetBookingDetails(ctx, b.ID)
	if err != nil {
		logger.Errorf("Booking %d: failed to load details: %v", b.ID, err)
		return
	}

	desc := "session with " + details.TrainerName + " on " + b.SessionDate.Format("2006-01-02")
	if err := h.wallets.Charge(ctx, b.ClientID, b.PriceCents, desc); err != nil {
		logger.Errorf("Booking %d: wallet charge failed: %v", b.ID, err)
	} else {
		if err := h.service.MarkPaid(ctx, b.ID); err != nil {
			logger.Errorf("Booking %d: failed to mark paid: %v", b.ID, err)
		} else {
			b.PaymentStatus = PaymentPaid
		}
	}

	err = h.mailer.SendBookingConfirmation(ctx, details.ClientEmail, details.ClientName,
		details.TrainerName, b.SessionDate, trainer.FormatClock(b.StartMin))
	if err != nil {
		logger.Errorf("Booking %d: failed to queue confirmation email: %v", b.ID, err)
	}
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Cancels the booking. Less than 24 hours before the session a fee of half the price applies.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  CancelResponse
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), bookingID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own bookings"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	if res.CancellationFeeCents > 0 {
		metrics.RecordCancellation("late")
	} else {
		metrics.RecordCancellation("free")
	}

	h.refundAndNotify(c, res)

	c.JSON(http.StatusOK, res)
}

// refundAndNotify returns the refundable part to the wallet and queues
// the cancellation mail. The payment status comes from the row Cancel
// loaded, so the refund never depends on a second read.
func (h *Handler) refundAndNotify(c *gin.Context, res *CancelResponse) {
	ctx := c.Request.Context()
	b := res.Booking

	if b.PaymentStatus == PaymentPaid {
		desc := "refund for session on " + b.SessionDate.Format("2006-01-02")
		if err := h.wallets.Refund(ctx, b.ClientID, res.RefundCents, desc); err != nil {
			logger.Errorf("Booking %d: wallet refund failed: %v", b.ID, err)
		} else {
			if err := h.service.MarkRefunded(ctx, b.ID); err != nil {
				logger.Errorf("Booking %d: failed to mark refunded: %v", b.ID, err)
			} else {
				b.PaymentStatus = PaymentRefunded
			}
			metrics.RecordRefund()
		}
	}

	details, err := h.service.GetBookingDetails(ctx, b.ID)
	if err != nil {
		logger.Errorf("Booking %d: failed to load details: %v", b.ID, err)
		return
	}

	err = h.mailer.SendCancellation(ctx, details.ClientEmail, details.ClientName,
		details.TrainerName, b.SessionDate, res.CancellationFeeCents, res.RefundCents)
	if err != nil {
		logger.Errorf("Booking %d: failed to queue cancellation email: %v", b.ID, err)
	}
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Description  Returns bookings of the authenticated client, newest first.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	if bookings == nil {
		bookings = []BookingWithDetails{}
	}

	c.JSON(http.StatusOK, bookings)
}

// ListTrainerBookings godoc
// @Summary      List trainer's bookings
// @Description  Returns the authenticated trainer's bookings, optionally for a single date.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Session date (2006-01-02)"
// @Success      200   {array}   BookingWithDetails
// @Failure      400   {object}  gin.H
// @Failure      404   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /trainer/bookings [get]
func (h *Handler) ListTrainerBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	t, err := h.trainerRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trainer profile not found"})
		return
	}

	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use 2006-01-02"})
			return
		}
		date = &d
	}

	bookings, err := h.service.GetTrainerBookings(c.Request.Context(), t.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	if bookings == nil {
		bookings = []BookingWithDetails{}
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBookingAnalytics godoc
// @Summary      Booking analytics
// @Description  Returns aggregated booking counts. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        group_by  query     string  false  "Group by dimension (day or trainer)"
// @Param        from      query     string  true   "Start date (2006-01-02)"
// @Param        to        query     string  true   "End date (2006-01-02)"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  gin.H
// @Failure      500       {object}  gin.H
// @Router       /admin/analytics/bookings [get]
func (h *Handler) GetBookingAnalytics(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params are required"})
		return
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from format, use 2006-01-02"})
		return
	}

	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to format, use 2006-01-02"})
		return
	}

	switch groupBy {
	case "day":
		stats, err := h.service.GetStatsByDay(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"group_by": "day",
			"from":     from,
			"to":       to,
			"data":     stats,
		})
	case "trainer":
		stats, err := h.service.GetStatsByTrainer(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"group_by": "trainer",
			"from":     from,
			"to":       to,
			"data":     stats,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be 'day' or 'trainer'"})
	}
}
