package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/letsgomakkah/voucher/internal/voucher"
)

type voucherDeliverer interface {
	Deliver(ctx context.Context, req voucher.Request) (*voucher.Result, error)
}

// VoucherHandler exposes voucher delivery over HTTP.
type VoucherHandler struct {
	BaseHandler
	vouchers    voucherDeliverer
	maxBodySize int64
}

func NewVoucherHandler(logger *slog.Logger, vouchers voucherDeliverer, maxBodySize int64) *VoucherHandler {
	return &VoucherHandler{
		BaseHandler: BaseHandler{Logger: logger},
		vouchers:    vouchers,
		maxBodySize: maxBodySize,
	}
}

// Send accepts a voucher delivery request and relays it by email.
func (h *VoucherHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req voucher.Request
	if err := h.readJSON(w, r, &req, h.maxBodySize); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	result, err := h.vouchers.Deliver(r.Context(), req)
	if err != nil {
		var deliveryErr *voucher.DeliveryError
		switch {
		case errors.Is(err, voucher.ErrInvalidRequest):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, voucher.ErrNotConfigured):
			h.errorResponse(w, r, http.StatusInternalServerError, "Postmark server token is not configured.")
		case errors.As(err, &deliveryErr):
			h.errorResponse(w, r, http.StatusInternalServerError, "Failed to send email via Postmark: "+deliveryErr.Reason())
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := h.writeJSON(w, http.StatusOK, result, nil); err != nil {
		h.logError(r, err)
	}
}
