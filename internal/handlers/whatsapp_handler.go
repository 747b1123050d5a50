package handlers

import (
	"net/http"

	"church-admin/internal/models"
	"church-admin/internal/services"
)

type WhatsAppHandler struct {
	whatsappService *services.WhatsAppService
}

func NewWhatsAppHandler(whatsappService *services.WhatsAppService) *WhatsAppHandler {
	return &WhatsAppHandler{whatsappService: whatsappService}
}

// @Summary WhatsApp pairing QR code
// @Description Returns the current pairing QR code as a base64 PNG data URI
// @Tags whatsapp
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /whatsapp/qrcode [get]
func (h *WhatsAppHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	if h.whatsappService.IsConnected() {
		models.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status": services.WhatsAppStatusConnected,
		})
		return
	}

	qr, ok := h.whatsappService.QRCode()
	if !ok {
		models.RespondWithError(w, http.StatusNotFound, "QR code not available yet")
		return
	}
	models.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status": services.WhatsAppStatusConnecting,
		"qrcode": qr,
	})
}

// @Summary WhatsApp session status
// @Tags whatsapp
// @Produce json
// @Success 200 {object} map[string]string
// @Router /whatsapp/status [get]
func (h *WhatsAppHandler) Status(w http.ResponseWriter, r *http.Request) {
	models.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status": h.whatsappService.Status(),
	})
}
