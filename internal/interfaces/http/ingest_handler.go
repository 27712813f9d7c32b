package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/ingest"
)

// maxUploadBytes límite del archivo subido (20 MB, igual que el límite de
// documentos de Telegram para bots).
const maxUploadBytes = 20 * 1024 * 1024

// IngestHandler maneja la subida de archivos de inventario.
type IngestHandler struct {
	uc *ingest.UseCase
}

func NewIngestHandler(uc *ingest.UseCase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// Ingest recibe un archivo multipart ("file") junto con el telegram_id del
// tenant y procesa el lote completo.
func (h *IngestHandler) Ingest(c *fiber.Ctx) error {
	telegramID, err := strconv.ParseInt(c.FormValue("telegram_id"), 10, 64)
	if err != nil || telegramID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id es requerido"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo 'file' es requerido"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera el límite de 20 MB"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}

	result, err := h.uc.Ingest(c.Context(), dto.IngestRequest{
		TelegramID: telegramID,
		Filename:   fileHeader.Filename,
		Data:       data,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}
